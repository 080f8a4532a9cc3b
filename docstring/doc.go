// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package docstring extracts OpenAPI fragments from doc comments.
//
// A doc comment documents an endpoint by ending with a YAML block that
// follows a line starting with "---":
//
//	ListPets returns every pet.
//
//	---
//	get:
//	  description: list pets
//	  responses:
//	    200:
//	      description: the pets
//
// The block is dedented before parsing, so it may be indented as a whole,
// as gofmt does with the preformatted part of a Go doc comment.
//
// [LoadYAML] returns the whole block. [LoadOperations] keeps only the keys
// that name HTTP methods (lowercased) and "x-" extensions. [Parse] does
// both in one pass and reports which of the two shapes the block has.
package docstring
