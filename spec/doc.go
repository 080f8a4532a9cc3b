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

// Package spec holds the OpenAPI document that path registration writes into.
//
// A [Document] is a thin, concurrency-safe container for the top-level
// OpenAPI objects (info, servers, extensions) and a paths map whose items
// are plain [Operations] mappings, usually produced from handler doc
// comments by the apispec package.
//
//	doc := spec.MustNew(
//	    spec.WithTitle("Pets", "1.0.0"),
//	    spec.WithServer("http://localhost:8080", "Local"),
//	)
//	err := doc.AddPath("/pets", spec.Operations{
//	    "get": map[string]any{"responses": map[string]any{}},
//	})
//
// The document can be exported as JSON or YAML, validated with kin-openapi
// through [Document.Validate], and served over HTTP with [Document.Handler].
package spec
