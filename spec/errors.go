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

package spec

import "errors"

// Configuration Errors (returned by New)
var (
	// ErrTitleRequired indicates the API title was not provided.
	ErrTitleRequired = errors.New("spec: title is required")

	// ErrVersionRequired indicates the API version was not provided.
	ErrVersionRequired = errors.New("spec: version is required")

	// ErrInvalidVersion indicates an unsupported OpenAPI version was specified.
	ErrInvalidVersion = errors.New("spec: invalid OpenAPI version")

	// ErrInvalidExtensionKey indicates an extension key doesn't start with "x-".
	ErrInvalidExtensionKey = errors.New("spec: extension key must start with 'x-'")
)

// Path Errors
var (
	// ErrPathEmpty indicates an empty path was provided.
	ErrPathEmpty = errors.New("spec: path cannot be empty")

	// ErrPathNoLeadingSlash indicates the path doesn't start with '/'.
	ErrPathNoLeadingSlash = errors.New("spec: path must start with '/'")
)

// Validation Errors
var (
	// ErrSpecValidationFailed indicates the document was rejected by the OpenAPI validator.
	ErrSpecValidationFailed = errors.New("spec: document failed OpenAPI validation")
)
