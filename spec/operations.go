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

import (
	"maps"
	"strings"
)

// HTTP methods that may key an OpenAPI path item, in the order they are
// documented.
const (
	MethodGet     = "get"
	MethodPost    = "post"
	MethodPut     = "put"
	MethodPatch   = "patch"
	MethodDelete  = "delete"
	MethodHead    = "head"
	MethodOptions = "options"
)

var methods = []string{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodPatch,
	MethodDelete,
	MethodHead,
	MethodOptions,
}

// Methods returns the HTTP methods an operations mapping may contain.
// The returned slice is a copy and may be modified by the caller.
func Methods() []string {
	out := make([]string, len(methods))
	copy(out, methods)

	return out
}

// IsMethod reports whether key names one of [Methods]. The comparison is
// case-insensitive.
func IsMethod(key string) bool {
	switch strings.ToLower(key) {
	case MethodGet, MethodPost, MethodPut, MethodPatch, MethodDelete, MethodHead, MethodOptions:
		return true
	default:
		return false
	}
}

// IsExtension reports whether key is a specification extension ("x-" prefix).
func IsExtension(key string) bool {
	return strings.HasPrefix(key, "x-")
}

// Operations maps lowercase HTTP method names to operation objects. Path
// item extensions ("x-" keys) are carried alongside the methods.
type Operations map[string]any

// Clone returns a shallow copy of ops. Operation objects are shared.
func (ops Operations) Clone() Operations {
	return maps.Clone(ops)
}

// Methods returns the HTTP methods present in ops, in [Methods] order.
func (ops Operations) Methods() []string {
	var out []string
	for _, m := range methods {
		if _, ok := ops[m]; ok {
			out = append(out, m)
		}
	}

	return out
}
