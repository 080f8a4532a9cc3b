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

// Package apispec adds OpenAPI paths to a spec document by inspecting a
// router's introspection registry and the doc comments of its handlers.
//
// # Quick Start
//
//	r := router.New()
//	_ = r.AddRoute("pet", "/pets/{id}")
//	_ = r.AddView("pet", introspect.Callable{
//	    Name:    "GetPet",
//	    Doc:     getPetDoc,
//	    Handler: http.HandlerFunc(getPet),
//	}, router.WithRequestMethods("GET"))
//
//	doc := spec.MustNew(spec.WithTitle("Pets", "1.0.0"))
//	err := apispec.AddPaths(ctx, doc, "pet",
//	    apispec.WithIntrospector(r.Registry()),
//	)
//
// Inside a handler served by the router the introspector can be omitted:
// the router stores its registry in the request context.
//
//	func openAPI(w http.ResponseWriter, r *http.Request) {
//	    doc := spec.MustNew(spec.WithTitle("Pets", "1.0.0"))
//	    if err := apispec.AddPaths(r.Context(), doc, "pet"); err != nil { ... }
//	    doc.Handler().ServeHTTP(w, r)
//	}
//
// # Operations
//
// For every view attached to the route that matches the requested method
// and predicates, the operations are taken from, in order of preference:
//
//  1. the mapping passed with [WithOperations];
//  2. a YAML block keyed by HTTP method in the view's doc comment;
//  3. a single YAML operation in the doc comment, applied to every method
//     the view answers;
//  4. a stub operation with empty responses for every method the view
//     answers, unless autodoc is disabled with [WithAutodoc].
//
// For method views the YAML block of the class doc comment is merged in
// first, so fragments such as "x-" extensions can be shared by every method
// of a resource type. See the docstring package for the block format.
package apispec
