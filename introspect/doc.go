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

// Package introspect records what a router knows about its configuration:
// named routes, the views attached to them, and the relations between the
// two.
//
// Every registration is an [Introspectable]: a category ("routes",
// "views"), a discriminator unique within the category, and a set of
// attributes. A [Registry] stores introspectables and relates them to each
// other, so that tooling can start from a route and walk to its views.
//
// View introspectables are turned into a typed [View] with [AsView]. A view
// is either a [*FuncView], wrapping a single [Callable], or a
// [*MethodView], naming a method on a [Class]. Both carry the acting doc
// comment, the declared request methods and any extra predicates.
//
// Code running inside a request can find the registry of the router that
// dispatched it with [FromContext].
package introspect
