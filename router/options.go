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

package router

type viewConfig struct {
	methods    []string
	predicates map[string]any
}

// ViewOption configures a view added with [Router.AddView] or
// [Router.AddMethodView].
type ViewOption func(*viewConfig)

// WithRequestMethods restricts the view to methods. Without it the view
// answers every method.
func WithRequestMethods(methods ...string) ViewOption {
	return func(c *viewConfig) {
		c.methods = append(c.methods, methods...)
	}
}

// WithViewPredicate records an extra predicate on the view, such as an
// accepted media type. Predicates are matched by apispec.AddPaths; the
// router does not evaluate them.
func WithViewPredicate(key string, value any) ViewOption {
	return func(c *viewConfig) {
		if c.predicates == nil {
			c.predicates = make(map[string]any)
		}
		c.predicates[key] = value
	}
}
