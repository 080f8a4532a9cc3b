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

package apispec

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"rivaas.dev/apispec/introspect"
	"rivaas.dev/apispec/spec"
)

// PathAdder is the document paths are registered with. [*spec.Document]
// implements it.
type PathAdder interface {
	AddPath(path string, ops spec.Operations) error
}

// AddPaths documents the route named routeName in doc.
//
// The route and its views are read from the introspector given with
// [WithIntrospector] or, failing that, from the one stored in ctx by the
// router; without either ErrNoIntrospector is returned. An unknown route
// is returned as an error wrapping introspect.ErrNotFound.
//
// Every related view that matches the request method and predicates adds
// its operations under the route pattern, with a leading "/" added when
// missing. No matching view is not an error: nothing is registered.
func AddPaths(ctx context.Context, doc PathAdder, routeName string, opts ...Option) error {
	cfg := newConfig(opts...)

	in := cfg.introspector
	if in == nil {
		var ok bool
		if in, ok = introspect.FromContext(ctx); !ok {
			return ErrNoIntrospector
		}
	}

	route, err := in.Get(introspect.CategoryRoutes, routeName)
	if err != nil {
		return fmt.Errorf("apispec: route %q: %w", routeName, err)
	}

	pattern := NormalizePattern(cast.ToString(route.Get(introspect.KeyPattern)))
	predicates := cfg.filter()

	matched := 0
	for _, item := range in.Related(route) {
		if item.CategoryName != introspect.CategoryViews {
			continue
		}

		v, err := introspect.AsView(item)
		if err != nil {
			return fmt.Errorf("apispec: route %q: %w", routeName, err)
		}

		ok, err := Matches(v, predicates)
		if err != nil {
			return err
		}
		if !ok {
			cfg.logger.DebugContext(ctx, "view skipped by predicates", "route", routeName, "view", v.Name())
			continue
		}

		ops, err := resolveOperations(v, cfg.operations, cfg.autodoc, cfg.logger)
		if err != nil {
			return fmt.Errorf("apispec: view %s: %w", v.Name(), err)
		}

		if err = doc.AddPath(pattern, ops); err != nil {
			return fmt.Errorf("apispec: path %s: %w", pattern, err)
		}
		matched++

		cfg.logger.DebugContext(ctx, "path added",
			"route", routeName,
			"path", pattern,
			"view", v.Name(),
			"methods", ops.Methods(),
		)
	}

	if matched == 0 {
		cfg.logger.DebugContext(ctx, "no view matched", "route", routeName)
	}

	return nil
}

// NormalizePattern prefixes pattern with "/" unless it already starts with
// one.
func NormalizePattern(pattern string) string {
	if strings.HasPrefix(pattern, "/") {
		return pattern
	}

	return "/" + pattern
}
