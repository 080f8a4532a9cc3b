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
	"log/slog"
	"maps"

	"rivaas.dev/apispec/docstring"
	"rivaas.dev/apispec/introspect"
	"rivaas.dev/apispec/spec"
)

// ResolveOperations returns the operations to document for v.
//
// A non-nil override is returned unchanged. Otherwise the operations come
// from the view's doc comments, as described in the package documentation.
// Method keys in the result are lowercase. Malformed YAML in a doc comment
// is returned as an error wrapping docstring.ErrMalformedYAML.
func ResolveOperations(v introspect.View, override spec.Operations, autodoc bool) (spec.Operations, error) {
	return resolveOperations(v, override, autodoc, slog.New(slog.DiscardHandler))
}

func resolveOperations(v introspect.View, override spec.Operations, autodoc bool, logger *slog.Logger) (spec.Operations, error) {
	if override != nil {
		return override, nil
	}

	ops := spec.Operations{}

	if mv, ok := v.(*introspect.MethodView); ok {
		shared, err := docstring.LoadOperations(mv.Class.Doc)
		if err != nil {
			return nil, err
		}
		maps.Copy(ops, shared)
	}

	res, err := docstring.Parse(v.Doc())
	if err != nil {
		return nil, err
	}

	viewOps := res.Operations
	if res.Kind != docstring.KindOperations {
		viewOps = spec.Operations{}
		methods := answeredMethods(v)

		switch {
		case res.Kind == docstring.KindSingle:
			for _, m := range methods {
				viewOps[m] = maps.Clone(res.Operation)
			}
		case autodoc:
			for _, m := range methods {
				viewOps[m] = map[string]any{"responses": map[string]any{}}
			}
		}
	}

	for k, val := range viewOps {
		if _, ok := ops[k]; ok {
			logger.Debug("view operation replaces class-level entry", "view", v.Name(), "key", k)
		}
		ops[k] = val
	}

	return ops, nil
}
