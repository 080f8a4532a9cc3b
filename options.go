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

	"rivaas.dev/apispec/introspect"
	"rivaas.dev/apispec/spec"
)

type config struct {
	introspector   introspect.Introspector
	requestMethods []string
	operations     spec.Operations
	autodoc        bool
	predicates     map[string]any
	logger         *slog.Logger
}

// Option configures [AddPaths].
type Option func(*config)

func newConfig(opts ...Option) *config {
	cfg := &config{
		autodoc: true,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// WithIntrospector sets the introspector to read routes and views from.
// Without it the introspector stored in the context is used.
func WithIntrospector(in introspect.Introspector) Option {
	return func(c *config) {
		c.introspector = in
	}
}

// WithRequestMethod only documents views answering one of methods.
// It takes precedence over a request_methods predicate.
func WithRequestMethod(methods ...string) Option {
	return func(c *config) {
		c.requestMethods = methods
	}
}

// WithOperations registers ops for every matching view instead of reading
// doc comments.
func WithOperations(ops spec.Operations) Option {
	return func(c *config) {
		c.operations = ops
	}
}

// WithAutodoc controls whether stub operations are generated for methods
// whose view has no YAML block. Enabled by default.
func WithAutodoc(enabled bool) Option {
	return func(c *config) {
		c.autodoc = enabled
	}
}

// WithPredicate only documents views whose predicate key equals value.
//
// The key "request_methods" is special: the view matches when its declared
// methods and value share at least one method.
func WithPredicate(key string, value any) Option {
	return func(c *config) {
		if c.predicates == nil {
			c.predicates = make(map[string]any)
		}
		c.predicates[key] = value
	}
}

// WithLogger sets the logger for debug output. If not provided, nothing is
// logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// filter returns the predicates views are matched against.
func (c *config) filter() map[string]any {
	out := make(map[string]any, len(c.predicates)+1)
	maps.Copy(out, c.predicates)
	if len(c.requestMethods) > 0 {
		out[introspect.KeyRequestMethods] = c.requestMethods
	}

	return out
}
