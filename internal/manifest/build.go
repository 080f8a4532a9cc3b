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

package manifest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rivaas.dev/apispec"
	"rivaas.dev/apispec/godoc"
	"rivaas.dev/apispec/introspect"
	"rivaas.dev/apispec/router"
	"rivaas.dev/apispec/spec"
)

// Build errors
var (
	ErrUnresolvedHandler = errors.New("manifest: handler not found")
)

// Build registers the manifest's routes and views with a router and
// documents them in a new spec document.
//
// Without a paths section every route is documented with default options.
// Unset versions in m are filled with their defaults.
func Build(ctx context.Context, m *Manifest, logger *slog.Logger) (*spec.Document, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := m.applyDefaults(); err != nil {
		return nil, err
	}

	opts := []spec.Option{
		spec.WithTitle(m.Info.Title, m.Info.Version),
		spec.WithDescription(m.Info.Description),
		spec.WithVersion(spec.Version(m.OpenAPI)),
	}
	for _, s := range m.Servers {
		opts = append(opts, spec.WithServer(s.URL, s.Description))
	}
	for k, v := range m.Extensions {
		opts = append(opts, spec.WithExtension(k, v))
	}
	doc, err := spec.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	r, err := NewRouter(m, logger)
	if err != nil {
		return nil, err
	}

	base := []apispec.Option{
		apispec.WithIntrospector(r.Registry()),
		apispec.WithLogger(logger),
	}

	if len(m.Paths) == 0 {
		for _, rt := range m.Routes {
			if err = apispec.AddPaths(ctx, doc, rt.Name, base...); err != nil {
				return nil, err
			}
		}

		return doc, nil
	}

	for _, p := range m.Paths {
		if err = apispec.AddPaths(ctx, doc, p.Route, append(base, p.options()...)...); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

// NewRouter registers the manifest's routes and views with a new router.
// Views are documented from the source package when the manifest names
// one.
func NewRouter(m *Manifest, logger *slog.Logger) (*router.Router, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var pkg *godoc.Package
	if m.Source != "" {
		var err error
		if pkg, err = godoc.Load(m.Source); err != nil {
			return nil, err
		}
		logger.Debug("loaded source package", "package", pkg.Name, "dir", pkg.Dir)
	}

	r := router.New(router.WithLogger(logger))
	if err := register(r, pkg, m.Routes); err != nil {
		return nil, err
	}

	return r, nil
}

func (p Path) options() []apispec.Option {
	var opts []apispec.Option
	if len(p.RequestMethod) > 0 {
		opts = append(opts, apispec.WithRequestMethod(p.RequestMethod...))
	}
	if p.Autodoc != nil {
		opts = append(opts, apispec.WithAutodoc(*p.Autodoc))
	}
	for k, v := range p.Predicates {
		opts = append(opts, apispec.WithPredicate(k, v))
	}
	if p.Operations != nil {
		opts = append(opts, apispec.WithOperations(spec.Operations(p.Operations)))
	}

	return opts
}

func register(r *router.Router, pkg *godoc.Package, routes []Route) error {
	for _, rt := range routes {
		if err := r.AddRoute(rt.Name, rt.Pattern); err != nil {
			return err
		}

		for _, v := range rt.Views {
			opts := []router.ViewOption{router.WithRequestMethods(v.Methods...)}
			for k, val := range v.Predicates {
				opts = append(opts, router.WithViewPredicate(k, val))
			}

			var err error
			if typeName, method, ok := strings.Cut(v.Handler, "."); ok {
				var cls *introspect.Class
				if cls, err = resolveClass(pkg, v, typeName, method); err == nil {
					err = r.AddMethodView(rt.Name, cls, method, opts...)
				}
			} else {
				var c introspect.Callable
				if c, err = resolveFunc(pkg, v); err == nil {
					err = r.AddView(rt.Name, c, opts...)
				}
			}
			if err != nil {
				return fmt.Errorf("route %q: %w", rt.Name, err)
			}
		}
	}

	return nil
}

// resolveFunc looks up a function view. Docs given in the manifest win over
// the source package; without a package only manifest docs are used.
func resolveFunc(pkg *godoc.Package, v View) (introspect.Callable, error) {
	c := introspect.Callable{Name: v.Handler, Doc: v.Doc}
	if pkg == nil || v.Doc != "" {
		return c, nil
	}

	c, err := pkg.Callable(v.Handler)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrUnresolvedHandler, err)
	}

	return c, nil
}

func resolveClass(pkg *godoc.Package, v View, typeName, method string) (*introspect.Class, error) {
	cls := &introspect.Class{Name: typeName, Methods: map[string]introspect.Callable{}}
	if pkg != nil {
		found, err := pkg.Class(typeName)
		switch {
		case err == nil:
			cls = found
		case v.Doc == "":
			return nil, fmt.Errorf("%w: %w", ErrUnresolvedHandler, err)
		}
	}

	if v.ClassDoc != "" {
		cls.Doc = v.ClassDoc
	}
	if v.Doc != "" || pkg == nil {
		cls.Methods[method] = introspect.Callable{Name: method, Doc: v.Doc}
	}
	if _, ok := cls.Method(method); !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrUnresolvedHandler, typeName, method)
	}

	return cls, nil
}
