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

// Package router is a small net/http router that records its routes and
// views in an introspection registry.
//
// Routes are named URL patterns; views are the handlers attached to them,
// optionally restricted to a set of request methods and annotated with
// extra predicates. Each registration is mirrored in the router's
// [introspect.Registry], so the apispec package can document a route from
// its name alone.
//
//	r := router.New()
//	_ = r.AddRoute("pets", "/pets")
//	_ = r.AddView("pets", introspect.Callable{Name: "ListPets", Handler: listPets},
//	    router.WithRequestMethods("GET"))
//	_ = http.ListenAndServe(":8080", r)
//
// Requests are dispatched to the first view of the matched route that
// answers the request method; other predicates are recorded for
// documentation only. Handlers find the registry in the request context
// with [introspect.FromContext].
package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sort"
	"strings"
	"sync"

	"rivaas.dev/apispec/internal/problem"
	"rivaas.dev/apispec/introspect"
)

var (
	// ErrRouteExists is returned when a route name is registered twice.
	ErrRouteExists = errors.New("router: route already registered")

	// ErrUnknownRoute is returned when a view names a route that does not exist.
	ErrUnknownRoute = errors.New("router: unknown route")

	// ErrInvalidPattern is returned when net/http rejects a route pattern.
	ErrInvalidPattern = errors.New("router: invalid pattern")

	// ErrReservedPredicate is returned when a view predicate uses a key the
	// router sets itself.
	ErrReservedPredicate = errors.New("router: reserved predicate key")
)

// Router dispatches requests to views and records them for introspection.
//
// Concurrency: Router is safe for concurrent use. Routes and views may be
// added while requests are served.
type Router struct {
	registry *introspect.Registry
	mux      *http.ServeMux
	logger   *slog.Logger

	mu     sync.RWMutex
	routes map[string]*route
}

type route struct {
	name    string
	pattern string
	item    *introspect.Introspectable
	views   []introspect.View
}

// Option configures a [Router].
type Option func(*Router)

// WithLogger sets the logger for registration and dispatch messages.
// If not provided, nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistry records registrations in reg instead of a private registry.
func WithRegistry(reg *introspect.Registry) Option {
	return func(r *Router) {
		if reg != nil {
			r.registry = reg
		}
	}
}

// New creates a router.
func New(opts ...Option) *Router {
	r := &Router{
		registry: introspect.NewRegistry(),
		mux:      http.NewServeMux(),
		logger:   slog.New(slog.DiscardHandler),
		routes:   make(map[string]*route),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Registry returns the registry the router records into.
func (r *Router) Registry() *introspect.Registry {
	return r.registry
}

// AddRoute registers a named route. A pattern without a leading '/' gets
// one; the pattern is recorded as given.
func (r *Router) AddRoute(name, pattern string) error {
	path := pattern
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if err := ValidatePattern(path); err != nil {
		return fmt.Errorf("route %q: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.routes[name]; ok {
		return fmt.Errorf("%w: %q", ErrRouteExists, name)
	}

	rt := &route{name: name, pattern: path}
	if err := handle(r.mux, muxPattern(path), r.dispatch(rt)); err != nil {
		return fmt.Errorf("route %q: %w", name, err)
	}

	rt.item = introspect.New(introspect.CategoryRoutes, name, pattern).
		Set(introspect.KeyName, name).
		Set(introspect.KeyPattern, pattern)
	r.registry.Add(rt.item)
	r.routes[name] = rt

	r.logger.Debug("route added", "route", name, "pattern", path)

	return nil
}

// AddView attaches a function view to the named route.
func (r *Router) AddView(routeName string, c introspect.Callable, opts ...ViewOption) error {
	return r.addView(routeName, c, "", opts)
}

// AddMethodView attaches the method attr of cls to the named route.
func (r *Router) AddMethodView(routeName string, cls *introspect.Class, attr string, opts ...ViewOption) error {
	return r.addView(routeName, cls, attr, opts)
}

func (r *Router) addView(routeName string, callable any, attr string, opts []ViewOption) error {
	cfg := &viewConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rt, ok := r.routes[routeName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRoute, routeName)
	}

	item := introspect.New(
		introspect.CategoryViews,
		fmt.Sprintf("%s#%d", routeName, len(rt.views)),
		routeName,
	)
	for k, v := range cfg.predicates {
		switch k {
		case introspect.KeyCallable, introspect.KeyAttr, introspect.KeyRequestMethods:
			return fmt.Errorf("%w: %s", ErrReservedPredicate, k)
		}
		item.Set(k, v)
	}
	item.Set(introspect.KeyCallable, callable)
	if attr != "" {
		item.Set(introspect.KeyAttr, attr)
	}
	if len(cfg.methods) > 0 {
		item.Set(introspect.KeyRequestMethods, cfg.methods)
	}

	v, err := introspect.AsView(item)
	if err != nil {
		return err
	}

	r.registry.Add(item)
	if err = r.registry.Relate(rt.item, item); err != nil {
		return err
	}
	rt.views = append(rt.views, v)

	r.logger.Debug("view added", "route", routeName, "view", v.Name(), "methods", v.RequestMethods())

	return nil
}

// ServeHTTP implements [http.Handler].
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	req = req.WithContext(introspect.NewContext(req.Context(), r.registry))
	r.mux.ServeHTTP(w, req)
}

func (r *Router) dispatch(rt *route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		method := strings.ToLower(req.Method)

		r.mu.RLock()
		views := rt.views
		r.mu.RUnlock()

		var allowed []string
		for _, v := range views {
			methods := v.RequestMethods()
			if len(methods) > 0 && !slices.Contains(methods, method) {
				allowed = append(allowed, methods...)
				continue
			}

			h := v.Handler()
			if h == nil {
				problem.Write(w, req, problem.New(http.StatusNotImplemented, "not-implemented",
					fmt.Sprintf("view %s is registered for documentation only", v.Name())))
				return
			}
			h.ServeHTTP(w, req)

			return
		}

		if len(views) == 0 {
			problem.Write(w, req, problem.New(http.StatusNotFound, "no-view",
				fmt.Sprintf("route %s has no views", rt.name)))
			return
		}

		r.logger.Debug("method not allowed", "route", rt.name, "method", req.Method)
		w.Header().Set("Allow", allowHeader(allowed))
		problem.Write(w, req, problem.New(http.StatusMethodNotAllowed, "method-not-allowed",
			fmt.Sprintf("route %s does not answer %s", rt.name, req.Method)))
	})
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Name    string
	Pattern string

	// Methods lists the methods declared by the route's views, uppercase
	// and sorted.
	Methods []string

	// AnyMethod is true when a view answers every method.
	AnyMethod bool

	Views int
}

// Routes returns the registered routes sorted by name.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RouteInfo, 0, len(r.routes))
	for _, rt := range r.routes {
		info := RouteInfo{Name: rt.name, Pattern: rt.pattern, Views: len(rt.views)}
		var methods []string
		for _, v := range rt.views {
			m := v.RequestMethods()
			if len(m) == 0 {
				info.AnyMethod = true
			}
			methods = append(methods, m...)
		}
		if len(methods) > 0 {
			info.Methods = upperSorted(methods)
		}
		out = append(out, info)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}

// muxPattern maps a route pattern to a net/http pattern. The root route
// matches "/" only, not the whole tree.
func muxPattern(path string) string {
	if path == "/" {
		return "/{$}"
	}

	return path
}

// handle registers h, turning the panic net/http raises for conflicting or
// malformed patterns into an error.
func handle(mux *http.ServeMux, pattern string, h http.Handler) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidPattern, rec)
		}
	}()
	mux.Handle(pattern, h)

	return nil
}

func allowHeader(methods []string) string {
	return strings.Join(upperSorted(methods), ", ")
}

func upperSorted(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		m = strings.ToUpper(m)
		if !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	sort.Strings(out)

	return out
}
