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

package introspect

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/spf13/cast"
)

var (
	// ErrNotView is returned by [AsView] for introspectables outside the
	// views category.
	ErrNotView = errors.New("introspect: not a view")

	// ErrNoCallable is returned when a view introspectable has no callable.
	ErrNoCallable = errors.New("introspect: view has no callable")

	// ErrUnsupportedCallable is returned when the callable attribute is of
	// an unknown type.
	ErrUnsupportedCallable = errors.New("introspect: unsupported callable")

	// ErrUnknownMethod is returned when a method view names a method its
	// class does not have.
	ErrUnknownMethod = errors.New("introspect: class has no such method")

	// ErrInvalidMethods is returned when request methods cannot be read as
	// a list of strings.
	ErrInvalidMethods = errors.New("introspect: invalid request methods")
)

// Callable is a request handler together with its documentation.
type Callable struct {
	// Name identifies the handler, usually its Go name.
	Name string

	// Doc is the handler's doc comment.
	Doc string

	// Handler serves requests. It may be nil for views registered for
	// documentation only.
	Handler http.Handler
}

// Class groups handler methods under a common type, the way a resource
// type with Get/Post/... methods does.
type Class struct {
	Name    string
	Doc     string
	Methods map[string]Callable
}

// Method returns the named method.
func (c *Class) Method(name string) (Callable, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// View is a typed view registration: a [*FuncView] or a [*MethodView].
type View interface {
	// Name identifies the view for diagnostics.
	Name() string

	// Doc is the doc comment of the callable serving the view.
	Doc() string

	// Handler returns the callable's handler, possibly nil.
	Handler() http.Handler

	// RequestMethods returns the declared request methods in lowercase, or
	// nil when the view answers every method.
	RequestMethods() []string

	// Predicate returns the value stored for an extra predicate key.
	Predicate(key string) (any, bool)

	view()
}

type viewBase struct {
	methods    []string
	predicates map[string]any
}

func (b *viewBase) RequestMethods() []string {
	return slices.Clone(b.methods)
}

func (b *viewBase) Predicate(key string) (any, bool) {
	v, ok := b.predicates[key]
	return v, ok
}

func (*viewBase) view() {}

// FuncView is a view served by a single callable.
type FuncView struct {
	viewBase
	Callable Callable
}

// Name implements [View].
func (v *FuncView) Name() string { return v.Callable.Name }

// Doc implements [View].
func (v *FuncView) Doc() string { return v.Callable.Doc }

// Handler implements [View].
func (v *FuncView) Handler() http.Handler { return v.Callable.Handler }

// MethodView is a view served by the method Attr of Class.
type MethodView struct {
	viewBase
	Class  *Class
	Attr   string
	Method Callable
}

// Name implements [View].
func (v *MethodView) Name() string { return v.Class.Name + "." + v.Attr }

// Doc implements [View]. It is the method's doc comment; the class doc is
// available through Class.
func (v *MethodView) Doc() string { return v.Method.Doc }

// Handler implements [View].
func (v *MethodView) Handler() http.Handler { return v.Method.Handler }

// AsView converts a view introspectable into a [View].
//
// The callable attribute decides the variant: a [Callable] yields a
// [*FuncView]; a [*Class] together with a non-empty attr yields a
// [*MethodView]. Request methods are normalized with [NormalizeMethods].
// Every attribute other than callable and request_methods is kept as a
// predicate.
func AsView(item *Introspectable) (View, error) {
	if item.CategoryName != CategoryViews {
		return nil, fmt.Errorf("%w: %s", ErrNotView, item)
	}

	methods, err := NormalizeMethods(item.Get(KeyRequestMethods))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", item, err)
	}

	predicates := maps.Clone(item.attrs)
	delete(predicates, KeyCallable)
	delete(predicates, KeyRequestMethods)
	base := viewBase{methods: methods, predicates: predicates}

	attr := cast.ToString(item.Get(KeyAttr))

	switch c := item.Get(KeyCallable).(type) {
	case nil:
		return nil, fmt.Errorf("%w: %s", ErrNoCallable, item)
	case Callable:
		return &FuncView{viewBase: base, Callable: c}, nil
	case *Callable:
		if c == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoCallable, item)
		}
		return &FuncView{viewBase: base, Callable: *c}, nil
	case *Class:
		if c == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoCallable, item)
		}
		if attr == "" {
			return nil, fmt.Errorf("%w: %s: class %s needs an attr", ErrUnsupportedCallable, item, c.Name)
		}
		m, ok := c.Method(attr)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownMethod, c.Name, attr)
		}
		return &MethodView{viewBase: base, Class: c, Attr: attr, Method: m}, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedCallable, c)
	}
}

// NormalizeMethods reads a request methods value as a list of lowercase
// method names. A bare string is a single method; nil or an empty list
// yields nil. Duplicates are dropped, order is kept.
func NormalizeMethods(v any) ([]string, error) {
	if v == nil {
		return nil, nil
	}

	raw, err := cast.ToStringSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMethods, err)
	}

	var out []string
	for _, m := range raw {
		m = strings.ToLower(strings.TrimSpace(m))
		if m == "" || slices.Contains(out, m) {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}
