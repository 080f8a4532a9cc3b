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
	"slices"
	"sort"
	"sync"
)

// Well-known categories.
const (
	CategoryRoutes = "routes"
	CategoryViews  = "views"
)

// Well-known attribute keys.
const (
	KeyName           = "name"
	KeyPattern        = "pattern"
	KeyCallable       = "callable"
	KeyAttr           = "attr"
	KeyRequestMethods = "request_methods"
)

var (
	// ErrNotFound is returned when no introspectable matches a lookup.
	ErrNotFound = errors.New("introspect: not found")

	// ErrNotRegistered is returned when relating an introspectable that was
	// never added to the registry.
	ErrNotRegistered = errors.New("introspect: introspectable not registered")
)

// Introspectable is a single registration recorded in a [Registry].
//
// Attributes should be set before the introspectable is added; the
// registry does not guard them against concurrent writes.
type Introspectable struct {
	CategoryName  string
	Discriminator string
	Title         string

	attrs map[string]any
}

// New creates an introspectable in category identified by discriminator.
func New(category, discriminator, title string) *Introspectable {
	return &Introspectable{
		CategoryName:  category,
		Discriminator: discriminator,
		Title:         title,
		attrs:         make(map[string]any),
	}
}

// Set stores an attribute and returns the introspectable for chaining.
func (i *Introspectable) Set(key string, value any) *Introspectable {
	i.attrs[key] = value
	return i
}

// Get returns the attribute stored under key, or nil.
func (i *Introspectable) Get(key string) any {
	return i.attrs[key]
}

// Lookup returns the attribute stored under key and whether it was set.
func (i *Introspectable) Lookup(key string) (any, bool) {
	v, ok := i.attrs[key]
	return v, ok
}

// Keys returns the attribute keys in sorted order.
func (i *Introspectable) Keys() []string {
	keys := slices.Collect(maps.Keys(i.attrs))
	sort.Strings(keys)

	return keys
}

func (i *Introspectable) String() string {
	return fmt.Sprintf("%s %q", i.CategoryName, i.Discriminator)
}

// Introspector is the read side of a [Registry].
type Introspector interface {
	// Get returns the introspectable registered under category and
	// discriminator. The error wraps [ErrNotFound] when there is none.
	Get(category, discriminator string) (*Introspectable, error)

	// Related returns the introspectables related to item, in the order
	// the relations were made.
	Related(item *Introspectable) []*Introspectable
}

type key struct {
	category      string
	discriminator string
}

// Registry stores introspectables and their relations.
//
// Concurrency: Registry is safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	items     map[key]*Introspectable
	order     map[string][]*Introspectable
	relations map[*Introspectable][]*Introspectable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		items:     make(map[key]*Introspectable),
		order:     make(map[string][]*Introspectable),
		relations: make(map[*Introspectable][]*Introspectable),
	}
}

// Add stores item. An introspectable already registered under the same
// category and discriminator is replaced and its relations are dropped.
func (r *Registry) Add(item *Introspectable) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{item.CategoryName, item.Discriminator}
	if old, ok := r.items[k]; ok {
		r.forget(old)
		r.order[k.category] = slices.DeleteFunc(r.order[k.category], func(i *Introspectable) bool {
			return i == old
		})
	}

	r.items[k] = item
	r.order[k.category] = append(r.order[k.category], item)
}

// forget removes every relation involving item. The caller holds mu.
func (r *Registry) forget(item *Introspectable) {
	for _, other := range r.relations[item] {
		r.relations[other] = slices.DeleteFunc(r.relations[other], func(i *Introspectable) bool {
			return i == item
		})
	}
	delete(r.relations, item)
}

// Get implements [Introspector].
func (r *Registry) Get(category, discriminator string) (*Introspectable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[key{category, discriminator}]
	if !ok {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, category, discriminator)
	}

	return item, nil
}

// All returns the introspectables of category in registration order.
func (r *Registry) All(category string) []*Introspectable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Introspectable(nil), r.order[category]...)
}

// Relate records a symmetric relation between a and b. Both must have been
// added to the registry. Relating the same pair twice is a no-op.
func (r *Registry) Relate(a, b *Introspectable) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range []*Introspectable{a, b} {
		if r.items[key{item.CategoryName, item.Discriminator}] != item {
			return fmt.Errorf("%w: %s", ErrNotRegistered, item)
		}
	}

	if slices.Contains(r.relations[a], b) {
		return nil
	}
	r.relations[a] = append(r.relations[a], b)
	if a != b {
		r.relations[b] = append(r.relations[b], a)
	}

	return nil
}

// Related implements [Introspector].
func (r *Registry) Related(item *Introspectable) []*Introspectable {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*Introspectable(nil), r.relations[item]...)
}
