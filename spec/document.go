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

package spec

import (
	"maps"
	"strings"
	"sync"
)

// Document is an OpenAPI document under construction.
//
// Concurrency: Document is safe for concurrent use. AddPath may be called
// from multiple goroutines while the document is being exported.
type Document struct {
	cfg config

	mu    sync.RWMutex
	paths map[string]Operations
	order []string
}

// New creates a [Document] with the given options.
//
// It applies default values and validates the configuration. Returns an
// error if the title or version is empty, the OpenAPI version is unknown or
// an extension key lacks the "x-" prefix.
func New(opts ...Option) (*Document, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Document{
		cfg:   cfg,
		paths: make(map[string]Operations),
	}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Document {
	d, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return d
}

// Info returns the document's info object.
func (d *Document) Info() Info {
	return d.cfg.info
}

// Version returns the OpenAPI version the document is written for.
func (d *Document) Version() Version {
	return d.cfg.openapi
}

// AddPath registers operations under path.
//
// When the path already exists the new operations are merged into the
// existing path item; keys present in ops replace earlier values. The
// mapping is copied, so callers may reuse ops afterwards.
func (d *Document) AddPath(path string, ops Operations) error {
	if path == "" {
		return ErrPathEmpty
	}
	if !strings.HasPrefix(path, "/") {
		return ErrPathNoLeadingSlash
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	existing, ok := d.paths[path]
	if !ok {
		existing = make(Operations, len(ops))
		d.paths[path] = existing
		d.order = append(d.order, path)
	}
	maps.Copy(existing, ops)

	return nil
}

// Path returns a copy of the operations registered under path.
func (d *Document) Path(path string) (Operations, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ops, ok := d.paths[path]

	return ops.Clone(), ok
}

// Paths returns the registered paths in the order they were first added.
func (d *Document) Paths() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return append([]string(nil), d.order...)
}

// Map returns the document as a generic OpenAPI object tree, the form it is
// marshaled from. Path items are copies; operation objects are shared.
func (d *Document) Map() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	info := map[string]any{
		"title":   d.cfg.info.Title,
		"version": d.cfg.info.Version,
	}
	if d.cfg.info.Description != "" {
		info["description"] = d.cfg.info.Description
	}

	out := map[string]any{
		"openapi": string(d.cfg.openapi),
		"info":    info,
	}

	if len(d.cfg.servers) > 0 {
		servers := make([]any, 0, len(d.cfg.servers))
		for _, s := range d.cfg.servers {
			server := map[string]any{"url": s.URL}
			if s.Description != "" {
				server["description"] = s.Description
			}
			servers = append(servers, server)
		}
		out["servers"] = servers
	}

	paths := make(map[string]any, len(d.paths))
	for path, ops := range d.paths {
		paths[path] = map[string]any(ops.Clone())
	}
	out["paths"] = paths

	maps.Copy(out, d.cfg.extensions)

	return out
}
