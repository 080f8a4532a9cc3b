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

// Package godoc reads handler documentation from Go source files.
//
// Views can keep their OpenAPI description in ordinary doc comments: a
// comment whose text contains a line starting with "---" carries a YAML
// block, indented as a Go code block:
//
//	// ListPets returns every pet.
//	//
//	// ---
//	//	get:
//	//	  summary: List pets
//	func ListPets(w http.ResponseWriter, r *http.Request) { ... }
//
// [Load] parses one package directory and resolves functions, types and
// methods to [introspect.Callable] and [introspect.Class] values whose Doc
// fields hold those comments.
package godoc

import (
	"errors"
	"fmt"
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"rivaas.dev/apispec/introspect"
)

var (
	// ErrNoPackage is returned when a directory has no Go source files.
	ErrNoPackage = errors.New("godoc: no Go package")

	// ErrMultiplePackages is returned when a directory mixes packages.
	ErrMultiplePackages = errors.New("godoc: multiple packages")

	// ErrNotFound is returned when a declaration does not exist.
	ErrNotFound = errors.New("godoc: declaration not found")
)

// Package holds the documentation of one Go package.
type Package struct {
	Name string
	Dir  string

	funcs map[string]string
	types map[string]*typeDoc
}

type typeDoc struct {
	doc     string
	methods map[string]string
}

// Load parses the non-test Go files in dir.
func Load(dir string) (*Package, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("godoc: %w", err)
	}

	fset := token.NewFileSet()
	var files []*ast.File
	name := ""
	for _, e := range entries {
		fn := e.Name()
		if e.IsDir() || !strings.HasSuffix(fn, ".go") || strings.HasSuffix(fn, "_test.go") {
			continue
		}

		f, err := parser.ParseFile(fset, filepath.Join(dir, fn), nil, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("godoc: %w", err)
		}

		switch {
		case name == "":
			name = f.Name.Name
		case name != f.Name.Name:
			return nil, fmt.Errorf("%w: %s and %s in %s", ErrMultiplePackages, name, f.Name.Name, dir)
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPackage, dir)
	}

	p, err := doc.NewFromFiles(fset, files, name, doc.AllDecls|doc.PreserveAST)
	if err != nil {
		return nil, fmt.Errorf("godoc: %w", err)
	}

	pkg := &Package{
		Name:  p.Name,
		Dir:   dir,
		funcs: make(map[string]string),
		types: make(map[string]*typeDoc),
	}
	for _, f := range p.Funcs {
		pkg.funcs[f.Name] = f.Doc
	}
	for _, t := range p.Types {
		td := &typeDoc{doc: t.Doc, methods: make(map[string]string)}
		for _, m := range t.Methods {
			td.methods[m.Name] = m.Doc
		}
		// Constructors are grouped under their result type.
		for _, f := range t.Funcs {
			pkg.funcs[f.Name] = f.Doc
		}
		pkg.types[t.Name] = td
	}

	return pkg, nil
}

// Func returns the doc comment of a top-level function.
func (p *Package) Func(name string) (string, bool) {
	d, ok := p.funcs[name]
	return d, ok
}

// Type returns the doc comment of a type.
func (p *Package) Type(name string) (string, bool) {
	t, ok := p.types[name]
	if !ok {
		return "", false
	}

	return t.doc, true
}

// Method returns the doc comment of method on typeName.
func (p *Package) Method(typeName, method string) (string, bool) {
	t, ok := p.types[typeName]
	if !ok {
		return "", false
	}
	d, ok := t.methods[method]

	return d, ok
}

// Callable resolves "Func" or "Type.Method" to a callable carrying its doc
// comment. The handler is left nil.
func (p *Package) Callable(name string) (introspect.Callable, error) {
	if typeName, method, ok := strings.Cut(name, "."); ok {
		d, found := p.Method(typeName, method)
		if !found {
			return introspect.Callable{}, fmt.Errorf("%w: %s.%s", ErrNotFound, p.Name, name)
		}
		return introspect.Callable{Name: name, Doc: d}, nil
	}

	d, ok := p.Func(name)
	if !ok {
		return introspect.Callable{}, fmt.Errorf("%w: %s.%s", ErrNotFound, p.Name, name)
	}

	return introspect.Callable{Name: name, Doc: d}, nil
}

// Class returns typeName with all of its documented methods.
func (p *Package) Class(typeName string) (*introspect.Class, error) {
	t, ok := p.types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrNotFound, p.Name, typeName)
	}

	cls := &introspect.Class{
		Name:    typeName,
		Doc:     t.doc,
		Methods: make(map[string]introspect.Callable, len(t.methods)),
	}
	for name, d := range t.methods {
		cls.Methods[name] = introspect.Callable{Name: name, Doc: d}
	}

	return cls, nil
}

// Funcs returns the names of the package's functions, sorted.
func (p *Package) Funcs() []string {
	out := make([]string, 0, len(p.funcs))
	for name := range p.funcs {
		out = append(out, name)
	}
	sort.Strings(out)

	return out
}
