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

package docstring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"rivaas.dev/apispec/spec"
)

// Marker starts the YAML block of a doc comment.
const Marker = "---"

var (
	// ErrMalformedYAML is returned when the YAML block cannot be parsed.
	ErrMalformedYAML = errors.New("docstring: malformed YAML block")

	// ErrNotMapping is returned when the YAML block is not a mapping.
	ErrNotMapping = errors.New("docstring: YAML block is not a mapping")
)

// Kind describes what a doc comment's YAML block contains.
type Kind int

const (
	// KindNone means the comment has no YAML block, or an empty one.
	KindNone Kind = iota

	// KindOperations means the block is keyed by HTTP methods (or carries
	// "x-" extensions).
	KindOperations

	// KindSingle means the block is a single operation that is not keyed by
	// method.
	KindSingle
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindOperations:
		return "operations"
	case KindSingle:
		return "single"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result is the parsed YAML block of a doc comment.
type Result struct {
	Kind Kind

	// Operations is set for KindOperations.
	Operations spec.Operations

	// Operation is set for KindSingle.
	Operation map[string]any
}

// Parse reads the YAML block of doc and classifies it.
func Parse(doc string) (Result, error) {
	data, err := LoadYAML(doc)
	if err != nil {
		return Result{}, err
	}

	if ops := operations(data); len(ops) > 0 {
		return Result{Kind: KindOperations, Operations: ops}, nil
	}
	if len(data) > 0 {
		return Result{Kind: KindSingle, Operation: data}, nil
	}

	return Result{Kind: KindNone}, nil
}

// LoadYAML returns the YAML block of doc as a mapping. A comment without a
// block, or with an empty one, yields an empty mapping.
func LoadYAML(doc string) (map[string]any, error) {
	block, ok := yamlBlock(doc)
	if !ok {
		return map[string]any{}, nil
	}

	var node any
	if err := yaml.Unmarshal([]byte(block), &node); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedYAML, err)
	}
	if node == nil {
		return map[string]any{}, nil
	}

	out, ok := normalize(node).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, node)
	}

	return out, nil
}

// LoadOperations returns the operations declared in the YAML block of doc:
// HTTP method keys, lowercased, and "x-" extension keys. Other keys are
// dropped.
func LoadOperations(doc string) (spec.Operations, error) {
	data, err := LoadYAML(doc)
	if err != nil {
		return nil, err
	}

	return operations(data), nil
}

func operations(data map[string]any) spec.Operations {
	ops := spec.Operations{}
	for k, v := range data {
		switch {
		case spec.IsMethod(k):
			ops[strings.ToLower(k)] = v
		case spec.IsExtension(k):
			ops[k] = v
		}
	}

	return ops
}

// yamlBlock returns the dedented text after the marker line.
func yamlBlock(doc string) (string, bool) {
	lines := strings.Split(strings.ReplaceAll(doc, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), Marker) {
			return dedent(lines[i+1:]), true
		}
	}

	return "", false
}

// dedent removes the whitespace prefix shared by all non-blank lines.
func dedent(lines []string) string {
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		prefix = commonPrefix(prefix, indent)
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out[i] = strings.TrimPrefix(line, prefix)
	}

	return strings.Join(out, "\n")
}

func commonPrefix(a, b string) string {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}

	return a[:i]
}

// normalize turns YAML mappings with non-string keys (status codes, for
// example) into string-keyed maps so the result can be marshaled as JSON.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[cast.ToString(k)] = normalize(val)
		}
		return out
	case []any:
		for i, val := range t {
			t[i] = normalize(val)
		}
		return t
	default:
		return v
	}
}
