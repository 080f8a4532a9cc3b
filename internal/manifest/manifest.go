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

// Package manifest loads the files the apispec command documents routes
// from, and builds spec documents out of them.
//
// A manifest names the API, the routes with their views, and optionally a
// Go package directory whose doc comments describe the views:
//
//	info:
//	  title: Pets
//	  version: 1.0.0
//	source: ./handlers
//	routes:
//	  - name: pets
//	    pattern: /pets
//	    views:
//	      - handler: ListPets
//	        methods: [GET, POST]
//	      - handler: PetResource.Get
//	paths:
//	  - route: pets
//	    request_method: GET
//
// YAML, TOML and JSON manifests are accepted; the format follows the file
// extension.
package manifest

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Manifest errors
var (
	ErrUnknownFormat = errors.New("manifest: unknown format")
	ErrDecode        = errors.New("manifest: decode failed")
	ErrInvalid       = errors.New("manifest: invalid")
)

// Format is a manifest encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// Manifest describes the routes to document.
type Manifest struct {
	OpenAPI    string         `mapstructure:"openapi" validate:"omitempty,oneof=3.0.4 3.1.2"`
	Info       Info           `mapstructure:"info"`
	Servers    []Server       `mapstructure:"servers" validate:"dive"`
	Source     string         `mapstructure:"source"`
	Extensions map[string]any `mapstructure:"extensions"`
	Routes     []Route        `mapstructure:"routes" validate:"required,min=1,dive"`
	Paths      []Path         `mapstructure:"paths" validate:"dive"`
}

// Info is the API title, version and description.
type Info struct {
	Title       string `mapstructure:"title" validate:"required"`
	Version     string `mapstructure:"version"`
	Description string `mapstructure:"description"`
}

// Server is a server entry of the document.
type Server struct {
	URL         string `mapstructure:"url" validate:"required"`
	Description string `mapstructure:"description"`
}

// Route is a named pattern with its views.
type Route struct {
	Name    string `mapstructure:"name" validate:"required"`
	Pattern string `mapstructure:"pattern" validate:"required"`
	Views   []View `mapstructure:"views" validate:"dive"`
}

// View attaches a handler to a route.
//
// Handler is a function name or "Type.Method". Doc and ClassDoc, when set,
// replace the doc comments read from the source package.
type View struct {
	Handler    string         `mapstructure:"handler" validate:"required"`
	Doc        string         `mapstructure:"doc"`
	ClassDoc   string         `mapstructure:"class_doc"`
	Methods    []string       `mapstructure:"methods"`
	Predicates map[string]any `mapstructure:"predicates"`
}

// Path selects which views of a route are documented, and how.
type Path struct {
	Route         string         `mapstructure:"route" validate:"required"`
	RequestMethod []string       `mapstructure:"request_method"`
	Autodoc       *bool          `mapstructure:"autodoc"`
	Predicates    map[string]any `mapstructure:"predicates"`
	Operations    map[string]any `mapstructure:"operations"`
}

var defaults = Manifest{
	OpenAPI: "3.0.4",
	Info:    Info{Version: "1.0.0"},
}

//go:embed manifest.schema.json
var schemaJSON []byte

var schema = mustCompileSchema()

var validate = validator.New(validator.WithRequiredStructEnabled())

func mustCompileSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		panic(fmt.Sprintf("manifest: schema: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err = c.AddResource("manifest.schema.json", doc); err != nil {
		panic(fmt.Sprintf("manifest: schema: %v", err))
	}

	return c.MustCompile("manifest.schema.json")
}

// FormatOf returns the format for a file name's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads the manifest at path. A relative source directory is resolved
// against the manifest's directory.
func Load(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if m.Source != "" && !filepath.IsAbs(m.Source) {
		m.Source = filepath.Join(filepath.Dir(path), m.Source)
	}

	return m, nil
}

// Parse decodes and validates a manifest.
func Parse(data []byte, format Format) (*Manifest, error) {
	raw := map[string]any{}

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		err = toml.Unmarshal(data, &raw)
	case FormatJSON:
		err = json.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	// Each codec has its own number and map types; a JSON round trip gives
	// the validator and the decoder a single representation.
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(normalized))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err = schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	values := map[string]any{}
	if err = json.Unmarshal(normalized, &values); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	m := &Manifest{}
	if err = decode(values, m); err != nil {
		return nil, err
	}
	if err = m.applyDefaults(); err != nil {
		return nil, err
	}

	return m, nil
}

// Validate checks a manifest that was built in code rather than parsed.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return nil
}

// applyDefaults fills the OpenAPI and API versions when unset.
func (m *Manifest) applyDefaults() error {
	if err := mergo.Merge(m, defaults); err != nil {
		return fmt.Errorf("manifest: defaults: %w", err)
	}

	return nil
}

func decode(values map[string]any, m *Manifest) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		Result:           m,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err = decoder.Decode(values); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return nil
}
