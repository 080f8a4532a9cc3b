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
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"rivaas.dev/apispec/internal/problem"
)

// JSON returns the document as indented JSON.
func (d *Document) JSON() ([]byte, error) {
	out, err := json.MarshalIndent(d.Map(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spec to JSON: %w", err)
	}

	return out, nil
}

// YAML returns the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	out, err := yaml.Marshal(d.Map())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal spec to YAML: %w", err)
	}

	return out, nil
}

// ETag returns a strong entity tag for body.
func ETag(body []byte) string {
	return fmt.Sprintf(`"%x"`, sha256.Sum256(body))
}

// Validate checks the document with kin-openapi.
//
// Stub operations created by autodoc carry an empty responses object, which
// OpenAPI does not allow; documents built with autodoc enabled only pass
// once every operation documents at least one response.
func (d *Document) Validate(ctx context.Context) error {
	data, err := d.JSON()
	if err != nil {
		return err
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	t, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSpecValidationFailed, err)
	}
	if err = t.Validate(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrSpecValidationFailed, err)
	}

	return nil
}

// Handler returns an [http.Handler] serving the document.
//
// JSON is served by default; YAML is served when the query string carries
// format=yaml or the Accept header asks for YAML. Responses carry an ETag
// and honour If-None-Match. The document is rendered on every request so
// paths added later are visible.
func (d *Document) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			problem.Write(w, r, problem.New(http.StatusMethodNotAllowed, "method-not-allowed",
				r.Method+" is not allowed on the OpenAPI document"))

			return
		}

		body, contentType, err := d.render(wantsYAML(r))
		if err != nil {
			problem.Write(w, r, fmt.Errorf("failed to generate OpenAPI specification: %w", err))
			return
		}

		etag := ETag(body)
		if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		w.Header().Set("ETag", etag)
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = w.Write(body)
		}
	})
}

func (d *Document) render(asYAML bool) ([]byte, string, error) {
	if asYAML {
		body, err := d.YAML()
		return body, "application/yaml", err
	}
	body, err := d.JSON()

	return body, "application/json", err
}

func wantsYAML(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "yaml") {
		return true
	}

	return strings.Contains(r.Header.Get("Accept"), "yaml")
}
