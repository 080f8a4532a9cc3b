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
	"fmt"
	"strings"
)

// Version is the OpenAPI version written to the document's "openapi" field.
type Version string

const (
	// V30 targets OpenAPI 3.0.4.
	V30 Version = "3.0.4"

	// V31 targets OpenAPI 3.1.2.
	V31 Version = "3.1.2"
)

// Info is the OpenAPI info object.
type Info struct {
	Title       string
	Version     string
	Description string
}

// Server is an OpenAPI server object.
type Server struct {
	URL         string
	Description string
}

type config struct {
	openapi    Version
	info       Info
	servers    []Server
	extensions map[string]any
}

// Option configures a [Document].
type Option func(*config)

// WithTitle sets the API title and version.
//
// Both are required. If not set, they default to "API" and "1.0.0".
func WithTitle(title, version string) Option {
	return func(c *config) {
		c.info.Title = title
		c.info.Version = version
	}
}

// WithDescription sets the description of the info object.
func WithDescription(desc string) Option {
	return func(c *config) {
		c.info.Description = desc
	}
}

// WithServer adds a server entry. Servers are written in the order they
// were added.
func WithServer(url, desc string) Option {
	return func(c *config) {
		c.servers = append(c.servers, Server{URL: url, Description: desc})
	}
}

// WithVersion selects the OpenAPI version of the document. Defaults to [V30].
func WithVersion(v Version) Option {
	return func(c *config) {
		c.openapi = v
	}
}

// WithExtension adds a root level specification extension. The key must
// start with "x-".
func WithExtension(key string, value any) Option {
	return func(c *config) {
		if c.extensions == nil {
			c.extensions = make(map[string]any)
		}
		c.extensions[key] = value
	}
}

func defaultConfig() config {
	return config{
		openapi: V30,
		info: Info{
			Title:   "API",
			Version: "1.0.0",
		},
	}
}

func (c *config) validate() error {
	if c.info.Title == "" {
		return ErrTitleRequired
	}
	if c.info.Version == "" {
		return ErrVersionRequired
	}

	switch c.openapi {
	case V30, V31:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidVersion, c.openapi)
	}

	for key := range c.extensions {
		if !strings.HasPrefix(key, "x-") {
			return fmt.Errorf("%w: %s", ErrInvalidExtensionKey, key)
		}
	}

	return nil
}
