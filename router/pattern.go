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

package router

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Pattern validation errors
var (
	ErrPatternEmpty              = errors.New("router: pattern cannot be empty")
	ErrPatternNoLeadingSlash     = errors.New("router: pattern must start with '/'")
	ErrPatternDuplicateParameter = errors.New("router: duplicate pattern parameter")
	ErrPatternInvalidParameter   = errors.New("router: invalid pattern parameter format")
)

// validParameterNamePattern matches wildcard names net/http accepts.
var validParameterNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidatePattern checks a route pattern before it is registered.
//
// Validation checks:
//   - Non-empty pattern starting with '/'
//   - Parameters written as a whole segment: {name}
//   - A trailing {name...} or {$} only in the last segment
//   - Parameter names are identifiers
//   - No duplicate parameters
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return ErrPatternEmpty
	}
	if !strings.HasPrefix(pattern, "/") {
		return ErrPatternNoLeadingSlash
	}

	params := make(map[string]bool)
	segments := strings.Split(pattern[1:], "/")

	for i, seg := range segments {
		if !strings.ContainsAny(seg, "{}") {
			continue
		}

		if !strings.HasPrefix(seg, "{") || !strings.HasSuffix(seg, "}") {
			return fmt.Errorf("%w: mismatched braces in segment '%s' (use '{param}')", ErrPatternInvalidParameter, seg)
		}

		name := seg[1 : len(seg)-1]
		last := i == len(segments)-1

		if name == "$" {
			if !last {
				return fmt.Errorf("%w: '{$}' must end the pattern", ErrPatternInvalidParameter)
			}
			continue
		}

		if rest, ok := strings.CutSuffix(name, "..."); ok {
			if !last {
				return fmt.Errorf("%w: '%s' must end the pattern", ErrPatternInvalidParameter, seg)
			}
			name = rest
		}

		if name == "" {
			return fmt.Errorf("%w: empty parameter name in segment '%s'", ErrPatternInvalidParameter, seg)
		}
		if !validParameterNamePattern.MatchString(name) {
			return fmt.Errorf("%w: parameter name '%s' must be an identifier", ErrPatternInvalidParameter, name)
		}

		if params[name] {
			return fmt.Errorf("%w: '%s' appears multiple times", ErrPatternDuplicateParameter, name)
		}
		params[name] = true
	}

	return nil
}
