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

package apispec

import (
	"fmt"
	"reflect"
	"slices"

	"rivaas.dev/apispec/introspect"
	"rivaas.dev/apispec/spec"
)

// Matches reports whether v satisfies every predicate.
//
// For introspect.KeyRequestMethods both the predicate value and the view's
// declared methods are read as sets of methods (a bare string is a single
// method, a view without declared methods answers all of them); the view
// matches when the sets intersect. Method names compare case-insensitively.
// Any other key matches when the view's value for it is deeply equal to the
// predicate value; a view without the key holds nil.
func Matches(v introspect.View, predicates map[string]any) (bool, error) {
	for key, want := range predicates {
		if key == introspect.KeyRequestMethods {
			wanted, err := introspect.NormalizeMethods(want)
			if err != nil {
				return false, fmt.Errorf("%w: %s: %w", ErrInvalidPredicate, key, err)
			}
			if !intersects(wanted, answeredMethods(v)) {
				return false, nil
			}

			continue
		}

		got, _ := v.Predicate(key)
		if !reflect.DeepEqual(got, want) {
			return false, nil
		}
	}

	return true, nil
}

// answeredMethods returns the view's declared methods, or every method when
// it declares none.
func answeredMethods(v introspect.View) []string {
	if m := v.RequestMethods(); len(m) > 0 {
		return m
	}

	return spec.Methods()
}

func intersects(a, b []string) bool {
	for _, m := range a {
		if slices.Contains(b, m) {
			return true
		}
	}

	return false
}
