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

import "context"

type contextKey struct{}

// NewContext returns a copy of ctx carrying in.
func NewContext(ctx context.Context, in Introspector) context.Context {
	return context.WithValue(ctx, contextKey{}, in)
}

// FromContext returns the introspector stored in ctx, if any.
func FromContext(ctx context.Context) (Introspector, bool) {
	in, ok := ctx.Value(contextKey{}).(Introspector)
	return in, ok && in != nil
}
