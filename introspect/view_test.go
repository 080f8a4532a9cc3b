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
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsView_FuncView(t *testing.T) {
	t.Parallel()

	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	item := New(CategoryViews, "pets#0", "").
		Set(KeyCallable, Callable{Name: "ListPets", Doc: "List pets.", Handler: h}).
		Set(KeyRequestMethods, []string{"GET", "head", "get"}).
		Set("accept", "application/json")

	v, err := AsView(item)
	require.NoError(t, err)

	fv, ok := v.(*FuncView)
	require.True(t, ok, "expected *FuncView, got %T", v)
	assert.Equal(t, "ListPets", fv.Name())
	assert.Equal(t, "List pets.", fv.Doc())
	assert.NotNil(t, fv.Handler())
	assert.Equal(t, []string{"get", "head"}, fv.RequestMethods())

	accept, ok := fv.Predicate("accept")
	assert.True(t, ok)
	assert.Equal(t, "application/json", accept)

	_, ok = fv.Predicate(KeyCallable)
	assert.False(t, ok, "callable is not a predicate")
	_, ok = fv.Predicate(KeyRequestMethods)
	assert.False(t, ok, "request methods are matched separately")
}

func TestAsView_CallablePointer(t *testing.T) {
	t.Parallel()

	item := New(CategoryViews, "v", "").Set(KeyCallable, &Callable{Name: "Ping"})

	v, err := AsView(item)
	require.NoError(t, err)
	assert.Equal(t, "Ping", v.Name())
	assert.Nil(t, v.RequestMethods())
	assert.Nil(t, v.Handler())
}

func TestAsView_MethodView(t *testing.T) {
	t.Parallel()

	cls := &Class{
		Name: "PetResource",
		Doc:  "Pets.",
		Methods: map[string]Callable{
			"Get": {Name: "Get", Doc: "Get a pet."},
		},
	}
	item := New(CategoryViews, "pet#0", "").
		Set(KeyCallable, cls).
		Set(KeyAttr, "Get").
		Set(KeyRequestMethods, "GET")

	v, err := AsView(item)
	require.NoError(t, err)

	mv, ok := v.(*MethodView)
	require.True(t, ok, "expected *MethodView, got %T", v)
	assert.Equal(t, "PetResource.Get", mv.Name())
	assert.Equal(t, "Get a pet.", mv.Doc())
	assert.Same(t, cls, mv.Class)
	assert.Equal(t, []string{"get"}, mv.RequestMethods())

	attr, ok := mv.Predicate(KeyAttr)
	assert.True(t, ok)
	assert.Equal(t, "Get", attr)
}

func TestAsView_Errors(t *testing.T) {
	t.Parallel()

	cls := &Class{Name: "PetResource", Methods: map[string]Callable{}}

	tests := []struct {
		name    string
		item    *Introspectable
		wantErr error
	}{
		{
			name:    "route introspectable",
			item:    New(CategoryRoutes, "pets", ""),
			wantErr: ErrNotView,
		},
		{
			name:    "missing callable",
			item:    New(CategoryViews, "v", ""),
			wantErr: ErrNoCallable,
		},
		{
			name:    "class without attr",
			item:    New(CategoryViews, "v", "").Set(KeyCallable, cls),
			wantErr: ErrUnsupportedCallable,
		},
		{
			name:    "unknown method",
			item:    New(CategoryViews, "v", "").Set(KeyCallable, cls).Set(KeyAttr, "Delete"),
			wantErr: ErrUnknownMethod,
		},
		{
			name:    "unsupported callable type",
			item:    New(CategoryViews, "v", "").Set(KeyCallable, 42),
			wantErr: ErrUnsupportedCallable,
		},
		{
			name: "invalid request methods",
			item: New(CategoryViews, "v", "").
				Set(KeyCallable, Callable{Name: "f"}).
				Set(KeyRequestMethods, struct{ X int }{1}),
			wantErr: ErrInvalidMethods,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := AsView(tt.item)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizeMethods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want []string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "bare string", in: "POST", want: []string{"post"}},
		{name: "string slice", in: []string{"GET", "Post"}, want: []string{"get", "post"}},
		{name: "any slice", in: []any{"put", "PUT"}, want: []string{"put"}},
		{name: "empty slice", in: []string{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeMethods(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
