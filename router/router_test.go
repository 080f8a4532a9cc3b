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
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apispec/internal/problem"
	"rivaas.dev/apispec/introspect"
)

func text(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, body)
	})
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(method, target, nil))

	return w
}

func TestRouter_AddRoute(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.AddRoute("pets", "/pets"))
	require.NoError(t, r.AddRoute("pet", "pets/{id}"))

	err := r.AddRoute("pets", "/other")
	require.ErrorIs(t, err, ErrRouteExists)

	err = r.AddRoute("bad", "/pets/{id")
	require.ErrorIs(t, err, ErrPatternInvalidParameter)

	err = r.AddRoute("clash", "/pets/{name}")
	require.ErrorIs(t, err, ErrInvalidPattern)

	item, err := r.Registry().Get(introspect.CategoryRoutes, "pet")
	require.NoError(t, err)
	assert.Equal(t, "pets/{id}", item.Get(introspect.KeyPattern), "pattern is recorded as given")
	assert.Equal(t, "pet", item.Get(introspect.KeyName))

	_, err = r.Registry().Get(introspect.CategoryRoutes, "clash")
	assert.ErrorIs(t, err, introspect.ErrNotFound)
}

func TestRouter_AddView(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.AddRoute("pets", "/pets"))

	err := r.AddView("missing", introspect.Callable{Name: "X"})
	require.ErrorIs(t, err, ErrUnknownRoute)

	err = r.AddView("pets", introspect.Callable{Name: "X"}, WithViewPredicate(introspect.KeyCallable, 1))
	require.ErrorIs(t, err, ErrReservedPredicate)

	cls := &introspect.Class{Name: "PetResource", Methods: map[string]introspect.Callable{
		"Post": {Name: "Post"},
	}}
	err = r.AddMethodView("pets", cls, "Delete")
	require.ErrorIs(t, err, introspect.ErrUnknownMethod)

	require.NoError(t, r.AddView("pets", introspect.Callable{Name: "ListPets"},
		WithRequestMethods("GET"), WithViewPredicate("accept", "application/json")))
	require.NoError(t, r.AddMethodView("pets", cls, "Post", WithRequestMethods("post")))

	route, err := r.Registry().Get(introspect.CategoryRoutes, "pets")
	require.NoError(t, err)

	related := r.Registry().Related(route)
	require.Len(t, related, 2)
	assert.Equal(t, "pets#0", related[0].Discriminator)
	assert.Equal(t, "application/json", related[0].Get("accept"))
	assert.Equal(t, []string{"GET"}, related[0].Get(introspect.KeyRequestMethods))
	assert.Equal(t, "pets#1", related[1].Discriminator)
	assert.Equal(t, "Post", related[1].Get(introspect.KeyAttr))
}

func TestRouter_Dispatch(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.AddRoute("root", "/"))
	require.NoError(t, r.AddRoute("pets", "/pets"))
	require.NoError(t, r.AddRoute("pet", "/pets/{id}"))
	require.NoError(t, r.AddRoute("empty", "/empty"))

	require.NoError(t, r.AddView("root", introspect.Callable{Name: "Index", Handler: text("index")}))
	require.NoError(t, r.AddView("pets", introspect.Callable{Name: "List", Handler: text("list")},
		WithRequestMethods("GET")))
	require.NoError(t, r.AddView("pets", introspect.Callable{Name: "Create", Handler: text("create")},
		WithRequestMethods("POST", "PUT")))
	require.NoError(t, r.AddView("pet", introspect.Callable{Name: "Docs only"}))

	tests := []struct {
		name      string
		method    string
		target    string
		wantCode  int
		wantBody  string
		wantAllow string
	}{
		{name: "root", method: http.MethodGet, target: "/", wantCode: http.StatusOK, wantBody: "index"},
		{name: "root any method", method: http.MethodDelete, target: "/", wantCode: http.StatusOK, wantBody: "index"},
		{name: "root does not match subtree", method: http.MethodGet, target: "/nope", wantCode: http.StatusNotFound},
		{name: "get view", method: http.MethodGet, target: "/pets", wantCode: http.StatusOK, wantBody: "list"},
		{name: "post view", method: http.MethodPost, target: "/pets", wantCode: http.StatusOK, wantBody: "create"},
		{name: "put view", method: http.MethodPut, target: "/pets", wantCode: http.StatusOK, wantBody: "create"},
		{name: "no view for method", method: http.MethodDelete, target: "/pets", wantCode: http.StatusMethodNotAllowed, wantAllow: "GET, POST, PUT"},
		{name: "nil handler", method: http.MethodGet, target: "/pets/7", wantCode: http.StatusNotImplemented},
		{name: "no views", method: http.MethodGet, target: "/empty", wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := serve(r, tt.method, tt.target)
			assert.Equal(t, tt.wantCode, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			assert.Equal(t, tt.wantAllow, w.Header().Get("Allow"))
		})
	}
}

func TestRouter_ServeHTTPInjectsRegistry(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.AddRoute("probe", "/probe"))

	var got introspect.Introspector
	require.NoError(t, r.AddView("probe", introspect.Callable{
		Name: "Probe",
		Handler: http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
			got, _ = introspect.FromContext(req.Context())
		}),
	}))

	serve(r, http.MethodGet, "/probe")
	assert.Same(t, r.Registry(), got)
}

func TestRouter_WithRegistry(t *testing.T) {
	t.Parallel()

	reg := introspect.NewRegistry()
	r := New(WithRegistry(reg), WithLogger(nil))
	require.NoError(t, r.AddRoute("pets", "/pets"))

	assert.Same(t, reg, r.Registry())
	_, err := reg.Get(introspect.CategoryRoutes, "pets")
	assert.NoError(t, err)
}

func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.AddRoute("pets", "/pets"))
	require.NoError(t, r.AddRoute("health", "health"))
	require.NoError(t, r.AddView("pets", introspect.Callable{Name: "Create"}, WithRequestMethods("post", "get")))
	require.NoError(t, r.AddView("pets", introspect.Callable{Name: "List"}, WithRequestMethods("GET")))
	require.NoError(t, r.AddView("health", introspect.Callable{Name: "Health"}))

	assert.Equal(t, []RouteInfo{
		{Name: "health", Pattern: "/health", AnyMethod: true, Views: 1},
		{Name: "pets", Pattern: "/pets", Methods: []string{"GET", "POST"}, Views: 2},
	}, r.Routes())
}

func TestRouter_ProblemResponses(t *testing.T) {
	t.Parallel()

	r := New()
	require.NoError(t, r.AddRoute("pets", "/pets"))
	require.NoError(t, r.AddView("pets", introspect.Callable{Name: "List"}, WithRequestMethods("GET")))

	w := serve(r, http.MethodPost, "/pets")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, problem.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"type":"method-not-allowed"`)
	assert.Contains(t, w.Body.String(), "route pets does not answer POST")

	w = serve(r, http.MethodGet, "/pets")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Contains(t, w.Body.String(), "view List is registered for documentation only")
}
