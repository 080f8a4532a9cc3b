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

package apispec_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/apispec"
	"rivaas.dev/apispec/introspect"
	"rivaas.dev/apispec/router"
	"rivaas.dev/apispec/spec"
)

const listPetsDoc = `ListPets returns every pet.

---
get:
  summary: List pets
  responses:
    "200":
      description: All pets
post:
  summary: Create a pet
  responses:
    "201":
      description: Created
`

const petResourceDoc = `PetResource serves a single pet.

---
x-owner: pets-team
`

const petGetDoc = `Get returns the pet.

---
summary: Show a pet
parameters:
  - name: id
    in: path
    required: true
    schema:
      type: string
responses:
  "200":
    description: The pet
`

// newPetsRouter builds a router with a collection route, an item route
// served by a resource type, and a spec endpoint documenting both.
func newPetsRouter() *router.Router {
	r := router.New()
	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	Expect(r.AddRoute("pets", "/pets")).To(Succeed())
	Expect(r.AddView("pets", introspect.Callable{
		Name:    "ListPets",
		Doc:     listPetsDoc,
		Handler: http.HandlerFunc(ok),
	}, router.WithRequestMethods("GET", "POST"))).To(Succeed())

	pet := &introspect.Class{
		Name: "PetResource",
		Doc:  petResourceDoc,
		Methods: map[string]introspect.Callable{
			"Get": {Name: "Get", Doc: petGetDoc, Handler: http.HandlerFunc(ok)},
		},
	}
	Expect(r.AddRoute("pet", "pets/{id}")).To(Succeed())
	Expect(r.AddMethodView("pet", pet, "Get", router.WithRequestMethods("GET"))).To(Succeed())

	Expect(r.AddRoute("openapi", "/openapi.json")).To(Succeed())
	Expect(r.AddView("openapi", introspect.Callable{
		Name: "OpenAPI",
		Handler: http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			doc := spec.MustNew(spec.WithTitle("Pets", "1.0.0"))
			for _, name := range []string{"pets", "pet"} {
				if err := apispec.AddPaths(req.Context(), doc, name); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
			}
			doc.Handler().ServeHTTP(w, req)
		}),
	}, router.WithRequestMethods("GET", "HEAD"))).To(Succeed())

	return r
}

var _ = Describe("Documenting a served router", func() {
	var r *router.Router

	BeforeEach(func() {
		r = newPetsRouter()
	})

	Describe("spec endpoint", func() {
		It("documents routes from the request context", func() {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("ETag")).NotTo(BeEmpty())

			var body map[string]any
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body).To(HaveKeyWithValue("openapi", "3.0.4"))

			paths, ok := body["paths"].(map[string]any)
			Expect(ok).To(BeTrue())
			Expect(paths).To(HaveLen(2))
			Expect(paths["/pets"]).To(HaveKey("get"))
			Expect(paths["/pets"]).To(HaveKey("post"))
			Expect(paths["/pets/{id}"]).To(HaveKeyWithValue("x-owner", "pets-team"))
			Expect(paths["/pets/{id}"]).To(HaveKey("get"))
		})

		It("answers a matching If-None-Match with 304", func() {
			first := httptest.NewRecorder()
			r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
			etag := first.Header().Get("ETag")

			req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
			req.Header.Set("If-None-Match", etag)
			second := httptest.NewRecorder()
			r.ServeHTTP(second, req)

			Expect(second.Code).To(Equal(http.StatusNotModified))
			Expect(second.Body.Len()).To(BeZero())
		})

		It("rejects methods the view does not answer", func() {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/openapi.json", nil))

			Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(rec.Header().Get("Allow")).To(Equal("GET, HEAD"))
		})
	})

	Describe("documents built outside a request", func() {
		It("produce a valid OpenAPI document", func() {
			doc := spec.MustNew(spec.WithTitle("Pets", "1.0.0"))
			for _, info := range r.Routes() {
				if info.Name == "openapi" {
					continue
				}
				Expect(apispec.AddPaths(context.Background(), doc, info.Name,
					apispec.WithIntrospector(r.Registry()))).To(Succeed())
			}

			Expect(doc.Paths()).To(ConsistOf("/pets", "/pets/{id}"))
			Expect(doc.Validate(context.Background())).To(Succeed())
		})

		It("only documents the requested method", func() {
			doc := spec.MustNew(spec.WithTitle("Pets", "1.0.0"))
			Expect(apispec.AddPaths(context.Background(), doc, "pets",
				apispec.WithIntrospector(r.Registry()),
				apispec.WithRequestMethod("DELETE"))).To(Succeed())

			Expect(doc.Paths()).To(BeEmpty())
		})

		It("fails without an introspector", func() {
			doc := spec.MustNew(spec.WithTitle("Pets", "1.0.0"))
			err := apispec.AddPaths(context.Background(), doc, "pets")

			Expect(err).To(MatchError(apispec.ErrNoIntrospector))
		})
	})
})

//nolint:paralleltest // Ginkgo test suite manages its own parallelization
func TestAPISpecIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	RegisterFailHandler(Fail)
	RunSpecs(t, "APISpec Integration Suite")
}
