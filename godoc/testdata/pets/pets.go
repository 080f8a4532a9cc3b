// Package pets is a fixture for the godoc tests.
package pets

import "net/http"

// ListPets returns every pet.
//
// ---
//
//	get:
//	  summary: List pets
//	  responses:
//	    "200":
//	      description: All pets
func ListPets(w http.ResponseWriter, r *http.Request) {}

// NewPetResource creates a PetResource.
func NewPetResource() *PetResource { return &PetResource{} }

// PetResource serves a single pet.
//
// ---
//
//	x-owner: pets-team
type PetResource struct{}

// Get returns the pet.
//
// ---
//
//	summary: Show a pet
func (p *PetResource) Get(w http.ResponseWriter, r *http.Request) {}

// Delete removes the pet.
func (p *PetResource) Delete(w http.ResponseWriter, r *http.Request) {}

func undocumented() {}
