// Package handlers is a fixture for the manifest tests.
package handlers

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
//	post:
//	  summary: Create a pet
//	  responses:
//	    "201":
//	      description: Created
func ListPets(w http.ResponseWriter, r *http.Request) {}

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
//	parameters:
//	  - name: id
//	    in: path
//	    required: true
//	    schema:
//	      type: string
//	responses:
//	  "200":
//	    description: The pet
func (p *PetResource) Get(w http.ResponseWriter, r *http.Request) {}
