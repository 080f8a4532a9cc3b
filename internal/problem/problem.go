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

// Package problem writes error responses as RFC 9457 problem details.
package problem

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ContentType is the media type of problem detail responses.
const ContentType = "application/problem+json; charset=utf-8"

// ErrorType lets an error choose its HTTP status code.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorCode lets an error expose a machine-readable code, used as the
// problem type.
type ErrorCode interface {
	error
	Code() string
}

// Detail is an RFC 9457 problem detail.
type Detail struct {
	Type       string
	Title      string
	Status     int
	Detail     string
	Instance   string
	Extensions map[string]any
}

// MarshalJSON writes the extensions inline; they cannot replace the
// standard members.
func (p Detail) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Extensions)+5)
	for k, v := range p.Extensions {
		m[k] = v
	}
	m["type"] = p.Type
	m["title"] = p.Title
	m["status"] = p.Status
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}

	return json.Marshal(m)
}

// Error is an error carrying a status and a code.
type Error struct {
	Status  int
	Slug    string
	Message string
}

// New returns an [*Error].
func New(status int, code, message string) *Error {
	return &Error{Status: status, Slug: code, Message: message}
}

func (e *Error) Error() string   { return e.Message }
func (e *Error) HTTPStatus() int { return e.Status }
func (e *Error) Code() string    { return e.Slug }

// From builds the problem detail for err answering r. The status comes from
// [ErrorType], 500 otherwise; the type from [ErrorCode], "about:blank"
// otherwise.
func From(r *http.Request, err error) Detail {
	status := http.StatusInternalServerError
	var typed ErrorType
	if errors.As(err, &typed) {
		status = typed.HTTPStatus()
	}

	problemType := "about:blank"
	var coded ErrorCode
	if errors.As(err, &coded) && coded.Code() != "" {
		problemType = coded.Code()
	}

	return Detail{
		Type:     problemType,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.URL.Path,
	}
}

// Write sends err as a problem detail response.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	p := From(r, err)

	body, mErr := json.Marshal(p)
	if mErr != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(p.Status)
	_, _ = w.Write(body)
}
