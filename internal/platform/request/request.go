// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and query
parsing, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/alloyforge/internal/platform/validate"
)

/*
ID retrieves a named URL parameter (catalog identifier) from the request.

The value is trimmed; an empty result is a validation error.
*/
func ID(request *http.Request, name string) (string, error) {
	id := strings.TrimSpace(chi.URLParam(request, name))
	if id == "" {
		return "", validate.RequiredError(name, "This field is required")
	}
	return id, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
OptionalBool parses an optional boolean query parameter.

Returns:
  - *bool: nil when the parameter is absent
  - error: a VALIDATION_ERROR when the value is not a boolean
*/
func OptionalBool(request *http.Request, name string) (*bool, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, validate.RequiredError(name, "Must be true or false")
	}
	return &value, nil
}
