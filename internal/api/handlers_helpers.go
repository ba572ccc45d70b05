// Outfitter - Co-purchase Outfit Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/outfitter/internal/validation"
)

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a VALIDATION_ERROR APIError.
func validateRequest(v interface{}) *APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// paramError is a query or path parameter that could not be parsed.
type paramError struct {
	name  string
	value string
	want  string
}

func (e *paramError) Error() string {
	want := e.want
	if want == "" {
		want = "an integer"
	}
	return fmt.Sprintf("%s must be %s, got %q", e.name, want, e.value)
}

func (e *paramError) apiError() *APIError {
	return &APIError{
		Code:    CodeValidation,
		Message: e.Error(),
		Details: map[string]interface{}{"field": e.name, "value": e.value},
	}
}

// getIntParam extracts an integer query parameter with a default value.
// Malformed values are an error rather than silently defaulted.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &paramError{name: key, value: value}
	}
	return n, nil
}

// getInt64Param is getIntParam for 64-bit values such as seeds.
func getInt64Param(r *http.Request, key string) (int64, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &paramError{name: key, value: value}
	}
	return n, nil
}

// articleIDParam parses the {id} path segment. Leading zeros of the
// 10-digit code are accepted.
func articleIDParam(r *http.Request) (int64, error) {
	value := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, &paramError{name: "id", value: value}
	}
	return id, nil
}

// parseCommaSeparated parses a comma-separated string into a slice
func parseCommaSeparated(value string) []string {
	if value == "" {
		return nil
	}

	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// parseCommaSeparatedIDs parses a comma-separated list of article ids.
func parseCommaSeparatedIDs(key, value string) ([]int64, error) {
	parts := parseCommaSeparated(value)
	if len(parts) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, &paramError{name: key, value: part}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
