// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the service. Message is the
// service's "detail" field when the body is JSON, otherwise the raw
// body trimmed for display.
type APIError struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int `json:"-"`

	// Message is the service's human-readable error text.
	Message string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ErrStatus reports whether err is an *APIError with the given HTTP
// status, unwrapping as needed.
func ErrStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// parseError builds an APIError from an error response body. A JSON
// body with a "detail" field wins; anything else is used verbatim.
func parseError(statusCode int, body string) *APIError {
	apiErr := &APIError{StatusCode: statusCode}
	if json.Unmarshal([]byte(body), apiErr) == nil && apiErr.Message != "" {
		return apiErr
	}
	apiErr.Message = strings.TrimSpace(body)
	return apiErr
}
