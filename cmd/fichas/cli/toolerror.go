// Copyright 2026 The Fichas Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"net/http"

	"github.com/assistec/fichas/lib/api"
)

// ErrorCategory classifies a failure for exit codes and messaging.
type ErrorCategory string

const (
	// CategoryValidation is bad local input: malformed flags, invalid
	// field values.
	CategoryValidation ErrorCategory = "validation"

	// CategoryNotFound is a missing record.
	CategoryNotFound ErrorCategory = "not_found"

	// CategoryForbidden is an authentication or permission failure.
	CategoryForbidden ErrorCategory = "forbidden"

	// CategoryConflict is a rejected mutation (stale data, duplicate).
	CategoryConflict ErrorCategory = "conflict"

	// CategoryTransient is a network or server failure worth
	// retrying.
	CategoryTransient ErrorCategory = "transient"

	// CategoryInternal is a bug on our side.
	CategoryInternal ErrorCategory = "internal"
)

// ToolError pairs an error with its category.
type ToolError struct {
	Category ErrorCategory
	Err      error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: %v", e.Category, e.Err)
}

func (e *ToolError) Unwrap() error { return e.Err }

// Validation wraps err as a validation failure.
func Validation(err error) *ToolError {
	return &ToolError{Category: CategoryValidation, Err: err}
}

// NotFound wraps err as a missing-record failure.
func NotFound(err error) *ToolError {
	return &ToolError{Category: CategoryNotFound, Err: err}
}

// Forbidden wraps err as an authorization failure.
func Forbidden(err error) *ToolError {
	return &ToolError{Category: CategoryForbidden, Err: err}
}

// Conflict wraps err as a rejected mutation.
func Conflict(err error) *ToolError {
	return &ToolError{Category: CategoryConflict, Err: err}
}

// Transient wraps err as a retryable failure.
func Transient(err error) *ToolError {
	return &ToolError{Category: CategoryTransient, Err: err}
}

// Internal wraps err as a bug.
func Internal(err error) *ToolError {
	return &ToolError{Category: CategoryInternal, Err: err}
}

// Categorize maps a service call error to a ToolError. Transport
// failures are transient; HTTP statuses map by meaning.
func Categorize(err error) *ToolError {
	switch {
	case api.ErrStatus(err, http.StatusBadRequest),
		api.ErrStatus(err, http.StatusUnprocessableEntity):
		return Validation(err)
	case api.ErrStatus(err, http.StatusNotFound):
		return NotFound(err)
	case api.ErrStatus(err, http.StatusUnauthorized),
		api.ErrStatus(err, http.StatusForbidden):
		return Forbidden(err)
	case api.ErrStatus(err, http.StatusConflict):
		return Conflict(err)
	default:
		return Transient(err)
	}
}
