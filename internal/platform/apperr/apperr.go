// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the Lang service.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP and gRPC responses.

Architecture:

  - AppError: A struct containing a machine-readable error code and a client-safe message.
  - Mapping: Explicit mapping from AppError to HTTP status codes (see [AppError.HTTPStatus]).
  - Details: Itemized field messages for validation problems.

Every error that leaves the application layer should be an [AppError] to ensure
consistent problem-details responses.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// # Error Codes

const (
	// CodeValidation marks a request or entity that failed validation.
	CodeValidation = "VALIDATION_PROBLEM"
	// CodeNotFound marks a lookup for a key that does not exist.
	CodeNotFound = "NOT_FOUND"
	// CodeConflict marks a write that collides with an existing key.
	CodeConflict = "CONFLICT"
	// CodeInvalidRequest marks a body that could not be decoded.
	CodeInvalidRequest = "INVALID_REQUEST"
	// CodeRateLimited marks a request rejected by the rate limiter.
	CodeRateLimited = "TOO_MANY_REQUESTS"
	// CodeUnexpected marks any unhandled server-side failure.
	CodeUnexpected = "UNEXPECTED"
)

// AppError is the canonical error type for the Lang service.
//
// It carries an HTTP status code, a machine-readable code, a client-safe
// message, and an optional slice of field-level validation errors.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// in production to avoid leaking internal implementation details (e.g., SQL).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"errorCode"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"detail"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_PROBLEM responses.
	Details []FieldError `json:"errors,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// Messages flattens the field details into plain strings, falling back to
// the top-level message when there are none.
func (e *AppError) Messages() []string {
	if len(e.Details) == 0 {
		return []string{e.Message}
	}
	messages := make([]string, 0, len(e.Details))
	for _, detail := range e.Details {
		messages = append(messages, detail.Message)
	}
	return messages
}

// # Client Errors (4xx)

// NotFound creates a NOT_FOUND [AppError].
//
// Lookups of unknown keys are reported as a typed failure result, which this
// service exposes as 400 rather than 404.
//
// Example:
//
//	apperr.NotFound("Lang with Id = CONFIG_ADD was not found")
func NotFound(msg string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// InvalidRequest creates a 400 [AppError] for bodies that cannot be decoded.
func InvalidRequest(msg string) *AppError {
	return &AppError{
		Code:       CodeInvalidRequest,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       CodeRateLimited,
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client in production.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeUnexpected,
		Message:    "An unhandled exception has occurred while executing the request.",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsCode reports whether err carries an [*AppError] with the given code.
func IsCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}
