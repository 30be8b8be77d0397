// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used by request validators in the application layer and by
// the domain entities themselves, never by handlers or storage. It ensures that
// business logic only operates on semantically valid data.
package validate

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/taibuivan/configlang/internal/platform/apperr"
)

// ValidationTitle is the top-level message attached to every validation error.
const ValidationTitle = "One or more validation errors occurred."

var (
	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.InvalidRequest("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, fmt.Sprintf("%s must not be null or empty", field))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("%s must not exceed %d characters", field, max))
	}
	return v
}

// OptionalMaxLen applies [Validator.MaxLen] only when value is present.
func (v *Validator) OptionalMaxLen(field string, value *string, max int) *Validator {
	if value == nil {
		return v
	}
	return v.MaxLen(field, *value, max)
}

// UpperCase fails if any letter in value is not uppercase.
//
// Only letters are inspected; digits and separators such as '_' or '-' are
// tolerated. An empty value passes (pair it with [Validator.Required]).
func (v *Validator) UpperCase(field, value, message string) *Validator {
	if !IsUpperCase(value) {
		v.add(field, message)
	}
	return v
}

// NoWhitespace fails if value contains any Unicode whitespace.
func (v *Validator) NoWhitespace(field, value, message string) *Validator {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		v.add(field, message)
	}
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("id", strings.HasPrefix(id, "_"), "Id must not start with '_'")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_PROBLEM) if any rules failed,
// or nil if all rules passed.
//
// This is the only output method; call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(ValidationTitle, v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// IsUpperCase reports whether every letter in s is uppercase.
func IsUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
