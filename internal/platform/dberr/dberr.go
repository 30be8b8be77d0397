// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/validate"
)

// ErrNotFound is returned by repositories when a queried row doesn't exist.
// Callers translate it into a domain-specific message.
var ErrNotFound = errors.New("dberr: record not found")

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}

	// 2. Already classified errors pass through untouched
	if apperr.IsAppError(err) {
		return err
	}

	// 3. Unique violations become conflicts
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		appErr := apperr.Conflict(fmt.Sprintf("%s: a record with the same key already exists", action))
		appErr.Cause = err
		return appErr
	}

	// 4. Check constraints reject the value itself, so they are client errors
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
		appErr := apperr.ValidationError(validate.ValidationTitle, apperr.FieldError{
			Field:   pgErr.ColumnName,
			Message: fmt.Sprintf("%s: value rejected by constraint %s", action, pgErr.ConstraintName),
		})
		appErr.Cause = err
		return appErr
	}

	// 5. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err signals a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
