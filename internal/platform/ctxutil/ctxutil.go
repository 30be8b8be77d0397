// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/configlang/internal/platform/ctxkey"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Error Verbosity

// WithErrorDetail returns a new context recording whether error responses may
// expose causes and stack traces. It is enabled outside production only.
func WithErrorDetail(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, ctxkey.KeyErrorDetail, enabled)
}

// ErrorDetailEnabled reports whether error internals may be sent to clients.
// Defaults to false.
func ErrorDetailEnabled(ctx context.Context) bool {
	enabled, _ := ctx.Value(ctxkey.KeyErrorDetail).(bool)
	return enabled
}
