// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package logger builds the structured JSON logger shared by both binaries.
//
// Connection strings and credentials are redacted at the handler level via
// masq, so a stray slog.Any("config", cfg) cannot leak a database password.
package logger

import (
	"io"
	"log/slog"
	"regexp"

	"github.com/m-mizutani/masq"
)

// credentialURLPattern matches "scheme://user:password@" fragments in raw values.
var credentialURLPattern = regexp.MustCompile(`[a-z0-9+]+://[^:/@\s]+:[^@\s]+@`)

// New returns a JSON logger tagged with the application name.
//
// Debug level also records the source location of every entry.
func New(w io.Writer, app string, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		AddSource:   debug,
		ReplaceAttr: redactAttr(),
	})

	return slog.New(handler).With(slog.String("app", app))
}

// redactAttr returns a masq-powered ReplaceAttr function.
func redactAttr() func([]string, slog.Attr) slog.Attr {
	return masq.New(
		masq.WithFieldName("database_url"),
		masq.WithFieldName("redis_url"),
		masq.WithFieldName("password"),
		masq.WithFieldName("token"),
		masq.WithFieldPrefix("secret"),
		masq.WithRegex(credentialURLPattern),
	)
}
