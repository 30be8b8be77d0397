// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mediator

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/ctxutil"
)

// Validator is implemented by requests that check their own shape.
type Validator interface {
	Validate() error
}

// Validation rejects requests whose Validate method fails, before any handler runs.
func Validation() Behavior {
	return func(ctx context.Context, request any, next Next) (any, error) {
		if validator, ok := request.(Validator); ok {
			if err := validator.Validate(); err != nil {
				return nil, err
			}
		}
		return next(ctx)
	}
}

// Logging records the request name, latency and outcome of every dispatch.
//
// Client-side failures (4xx application errors) are logged at WARN, every
// other failure at ERROR.
func Logging(logger *slog.Logger) Behavior {
	return func(ctx context.Context, request any, next Next) (any, error) {
		startTime := time.Now()
		name := RequestName(request)

		result, err := next(ctx)

		attrs := []slog.Attr{
			slog.String("request", name),
			slog.Int64("latency_ms", time.Since(startTime).Milliseconds()),
		}
		if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
			attrs = append(attrs, slog.String("request_id", requestID))
		}

		if err == nil {
			logger.LogAttrs(ctx, slog.LevelDebug, "mediator_request_handled", attrs...)
			return result, nil
		}

		level := slog.LevelError
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus < http.StatusInternalServerError {
			level = slog.LevelWarn
			attrs = append(attrs, slog.String("code", appErr.Code))
		}
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(ctx, level, "mediator_request_failed", attrs...)

		return result, err
	}
}
