// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all API handlers.
//
// # Architecture
//
// This package centralizes the presentation logic for HTTP responses.
// Successful responses carry the resource itself as JSON; every error is
// rendered as an RFC 9457 problem-details document with an application
// "errorCode" extension, so clients can branch on a stable code instead of
// parsing messages.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/constants"
	"github.com/taibuivan/configlang/internal/platform/ctxutil"
)

// ProblemDetails is the JSON body of every error response.
type ProblemDetails struct {
	Type      string              `json:"type"`
	Title     string              `json:"title"`
	Status    int                 `json:"status"`
	Detail    string              `json:"detail,omitempty"`
	Instance  string              `json:"instance,omitempty"`
	ErrorCode string              `json:"errorCode"`
	Errors    []apperr.FieldError `json:"errors,omitempty"`
	TraceID   string              `json:"traceId,omitempty"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload any) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes a 200 OK response with data as the body.
func OK(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusOK, data)
}

// Created writes a 201 Created response with data as the body.
func Created(writer http.ResponseWriter, data any) {
	JSON(writer, http.StatusCreated, data)
}

// NoContent writes a 204 No Content response.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error converts any Go error into a problem-details response.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	ctx := request.Context()
	logger := ctxutil.GetLogger(ctx)

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Unexpected internal error: log full details but hide them from the client.
		logger.ErrorContext(ctx, "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
		)
		appError = apperr.Internal(err)
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(ctx, "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(ctx)),
			slog.Any("cause", appError.Cause),
		)
	}

	problem := NewProblem(request, appError)
	if appError.HTTPStatus >= http.StatusInternalServerError && ctxutil.ErrorDetailEnabled(ctx) && appError.Cause != nil {
		problem.Detail = appError.Cause.Error()
	}

	Problem(writer, problem)
}

// NewProblem builds the problem-details body for appError.
//
// Outside production the request id is attached as "traceId".
func NewProblem(request *http.Request, appError *apperr.AppError) ProblemDetails {
	problem := ProblemDetails{
		Type:      "about:blank",
		Title:     http.StatusText(appError.HTTPStatus),
		Status:    appError.HTTPStatus,
		Detail:    appError.Message,
		Instance:  request.URL.Path,
		ErrorCode: appError.Code,
		Errors:    appError.Details,
	}
	if problem.Title == "" {
		problem.Title = apperr.Internal(nil).Message
	}
	if ctxutil.ErrorDetailEnabled(request.Context()) {
		problem.TraceID = ctxutil.GetRequestID(request.Context())
	}
	return problem
}

// Problem writes a problem-details document with its own status code.
func Problem(writer http.ResponseWriter, problem ProblemDetails) {
	writer.Header().Set(constants.HeaderContentType, constants.ContentTypeProblem)
	writer.WriteHeader(problem.Status)
	_ = json.NewEncoder(writer).Encode(problem)
}
