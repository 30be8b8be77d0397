// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/configlang/internal/platform/apperr"
	"github.com/taibuivan/configlang/internal/platform/ctxutil"
	"github.com/taibuivan/configlang/internal/platform/middleware"
	"github.com/taibuivan/configlang/internal/platform/respond"
)

type corsConfig struct {
	dev     bool
	origins []string
}

func (c corsConfig) IsDevelopment() bool      { return c.dev }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

/*
TestRequestID verifies the header is generated when missing and echoed when provided.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, "client-id", seen)
}

/*
TestRateLimiter verifies the bucket rejects once the burst is exhausted.
*/
func TestRateLimiter(t *testing.T) {
	limiter := middleware.NewRateLimiter(0.0001, 2)
	handler := limiter.Handler(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.RemoteAddr = "10.0.0.1:5555"
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		codes = append(codes, recorder.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client still has its own budget.
	assert.True(t, limiter.Allow("10.0.0.2"))
}

/*
TestPanicRecovery verifies a panic becomes a 500 problem-details response.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/Lang", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	var problem respond.ProblemDetails
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	assert.Equal(t, apperr.CodeUnexpected, problem.ErrorCode)
	assert.NotContains(t, problem.Detail, "boom")
}

/*
TestPanicRecovery_DetailEnabled verifies the panic value is exposed outside production.
*/
func TestPanicRecovery_DetailEnabled(t *testing.T) {
	inner := middleware.PanicRecovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	handler := middleware.ErrorDetail(true)(inner)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	var problem respond.ProblemDetails
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &problem))
	assert.Contains(t, problem.Detail, "panic: boom")
}

/*
TestCORS verifies the allow-list in production and the open policy in development.
*/
func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{name: "development allows anything", cfg: corsConfig{dev: true}, origin: "http://localhost:3000", allowed: true},
		{name: "production allow-list hit", cfg: corsConfig{origins: []string{"https://admin.example.com"}}, origin: "https://admin.example.com", allowed: true},
		{name: "production allow-list miss", cfg: corsConfig{origins: []string{"https://admin.example.com"}}, origin: "https://evil.example.com", allowed: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set("Origin", tc.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tc.cfg)(okHandler).ServeHTTP(recorder, request)

			if tc.allowed {
				assert.Equal(t, tc.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

/*
TestReportAPIVersions verifies the header is always set and unknown versions are rejected.
*/
func TestReportAPIVersions(t *testing.T) {
	handler := middleware.ReportAPIVersions("1.0")(okHandler)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/Lang", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "1.0", recorder.Header().Get("api-supported-versions"))

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/Lang?api-version=1.0", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/v1/Lang?api-version=2.0", nil))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "1.0", recorder.Header().Get("api-supported-versions"))
}

/*
TestRealIP verifies proxy headers take precedence over the remote address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.168.1.1:1234"
	assert.Equal(t, "192.168.1.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", middleware.RealIP(request))
}
