// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/langdata/internal/platform/constants"
	"github.com/taibuivan/langdata/internal/platform/middleware"
)

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when absent"},
		{name: "client id reused", incoming: "scrape-2018-05-01", keep: true},
		{name: "oversized id replaced", incoming: strings.Repeat("x", 200)},
		{name: "id with spaces replaced", incoming: "a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/dates", nil)
			if tt.incoming != "" {
				request.Header.Set(constants.HeaderXRequestID, tt.incoming)
			}
			recorder := httptest.NewRecorder()

			middleware.RequestID()(principalEcho()).ServeHTTP(recorder, request)

			got := recorder.Header().Get(constants.HeaderXRequestID)
			assert.NotEmpty(t, got)
			if tt.keep {
				assert.Equal(t, tt.incoming, got)
			} else {
				assert.NotEqual(t, tt.incoming, got)
			}
		})
	}
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx)(principalEcho())

	send := func(ip string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(http.MethodGet, "/dates", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder
	}

	var throttled *httptest.ResponseRecorder
	for range constants.DefaultRateLimitBurst * 2 {
		if recorder := send("203.0.113.7"); recorder.Code == http.StatusTooManyRequests {
			throttled = recorder
			break
		}
	}

	if assert.NotNil(t, throttled) {
		assert.Equal(t, "1", throttled.Header().Get("Retry-After"))
		assert.Contains(t, throttled.Body.String(), "RATE_LIMITED")
	}
	assert.Equal(t, http.StatusOK, send("198.51.100.2").Code)
}

func TestPanicRecovery(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("corrupt summary")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/languages/aaa", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
	assert.Contains(t, buffer.String(), "panic_recovered")
	assert.Contains(t, buffer.String(), "corrupt summary")
}
