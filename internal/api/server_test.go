// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/langdata/internal/api"
	"github.com/taibuivan/langdata/internal/core/catalog"
	"github.com/taibuivan/langdata/internal/platform/config"
	"github.com/taibuivan/langdata/internal/platform/constants"
	"github.com/taibuivan/langdata/internal/platform/filestore"
	"github.com/taibuivan/langdata/internal/platform/middleware"
	"github.com/taibuivan/langdata/internal/platform/sec"
	"github.com/taibuivan/langdata/internal/platform/sqlite"
	"github.com/taibuivan/langdata/internal/retention"
	"github.com/taibuivan/langdata/pkg/uuidv7"
)

func newTestServer(t *testing.T, checks ...api.HealthCheck) http.Handler {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.Open(ctx, "file:api-"+uuidv7.New()+"?mode=memory&cache=shared", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repository, err := catalog.NewSQLiteRepository(ctx, db)
	require.NoError(t, err)
	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	dates := catalog.NewDateResolver(repository, nil, logger)
	gate := middleware.AdminGate{Secret: sec.NewSecretMatcher("s3cret", "")}

	policy, err := retention.NewPolicy("Australia/Melbourne")
	require.NoError(t, err)
	pruner := retention.NewPruner(repository, files, dates, policy, logger)

	liveness, readiness := api.NewHealthHandlers(checks, logger)
	cfg := &config.Config{ServerPort: "0", Environment: "production", ExtraOrigins: "https://catalog.example.org"}

	server := api.NewServer(ctx, cfg, logger, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(catalog.NewService(repository, files, dates, logger), gate),
		Retention: retention.NewHandler(pruner, gate),
	})
	return server.Handler()
}

func serve(handler http.Handler, request *http.Request) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestServer_Help(t *testing.T) {
	handler := newTestServer(t)

	recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), constants.ServiceTitle)
	assert.Contains(t, recorder.Body.String(), `"URI":"/dates"`)
	assert.NotEmpty(t, recorder.Header().Get(constants.HeaderXRequestID))
}

func TestServer_CatalogAtRoot(t *testing.T) {
	handler := newTestServer(t)

	request := httptest.NewRequest(http.MethodPost, "/countries", strings.NewReader(`{"name":"Algeria","languages":["aaa"]}`))
	request.Header.Set(constants.HeaderAdminCredential, "s3cret")
	recorder := serve(handler, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = serve(handler, httptest.NewRequest(http.MethodGet, "/countries/Algeria", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"name":"Algeria","languages":["aaa"]}`, recorder.Body.String())

	recorder = serve(handler, httptest.NewRequest(http.MethodGet, "/countries", nil))
	assert.JSONEq(t, `["Algeria"]`, recorder.Body.String())
}

func TestServer_Cleanup(t *testing.T) {
	handler := newTestServer(t)

	recorder := serve(handler, httptest.NewRequest(http.MethodPost, "/cleanup", nil))
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	request := httptest.NewRequest(http.MethodPost, "/cleanup", nil)
	request.Header.Set(constants.HeaderAdminCredential, "s3cret")
	recorder = serve(handler, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"removed":[]`)
}

func TestServer_CORS(t *testing.T) {
	handler := newTestServer(t)

	request := httptest.NewRequest(http.MethodOptions, "/regions", nil)
	request.Header.Set(constants.HeaderOrigin, "https://catalog.example.org")
	recorder := serve(handler, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://catalog.example.org", recorder.Header().Get("Access-Control-Allow-Origin"))

	request = httptest.NewRequest(http.MethodGet, "/regions", nil)
	request.Header.Set(constants.HeaderOrigin, "https://evil.example.com")
	recorder = serve(handler, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		checks     []api.HealthCheck
		wantStatus int
		wantBody   string
	}{
		{
			name:       "ready",
			checks:     []api.HealthCheck{{Name: "sqlite", Check: func(context.Context) error { return nil }}},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready","checks":[{"name":"sqlite","ok":true}]}`,
		},
		{
			name: "degraded",
			checks: []api.HealthCheck{
				{Name: "postgres", Check: func(context.Context) error { return nil }},
				{Name: "redis", Check: func(context.Context) error { return errors.New("dial tcp: refused") }},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"status":"degraded","checks":[{"name":"postgres","ok":true},{"name":"redis","ok":false,"error":"dial tcp: refused"}]}`,
		},
		{
			name: "check deadline",
			checks: []api.HealthCheck{{Name: "postgres", Check: func(ctx context.Context) error {
				deadline, ok := ctx.Deadline()
				if !ok || time.Until(deadline) > 2*time.Second {
					return errors.New("no deadline")
				}
				return nil
			}}},
			wantStatus: http.StatusOK,
			wantBody:   `{"status":"ready","checks":[{"name":"postgres","ok":true}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestServer(t, tt.checks...)

			recorder := serve(handler, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.JSONEq(t, tt.wantBody, recorder.Body.String())
		})
	}

	recorder := serve(newTestServer(t), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}
