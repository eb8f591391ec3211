// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"pgx no rows", pgx.ErrNoRows, http.StatusNotFound},
		{"sql no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), http.StatusNotFound},
		{"postgres unique", &pgconn.PgError{Code: pgerrcode.UniqueViolation}, http.StatusConflict},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: region.name (2067)"), http.StatusConflict},
		{"classified", apperr.Forbidden("no"), http.StatusForbidden},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := apperr.As(dberr.Wrap(tt.err, "test_action"))
			if assert.NotNil(t, wrapped) {
				assert.Equal(t, tt.status, wrapped.HTTPStatus)
			}
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, dberr.Wrap(nil, "noop"))
}

func TestWrap_InternalKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := dberr.Wrap(cause, "upsert_harvest")

	assert.ErrorIs(t, wrapped, cause)
	assert.Contains(t, apperr.As(wrapped).Cause.Error(), "upsert_harvest")
}

func TestIsConflict(t *testing.T) {
	assert.True(t, dberr.IsConflict(dberr.Wrap(&pgconn.PgError{Code: pgerrcode.UniqueViolation}, "create_region")))
	assert.False(t, dberr.IsConflict(dberr.ErrNotFound))
}
