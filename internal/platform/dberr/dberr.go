// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr maps driver errors from both catalog stores (pgx and SQLite)
// onto [apperr.AppError] values.
package dberr

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/langdata/internal/platform/apperr"
)

var (
	// ErrNotFound is returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")

	// ErrConflict is returned when a unique constraint rejected an insert.
	// Find-or-create callers treat it as "someone else created it" and retry the find.
	ErrConflict = apperr.Conflict("Resource already exists")
)

// Wrap classifies a database error. The action names the failing statement
// and is attached to internal errors for the server log.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// Already classified, e.g. by a nested call inside a transaction.
	if apperr.As(err) != nil {
		return err
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	if IsUniqueViolation(err) {
		return ErrConflict
	}

	return apperr.Internal(&actionError{action: action, err: err})
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// Postgres (SQLSTATE 23505) or SQLite.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	// modernc.org/sqlite reports "constraint failed: UNIQUE constraint failed: ..."
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsConflict reports whether err is [ErrConflict].
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

type actionError struct {
	action string
	err    error
}

func (e *actionError) Error() string { return e.action + ": " + e.err.Error() }
func (e *actionError) Unwrap() error { return e.err }
