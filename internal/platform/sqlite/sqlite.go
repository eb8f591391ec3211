// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sqlite opens the embedded SQLite database used by the catalog in
// local runs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	// Pure-Go SQLite driver (no CGO required)
	_ "modernc.org/sqlite"
)

// Open opens dsn with foreign keys enforced. The pool is limited to one
// connection: SQLite serializes writers anyway, and an in-memory database
// lives only as long as its connection.
//
// # Parameters
//   - ctx: Context for the initial ping.
//   - dsn: A file path, or a "file:" URI such as "file:catalog?mode=memory&cache=shared".
//   - logger: Structured logger for connection events.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping database: %w", err)
	}

	if !isMemory(dsn) {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: enable WAL mode: %w", err)
		}
	}

	logger.Info("sqlite_database_opened", slog.Bool("memory", isMemory(dsn)))
	return db, nil
}

// withPragmas appends the per-connection pragmas understood by modernc.org/sqlite.
func withPragmas(dsn string) string {
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func isMemory(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}
