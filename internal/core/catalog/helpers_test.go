// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taibuivan/langdata/internal/core/catalog"
	"github.com/taibuivan/langdata/internal/platform/filestore"
	"github.com/taibuivan/langdata/internal/platform/migration"
	pgstore "github.com/taibuivan/langdata/internal/platform/postgres"
	"github.com/taibuivan/langdata/internal/platform/sqlite"
	"github.com/taibuivan/langdata/pkg/uuidv7"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newRepository opens a private in-memory catalog.
func newRepository(t *testing.T) *catalog.SQLiteRepository {
	t.Helper()

	db, err := sqlite.Open(context.Background(), "file:catalog-"+uuidv7.New()+"?mode=memory&cache=shared", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repository, err := catalog.NewSQLiteRepository(context.Background(), db)
	require.NoError(t, err)
	return repository
}

// catalogMigrations is the schema directory relative to this package.
const catalogMigrations = "../../../data/migrations"

// newPostgresRepository migrates the database named by DATABASE_URL and
// empties the catalog tables. It skips when DATABASE_URL is unset or points
// at SQLite.
func newPostgresRepository(t *testing.T) *catalog.PostgresRepository {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" || !strings.HasPrefix(dsn, "postgres") {
		t.Skip("DATABASE_URL does not name a PostgreSQL database")
	}
	ctx := context.Background()

	require.NoError(t, migration.RunUp(dsn, catalogMigrations, discardLogger()))
	pool, err := pgstore.NewPool(ctx, dsn, discardLogger())
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE harvest, language_country, language, country, region`)
	require.NoError(t, err)
	return catalog.NewPostgresRepository(pool)
}

// forEachStore runs body against the in-memory SQLite store and, when
// DATABASE_URL is set, against PostgreSQL.
func forEachStore(t *testing.T, body func(t *testing.T, repository catalog.Repository)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) { body(t, newRepository(t)) })
	t.Run("postgres", func(t *testing.T) { body(t, newPostgresRepository(t)) })
}

type fixture struct {
	repository catalog.Repository
	files      *filestore.Store
	service    *catalog.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, newRepository(t))
}

func newFixtureWith(t *testing.T, repository catalog.Repository) *fixture {
	t.Helper()

	files, err := filestore.New(t.TempDir())
	require.NoError(t, err)

	logger := discardLogger()
	dates := catalog.NewDateResolver(repository, nil, logger)

	return &fixture{
		repository: repository,
		files:      files,
		service:    catalog.NewService(repository, files, dates, logger),
	}
}

// languageInput decodes a POST /languages body.
func languageInput(t *testing.T, body string) catalog.LanguageInput {
	t.Helper()

	var input catalog.LanguageInput
	require.NoError(t, input.UnmarshalJSON([]byte(body)))
	return input
}
