// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/langdata/internal/platform/config"
)

/*
TestLoad_Defaults verifies defaults and the sqlite switch.
*/
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://catalog.db")
	t.Setenv("HARVEST_REPOSITORY", t.TempDir())
	t.Setenv("ADMIN_PASSWORD", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.ServerPort)
	assert.True(t, cfg.UsesSQLite())
	assert.Equal(t, "catalog.db", cfg.SQLitePath())
	assert.Zero(t, cfg.RetentionInterval)
	assert.Equal(t, "Australia/Melbourne", cfg.RetentionTimezone)
}

/*
TestLoad_RequiresCredential rejects a server with an open mutation gate.
*/
func TestLoad_RequiresCredential(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/catalog")
	t.Setenv("HARVEST_REPOSITORY", t.TempDir())
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("JWT_PUBLIC_KEY_PATH", "")

	_, err := config.Load()
	assert.Error(t, err)
}

/*
TestConfig_AllowedOrigins trims and drops empty entries.
*/
func TestConfig_AllowedOrigins(t *testing.T) {
	cfg := &config.Config{ExtraOrigins: " example.org, ,language-archives.services "}
	assert.Equal(t, []string{"example.org", "language-archives.services"}, cfg.AllowedOrigins())
	assert.False(t, (&config.Config{DatabaseURL: "postgres://db/catalog"}).UsesSQLite())
}
