// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It maps OS environment variables into a strongly-typed struct with
'caarlos0/env'. cmd/api loads an optional .env file first, so local runs can
keep their settings next to the binary.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config

import (
	"fmt"
	"strings"
	"time"
	// Embedded zone database; RETENTION_TIMEZONE must resolve in slim containers.
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the datasource API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"3000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational store. postgres:// URLs use pgx; sqlite:// URLs (or a bare
	// file path ending in .db) use the embedded SQLite store.
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Optional harvest date cache (Redis). Empty disables caching.
	RedisURL      string        `env:"REDIS_URL"`
	DatesCacheTTL time.Duration `env:"DATES_CACHE_TTL" envDefault:"5m"`

	// HarvestRepository is the root folder of the stored resource documents.
	HarvestRepository string `env:"HARVEST_REPOSITORY,required"`

	// Mutation gate credentials. At least one must be configured.
	AdminPassword     string `env:"ADMIN_PASSWORD"`
	AdminPasswordHash string `env:"ADMIN_PASSWORD_HASH"`
	JWTPubKeyPath     string `env:"JWT_PUBLIC_KEY_PATH"`

	// Harvest retention. Zero interval disables the in-process scheduler;
	// POST /cleanup keeps working either way.
	RetentionInterval time.Duration `env:"RETENTION_INTERVAL" envDefault:"0"`
	RetentionTimezone string        `env:"RETENTION_TIMEZONE" envDefault:"Australia/Melbourne"`

	// Cross-Origin Resource Sharing, comma separated exact origins.
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	if c.AdminPassword == "" && c.AdminPasswordHash == "" && c.JWTPubKeyPath == "" {
		return fmt.Errorf("config: one of ADMIN_PASSWORD, ADMIN_PASSWORD_HASH or JWT_PUBLIC_KEY_PATH is required")
	}
	if c.RetentionInterval < 0 {
		return fmt.Errorf("config: RETENTION_INTERVAL must not be negative")
	}
	if _, err := time.LoadLocation(c.RetentionTimezone); err != nil {
		return fmt.Errorf("config: invalid RETENTION_TIMEZONE %q: %w", c.RetentionTimezone, err)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// UsesSQLite reports whether DatabaseURL points at the embedded SQLite store.
func (c *Config) UsesSQLite() bool {
	return strings.HasPrefix(c.DatabaseURL, "sqlite://") ||
		strings.HasPrefix(c.DatabaseURL, "file:") ||
		strings.HasSuffix(c.DatabaseURL, ".db")
}

// SQLitePath returns the SQLite DSN with the sqlite:// scheme removed.
func (c *Config) SQLitePath() string {
	return strings.TrimPrefix(c.DatabaseURL, "sqlite://")
}

// AllowedOrigins splits ExtraOrigins into trimmed, non-empty entries.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
