// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the language harvest datasource.
//
// # Startup Sequence
//
//  1. Load the optional .env file and initialize the structured logger.
//  2. Load configuration from environment variables.
//  3. Open the catalog store: PostgreSQL (pgxpool + migrations) or SQLite.
//  4. Connect to Redis when configured (harvest date cache).
//  5. Open the harvest resource repository.
//  6. Wire the admin gate, catalog and retention handlers.
//  7. Start the retention scheduler when an interval is set.
//  8. Start HTTP server with graceful shutdown.
//
// Running "api hash-secret <password>" prints a bcrypt hash suitable for
// ADMIN_PASSWORD_HASH and exits.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/taibuivan/langdata/internal/api"
	"github.com/taibuivan/langdata/internal/core/catalog"
	"github.com/taibuivan/langdata/internal/platform/config"
	"github.com/taibuivan/langdata/internal/platform/constants"
	"github.com/taibuivan/langdata/internal/platform/filestore"
	"github.com/taibuivan/langdata/internal/platform/middleware"
	"github.com/taibuivan/langdata/internal/platform/migration"
	pgstore "github.com/taibuivan/langdata/internal/platform/postgres"
	redisstore "github.com/taibuivan/langdata/internal/platform/redis"
	"github.com/taibuivan/langdata/internal/platform/sec"
	"github.com/taibuivan/langdata/internal/platform/sqlite"
	"github.com/taibuivan/langdata/internal/retention"
)

func main() {
	if len(os.Args) == 3 && os.Args[1] == "hash-secret" {
		hash, err := sec.HashSecret(os.Args[2])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	// ── 1. Logger ──────────────────────────────────────────────────────────
	// A missing .env is fine: production injects the environment directly.
	envErr := godotenv.Load()

	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn("dotenv_load_failed", slog.Any("error", envErr))
	}

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("sqlite", cfg.UsesSQLite()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	var checks []api.HealthCheck

	// ── 3. Catalog Store ──────────────────────────────────────────────────
	var repository catalog.Repository

	if cfg.UsesSQLite() {
		db, err := sqlite.Open(startupCtx, cfg.SQLitePath(), log)
		must(log, err, "open sqlite")
		defer func() {
			log.Info("closing sqlite database")
			_ = db.Close()
		}()

		sqliteRepository, err := catalog.NewSQLiteRepository(startupCtx, db)
		must(log, err, "create sqlite schema")
		repository = sqliteRepository

		checks = append(checks, api.HealthCheck{Name: "sqlite", Check: db.PingContext})
	} else {
		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing postgres pool")
			pool.Close()
		}()

		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")
		repository = catalog.NewPostgresRepository(pool)

		checks = append(checks, api.HealthCheck{Name: "postgres", Check: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		}})
	}

	// ── 4. Redis ──────────────────────────────────────────────────────────
	var dateCache catalog.DateCache
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		dateCache = catalog.NewRedisDateCache(rdb, cfg.DatesCacheTTL)
		checks = append(checks, api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}})
	}

	// ── 5. Resource Repository ────────────────────────────────────────────
	files, err := filestore.New(cfg.HarvestRepository)
	must(log, err, "open harvest repository")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	secret := sec.NewSecretMatcher(cfg.AdminPassword, cfg.AdminPasswordHash)
	gate := middleware.AdminGate{Secret: secret}
	if cfg.JWTPubKeyPath != "" {
		verifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, constants.AuthIssuer)
		must(log, err, "initialize jwt verifier")
		gate.Verifier = verifier
	}
	log.Info("admin_gate_configured",
		slog.Bool("header_secret", secret.Configured()),
		slog.Bool("bearer_tokens", gate.Verifier != nil),
	)

	dates := catalog.NewDateResolver(repository, dateCache, log)
	catalogService := catalog.NewService(repository, files, dates, log)

	policy, err := retention.NewPolicy(cfg.RetentionTimezone)
	must(log, err, "load retention policy")
	pruner := retention.NewPruner(repository, files, dates, policy, log)

	liveness, readiness := api.NewHealthHandlers(checks, log)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Catalog:   catalog.NewHandler(catalogService, gate),
		Retention: retention.NewHandler(pruner, gate),
	})

	if cfg.RetentionInterval > 0 {
		go pruner.Run(rootCtx, cfg.RetentionInterval)
	}

	// ── 8. Serve Until Signalled ─────────────────────────────────────────
	if err := server.Run(rootCtx, constants.ShutdownTimeout); err != nil {
		log.Error("server_stopped_with_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// newLogger builds the JSON logger with the global app attribute.
func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
