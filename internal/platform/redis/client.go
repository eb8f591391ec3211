// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides the optional Redis client used to cache the list of
harvest dates. Every dated lookup without an explicit date resolves the latest
harvest, so the DISTINCT scan is the hottest query of the service.
*/
package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// probeTimeout bounds the startup ping and every readiness probe.
const probeTimeout = 2 * time.Second

// tune sizes the pool for a single cached key. Reads are tiny, so a slow
// Redis should fail fast and let the resolver fall back to the store.
func tune(options *redis.Options) {
	options.PoolSize = 4
	options.MinIdleConns = 1
	options.DialTimeout = 3 * time.Second
	options.ReadTimeout = 300 * time.Millisecond
	options.WriteTimeout = 300 * time.Millisecond
	options.ContextTimeoutEnabled = true
}

// NewClient connects to the Redis instance named by rawURL and pings it once.
func NewClient(ctx context.Context, rawURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}
	tune(options)

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		return nil, errors.Join(err, client.Close())
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
	)
	return client, nil
}

// Ping is the readiness probe of the date cache.
func Ping(ctx context.Context, client *redis.Client) error {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	if err := client.Ping(probeCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping %s: %w", client.Options().Addr, err)
	}
	return nil
}
