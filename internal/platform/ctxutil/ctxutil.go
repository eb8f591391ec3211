// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil carries request scoped values (correlation ID, logger and
// admin principal) through [context.Context].
package ctxutil

import (
	"context"
	"log/slog"
)

// Each value has its own empty key type so nothing outside this package can
// read or overwrite it.
type (
	requestIDKey struct{}
	loggerKey    struct{}
	adminKey     struct{}
)

// # Request Tracing

// WithRequestID attaches the X-Request-ID correlation value.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the correlation value, or "" outside a request.
func GetRequestID(ctx context.Context) string {
	return lookup[string](ctx, requestIDKey{})
}

// # Structured Logging

// WithLogger attaches the request scoped logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the request scoped logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger := lookup[*slog.Logger](ctx, loggerKey{}); logger != nil {
		return logger
	}
	return slog.Default()
}

// # Admin Principal

// WithAdmin records which credential opened the mutation gate
// ("header" or the JWT subject).
func WithAdmin(ctx context.Context, principal string) context.Context {
	return context.WithValue(ctx, adminKey{}, principal)
}

// GetAdmin returns the admin principal, or "" for anonymous requests.
func GetAdmin(ctx context.Context) string {
	return lookup[string](ctx, adminKey{})
}

func lookup[T any](ctx context.Context, key any) T {
	value, _ := ctx.Value(key).(T)
	return value
}
