// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/constants"
)

// # Rate Limiting

// retryAfterSeconds is advertised to throttled clients. One second refills
// DefaultRateLimitRPS tokens.
const retryAfterSeconds = 1

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitors is the token bucket registry of one RateLimit middleware.
type visitors struct {
	mu      sync.Mutex
	entries map[string]*visitor
	limit   rate.Limit
	burst   int
}

func newVisitors(limit rate.Limit, burst int) *visitors {
	return &visitors{entries: make(map[string]*visitor), limit: limit, burst: burst}
}

// allow takes one token from the bucket of ip, creating the bucket on first use.
func (registry *visitors) allow(ip string, now time.Time) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	entry, ok := registry.entries[ip]
	if !ok {
		entry = &visitor{limiter: rate.NewLimiter(registry.limit, registry.burst)}
		registry.entries[ip] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for longer than ttl.
func (registry *visitors) sweep(now time.Time, ttl time.Duration) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	for ip, entry := range registry.entries {
		if now.Sub(entry.lastSeen) > ttl {
			delete(registry.entries, ip)
		}
	}
}

/*
RateLimit limits requests per client IP with a token bucket.

The limits come from [constants.DefaultRateLimitRPS] and
[constants.DefaultRateLimitBurst]. Idle clients are swept every
[constants.RateLimitCleanupInterval] until context is done.
*/
func RateLimit(context context.Context) func(http.Handler) http.Handler {
	registry := newVisitors(rate.Limit(constants.DefaultRateLimitRPS), constants.DefaultRateLimitBurst)

	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				registry.sweep(now, constants.RateLimitClientTTL)
			case <-context.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !registry.allow(RealIP(request), time.Now()) {
				appError := apperr.RateLimited(retryAfterSeconds)
				writer.Header().Set("Retry-After", strconv.Itoa(retryAfterSeconds))
				writeError(writer, appError.HTTPStatus, appError.Code, appError.Message)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}
