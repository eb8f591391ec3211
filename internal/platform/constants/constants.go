// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package constants holds the fixed values shared across the datasource:
// server timing, rate limits, header names and cache keys.
package constants

import "time"

// # Metadata

const (
	AppName    = "langdata-datasource"
	AppVersion = "0.3.0"
	// ServiceTitle is the human name reported by GET /.
	ServiceTitle = "OLAC Datasource"
)

// # Server Timing

const (
	// Harvest submissions carry full resource documents, hence the generous
	// read and write windows.
	DefaultReadTimeout       = time.Minute
	DefaultWriteTimeout      = time.Minute
	DefaultIdleTimeout       = 2 * time.Minute
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout cancels the request context, and with it any
	// store query, after this long.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the drain window after SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// Token bucket per client IP. The burst covers a scraper posting every
	// language of a harvest back to back.
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 300

	// Buckets idle for RateLimitClientTTL are dropped on each sweep.
	RateLimitCleanupInterval = time.Minute
	RateLimitClientTTL       = 3 * time.Minute
)

// # Security

const (
	// HeaderAdminCredential carries the shared admin secret on mutation requests.
	HeaderAdminCredential = "X-PDSC-Datasource-Admin"

	// AuthIssuer is the required "iss" claim of admin bearer tokens.
	AuthIssuer = "language-archives.services"

	// PrincipalHeader is the admin principal logged for header credentials.
	PrincipalHeader = "header"
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// Keys of the error envelope written before a handler runs.
const (
	FieldError = "error"
	FieldCode  = "code"
)

// # Cache Keys

// RedisKeyHarvestDates holds the ascending list of distinct harvest dates.
const RedisKeyHarvestDates = "harvest:dates"
