// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/langdata/internal/platform/respond"
)

// probeTimeout bounds each dependency check of /ready.
const probeTimeout = 2 * time.Second

// HealthCheck is one dependency probed by GET /ready, such as "postgres",
// "sqlite" or "redis". Check returns nil when the dependency is usable.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type probeResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type readinessReport struct {
	Status string        `json:"status"`
	Checks []probeResult `json:"checks"`
}

// NewHealthHandlers returns the /health and /ready handlers.
//
// Liveness only proves the process serves HTTP. Readiness runs every check
// concurrently and answers 503 "degraded" when any of them fails.
func NewHealthHandlers(checks []HealthCheck, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		report := probeAll(request.Context(), checks, logger)

		status := http.StatusOK
		if report.Status != "ready" {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(writer, status, report)
	}

	return liveness, readiness
}

// probeAll keeps results in registration order regardless of finish order.
func probeAll(ctx context.Context, checks []HealthCheck, logger *slog.Logger) readinessReport {
	report := readinessReport{Status: "ready", Checks: make([]probeResult, len(checks))}

	var group errgroup.Group
	for i, check := range checks {
		group.Go(func() error {
			probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()

			report.Checks[i] = probeResult{Name: check.Name, OK: true}
			if err := check.Check(probeCtx); err != nil {
				report.Checks[i] = probeResult{Name: check.Name, Error: err.Error()}
				logger.WarnContext(ctx, "readiness_check_failed",
					slog.String("dependency", check.Name),
					slog.Any("error", err),
				)
			}
			return nil
		})
	}
	_ = group.Wait()

	for _, result := range report.Checks {
		if !result.OK {
			report.Status = "degraded"
		}
	}
	return report
}
