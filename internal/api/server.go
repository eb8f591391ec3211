// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api is the composition root of the HTTP transport.

It assembles the middleware chain, the infrastructure probes and the domain
routers into one chi tree, and owns the [http.Server] lifecycle. Only this
package and cmd/api touch net/http server primitives.
*/
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/langdata/internal/core/catalog"
	"github.com/taibuivan/langdata/internal/platform/config"
	"github.com/taibuivan/langdata/internal/platform/constants"
	"github.com/taibuivan/langdata/internal/platform/middleware"
	"github.com/taibuivan/langdata/internal/retention"
)

// Handlers are the route sets the server mounts.
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	// Catalog serves dates, regions, countries and languages at the root.
	Catalog *catalog.Handler

	// Retention serves POST /cleanup. Nil leaves the route unmounted.
	Retention *retention.Handler
}

// Server owns the routed handler tree and the listening [http.Server].
type Server struct {
	router chi.Router
	http   *http.Server
	log    *slog.Logger
}

// NewServer builds the router. context bounds background work started by the
// middleware, such as the rate limiter sweep.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, h Handlers) *Server {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID(),
		middleware.StructuredLogger(log),
		chimw.Timeout(constants.GlobalRequestTimeout),
		middleware.RateLimit(context),
		middleware.PanicRecovery(log),
		middleware.CORS(cfg),
		chimw.CleanPath,
	)
	mount(router, h)

	return &Server{
		router: router,
		log:    log,
		http: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
	}
}

// mount registers the probes, the help document and the domain routers.
// Catalog routes sit at the root, where harvest consumers look for them.
func mount(router chi.Router, h Handlers) {
	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)
	router.Get("/", help)

	if h.Retention != nil {
		router.Mount("/cleanup", h.Retention.Routes())
	}
	router.Mount("/", h.Catalog.Routes())
}

// Handler returns the routed tree without the listener, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

/*
Run serves until ctx is cancelled, then drains in-flight requests for at most
grace before returning.

Returns:
  - nil after a clean drain
  - the listener error if the port could not be served
  - the shutdown error if draining exceeded grace
*/
func (s *Server) Run(ctx context.Context, grace time.Duration) error {
	failed := make(chan error, 1)
	go func() {
		s.log.Info("server_listening", slog.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server_draining", slog.Duration("grace", grace))
	drainCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
	defer cancel()
	return s.http.Shutdown(drainCtx)
}
