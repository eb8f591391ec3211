// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retention

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/langdata/internal/platform/middleware"
	"github.com/taibuivan/langdata/internal/platform/respond"
	"github.com/taibuivan/langdata/internal/platform/sec"
)

// Handler exposes on-demand retention passes.
type Handler struct {
	pruner *Pruner
	gate   middleware.AdminGate
}

// NewHandler constructs the retention [Handler].
func NewHandler(pruner *Pruner, gate middleware.AdminGate) *Handler {
	return &Handler{pruner: pruner, gate: gate}
}

// Routes returns a [chi.Router] meant to be mounted at /cleanup.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.With(middleware.RequireAdmin(handler.gate, sec.RoleAdmin)).Post("/", handler.cleanup)
	return router
}

/*
POST /cleanup.

Response:
  - 200: Report
  - 403: ErrorEnvelope
  - 500: ErrorEnvelope
*/
func (handler *Handler) cleanup(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.pruner.Prune(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}
