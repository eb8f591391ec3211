// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/ctxutil"
	"github.com/taibuivan/langdata/internal/platform/middleware"
	requestutil "github.com/taibuivan/langdata/internal/platform/request"
	"github.com/taibuivan/langdata/internal/platform/respond"
	"github.com/taibuivan/langdata/internal/platform/sec"
	"github.com/taibuivan/langdata/internal/resources"
)

// # Handler Implementation

// Handler implements the HTTP layer of the catalog.
type Handler struct {
	service *Service
	gate    middleware.AdminGate
}

// NewHandler constructs the catalog [Handler]. The gate guards every
// mutation route.
func NewHandler(service *Service, gate middleware.AdminGate) *Handler {
	return &Handler{service: service, gate: gate}
}

// Routes returns a [chi.Router] with the catalog endpoints, meant to be
// mounted at the root.
//
// # Routing Strategy
//
//   - Reads are public.
//   - POST requires a curator credential (the shared header grants it).
//   - DELETE requires an admin credential.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	curator := middleware.RequireAdmin(handler.gate, sec.RoleCurator)
	admin := middleware.RequireAdmin(handler.gate, sec.RoleAdmin)

	router.Get("/dates", handler.listDates)

	router.Route("/regions", func(regions chi.Router) {
		regions.Get("/", handler.listRegions)
		regions.Get("/{name}", handler.getRegion)
		regions.With(curator).Post("/", handler.saveRegion)
		regions.With(admin).Delete("/{name}", handler.deleteRegion)
	})

	router.Route("/countries", func(countries chi.Router) {
		countries.Get("/", handler.listCountries)
		countries.Get("/{name}", handler.getCountry)
		countries.Get("/{name}/stats", handler.getCountryStats)
		countries.With(curator).Post("/", handler.saveCountry)
		countries.With(admin).Delete("/{name}", handler.deleteCountry)
	})

	router.Route("/languages", func(languages chi.Router) {
		languages.Get("/", handler.listLanguages)
		languages.Get("/{code}", handler.getLanguage)
		languages.Get("/{code}/resources", handler.getLanguageResources)
		languages.With(curator).Post("/", handler.saveLanguage)
		languages.With(admin).Delete("/{code}", handler.deleteLanguage)
	})

	return router
}

// # Dates

/*
GET /dates.

Response:
  - 200: []string: distinct harvest dates, ascending
*/
func (handler *Handler) listDates(writer http.ResponseWriter, request *http.Request) {
	dates, err := handler.service.ListDates(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, dates)
}

// # Regions

func (handler *Handler) listRegions(writer http.ResponseWriter, request *http.Request) {
	names, err := handler.service.ListRegions(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, names)
}

/*
GET /regions/{name}.

Response:
  - 200: RegionView
  - 404: empty body
*/
func (handler *Handler) getRegion(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.GetRegion(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

/*
POST /regions.

Request:
  - name: string
  - countries: []string

Response:
  - 200: RegionView
  - 400: ErrorEnvelope
  - 403: ErrorEnvelope
*/
func (handler *Handler) saveRegion(writer http.ResponseWriter, request *http.Request) {
	var input RegionInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.SaveRegion(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) deleteRegion(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteRegion(request.Context(), requestutil.Param(request, "name")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Countries

func (handler *Handler) listCountries(writer http.ResponseWriter, request *http.Request) {
	names, err := handler.service.ListCountries(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, names)
}

func (handler *Handler) getCountry(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.GetCountry(request.Context(), requestutil.Param(request, "name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

/*
GET /countries/{name}/stats.

Request:
  - date: string (YYYYMMDD, defaults to the latest harvest)
  - format: string ("json" or "csv")

Response:
  - 200: CountryStatsView, or text/csv with one row per language
  - 404: empty body
*/
func (handler *Handler) getCountryStats(writer http.ResponseWriter, request *http.Request) {
	format := strings.ToLower(requestutil.Format(request))
	if format != "" && format != formatJSON && format != formatCSV {
		respond.Error(writer, request, apperr.ValidationError("Unsupported format",
			apperr.FieldError{Field: "format", Message: "Must be json or csv"}))
		return
	}

	view, err := handler.service.GetCountryStats(request.Context(), requestutil.Param(request, "name"), requestutil.Date(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if format != formatCSV {
		respond.OK(writer, view)
		return
	}

	writer.Header().Set("Content-Type", "text/csv; charset=utf-8")
	writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", csvFilename(view)))
	writer.WriteHeader(http.StatusOK)

	if err := resources.WriteCSV(writer, StatsProjection(view)); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "country_stats_csv_failed",
			slog.String("country", view.Name), slog.Any("error", err))
	}
}

func (handler *Handler) saveCountry(writer http.ResponseWriter, request *http.Request) {
	var input CountryInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.SaveCountry(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) deleteCountry(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCountry(request.Context(), requestutil.Param(request, "name")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Languages

func (handler *Handler) listLanguages(writer http.ResponseWriter, request *http.Request) {
	list, err := handler.service.GetLanguages(request.Context(), requestutil.Date(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}

func (handler *Handler) getLanguage(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.GetLanguage(request.Context(), requestutil.Param(request, "code"), requestutil.Date(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) getLanguageResources(writer http.ResponseWriter, request *http.Request) {
	view, err := handler.service.GetLanguageResources(request.Context(), requestutil.Param(request, "code"), requestutil.Date(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

/*
POST /languages.

Request:
  - code: string
  - date: string (YYYYMMDD)
  - resources: object (category -> {count, ...})
  - any other key is stored as harvest metadata

Response:
  - 200: LanguageView at the posted date
  - 400: ErrorEnvelope
  - 403: ErrorEnvelope
*/
func (handler *Handler) saveLanguage(writer http.ResponseWriter, request *http.Request) {
	var input LanguageInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	view, err := handler.service.SaveLanguage(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, view)
}

func (handler *Handler) deleteLanguage(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteLanguage(request.Context(), requestutil.Param(request, "code")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}

// # Helpers

const (
	formatJSON = "json"
	formatCSV  = "csv"
)

func csvFilename(view *CountryStatsView) string {
	name := strings.Map(func(r rune) rune {
		if r == '"' || r == '/' || r == '\\' || r < ' ' {
			return '_'
		}
		return r
	}, view.Name)
	if view.Date == "" {
		return name + ".csv"
	}
	return name + "-" + view.Date + ".csv"
}
