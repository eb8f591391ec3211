// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
)

// ResourceFiles stores the raw resource documents of harvests.
type ResourceFiles interface {
	Path(date, code string) (string, error)
	Write(context context.Context, path string, data []byte) error
	Read(context context.Context, path string) ([]byte, error)
	Remove(path string) error
}

// Service implements the catalog lookups and mutations.
type Service struct {
	repo   Repository
	files  ResourceFiles
	dates  *DateResolver
	logger *slog.Logger
}

// NewService wires the catalog service.
func NewService(repo Repository, files ResourceFiles, dates *DateResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		files:  files,
		dates:  dates,
		logger: logger,
	}
}

// ListDates returns the distinct harvest dates, ascending.
func (service *Service) ListDates(context context.Context) ([]string, error) {
	return service.dates.ListHarvestDates(context)
}
