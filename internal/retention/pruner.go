// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package retention

import (
	"context"
	"log/slog"
	"time"
)

// HarvestStore is the part of the catalog store a retention pass needs.
type HarvestStore interface {
	ListHarvestDates(context context.Context) ([]string, error)
	DeleteHarvestsByDate(context context.Context, date string) ([]string, error)
}

// ResourceRemover deletes resource documents from the file store.
type ResourceRemover interface {
	Remove(path string) error
}

// DateInvalidator drops cached harvest dates.
type DateInvalidator interface {
	Invalidate(context context.Context)
}

// Report describes one retention pass.
type Report struct {
	Today    string   `json:"today"`
	Kept     []string `json:"kept"`
	Removed  []string `json:"removed"`
	Harvests int      `json:"harvests"`
}

// Pruner applies a [Policy] to the catalog.
type Pruner struct {
	store  HarvestStore
	files  ResourceRemover
	dates  DateInvalidator
	policy *Policy
	logger *slog.Logger
}

// NewPruner wires a pruner. dates may be nil when no date cache is used.
func NewPruner(store HarvestStore, files ResourceRemover, dates DateInvalidator, policy *Policy, logger *slog.Logger) *Pruner {
	return &Pruner{
		store:  store,
		files:  files,
		dates:  dates,
		policy: policy,
		logger: logger,
	}
}

/*
Prune runs one retention pass.

# Flow

 1. Every distinct harvest date is checked against the policy.
 2. The harvests of each rejected date are deleted from the store.
 3. Their resource documents are removed. Failures are logged and the pass
    goes on.

Returns:
  - The pass report, also when it stopped on a store error.
*/
func (pruner *Pruner) Prune(context context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{Today: pruner.policy.Today(), Kept: []string{}, Removed: []string{}}

	dates, err := pruner.store.ListHarvestDates(context)
	if err != nil {
		return report, err
	}

	defer func() {
		if pruner.dates != nil && len(report.Removed) > 0 {
			pruner.dates.Invalidate(context)
		}
	}()

	for _, date := range dates {
		if pruner.policy.Keep(date, report.Today) {
			report.Kept = append(report.Kept, date)
			continue
		}

		paths, err := pruner.store.DeleteHarvestsByDate(context, date)
		if err != nil {
			return report, err
		}
		report.Removed = append(report.Removed, date)
		report.Harvests += len(paths)

		for _, path := range paths {
			if err := pruner.files.Remove(path); err != nil {
				pruner.logger.WarnContext(context, "retention_resources_remove_failed",
					slog.String("path", path), slog.Any("error", err))
			}
		}
	}

	pruner.logger.InfoContext(context, "retention_pass_finished",
		slog.String("today", report.Today),
		slog.Int("kept", len(report.Kept)),
		slog.Int("removed", len(report.Removed)),
		slog.Int("harvests", report.Harvests),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return report, nil
}
