// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"
	"sync"
)

// DateLister is the store method behind [DateResolver].
type DateLister interface {
	ListHarvestDates(context context.Context) ([]string, error)
}

// DateCache keeps the ascending list of harvest dates between writes.
type DateCache interface {
	Dates(context context.Context) (dates []string, ok bool, err error)
	StoreDates(context context.Context, dates []string) error
	Invalidate(context context.Context) error
}

// DateResolver picks the as-of date of dated views.
//
// The cache is optional. Cache failures are logged and the store is read
// instead; they never fail a request.
//
// A list read from the store is not written back if an invalidation ran
// while it was being read, so within one process the cached list never
// lags a committed harvest. Another replica's invalidation cannot be seen
// here; across replicas the lag is bounded by the cache TTL.
type DateResolver struct {
	store  DateLister
	cache  DateCache
	logger *slog.Logger

	// mu orders write-backs against invalidations; generation counts the
	// invalidations.
	mu         sync.Mutex
	generation uint64
}

// NewDateResolver builds a resolver. cache may be nil.
func NewDateResolver(store DateLister, cache DateCache, logger *slog.Logger) *DateResolver {
	return &DateResolver{store: store, cache: cache, logger: logger}
}

// ListHarvestDates returns the distinct harvest dates, ascending. It is empty
// (not nil) when nothing has been harvested.
func (resolver *DateResolver) ListHarvestDates(context context.Context) ([]string, error) {
	if resolver.cache != nil {
		dates, ok, err := resolver.cache.Dates(context)
		if err != nil {
			resolver.logger.WarnContext(context, "harvest_dates_cache_read_failed", slog.Any("error", err))
		} else if ok {
			return nonNil(dates), nil
		}
	}

	observed := resolver.currentGeneration()
	dates, err := resolver.store.ListHarvestDates(context)
	if err != nil {
		return nil, err
	}

	if resolver.cache != nil {
		resolver.storeIfCurrent(context, observed, dates)
	}
	return nonNil(dates), nil
}

func (resolver *DateResolver) currentGeneration() uint64 {
	resolver.mu.Lock()
	defer resolver.mu.Unlock()
	return resolver.generation
}

// storeIfCurrent writes dates back unless an invalidation happened after
// generation observed was read.
func (resolver *DateResolver) storeIfCurrent(context context.Context, observed uint64, dates []string) {
	resolver.mu.Lock()
	defer resolver.mu.Unlock()

	if resolver.generation != observed {
		resolver.logger.DebugContext(context, "harvest_dates_cache_write_skipped")
		return
	}
	if err := resolver.cache.StoreDates(context, dates); err != nil {
		resolver.logger.WarnContext(context, "harvest_dates_cache_write_failed", slog.Any("error", err))
	}
}

// Resolve returns requested verbatim when set, without checking that any
// harvest exists for it. Otherwise it returns the latest harvest date, or ""
// when there are no harvests at all.
func (resolver *DateResolver) Resolve(context context.Context, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}

	dates, err := resolver.ListHarvestDates(context)
	if err != nil {
		return "", err
	}
	if len(dates) == 0 {
		return "", nil
	}
	return dates[len(dates)-1], nil
}

// Invalidate drops the cached dates after harvests were written or removed.
func (resolver *DateResolver) Invalidate(context context.Context) {
	if resolver.cache == nil {
		return
	}

	resolver.mu.Lock()
	defer resolver.mu.Unlock()

	resolver.generation++
	if err := resolver.cache.Invalidate(context); err != nil {
		resolver.logger.WarnContext(context, "harvest_dates_cache_invalidate_failed", slog.Any("error", err))
	}
}
