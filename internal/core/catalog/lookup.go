// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/filestore"
	"github.com/taibuivan/langdata/internal/resources"
	"github.com/taibuivan/langdata/pkg/canon"
	"github.com/taibuivan/langdata/pkg/slice"
)

var (
	errRegionNotFound   = apperr.NotFound("Region")
	errCountryNotFound  = apperr.NotFound("Country")
	errLanguageNotFound = apperr.NotFound("Language")
	errHarvestNotFound  = apperr.NotFound("Harvest")
)

// # Regions

func (service *Service) ListRegions(context context.Context) ([]string, error) {
	return service.repo.ListRegionNames(context)
}

// GetRegion returns the region with its countries sorted by name.
func (service *Service) GetRegion(context context.Context, name string) (*RegionView, error) {
	region, err := service.repo.GetRegionByName(context, canon.Name(name))
	if err != nil {
		return nil, notFoundAs(err, errRegionNotFound)
	}

	countries, err := service.repo.ListCountryNamesByRegion(context, region.ID)
	if err != nil {
		return nil, err
	}

	return &RegionView{
		Name:      region.Name,
		Countries: slice.Map(countries, func(name string) CountryRef { return CountryRef{Name: name} }),
	}, nil
}

// # Countries

func (service *Service) ListCountries(context context.Context) ([]string, error) {
	return service.repo.ListCountryNames(context)
}

// GetCountry returns the country with the codes of every linked language,
// whatever their harvests.
func (service *Service) GetCountry(context context.Context, name string) (*CountryView, error) {
	country, err := service.repo.GetCountryByName(context, canon.Name(name))
	if err != nil {
		return nil, notFoundAs(err, errCountryNotFound)
	}

	codes, err := service.repo.ListLanguageCodesByCountry(context, country.ID)
	if err != nil {
		return nil, err
	}

	return &CountryView{Name: country.Name, Languages: codes}, nil
}

/*
GetCountryStats returns the resource summary of every language of the
country harvested at the as-of date.

Languages without a harvest at that date are left out. A harvest stored
without a summary reports empty stats.
*/
func (service *Service) GetCountryStats(context context.Context, name, requestedDate string) (*CountryStatsView, error) {
	country, err := service.repo.GetCountryByName(context, canon.Name(name))
	if err != nil {
		return nil, notFoundAs(err, errCountryNotFound)
	}

	date, err := service.dates.Resolve(context, requestedDate)
	if err != nil {
		return nil, err
	}

	view := &CountryStatsView{Name: country.Name, Date: date, Languages: []LanguageStats{}}
	if date == "" {
		return view, nil
	}

	rows, err := service.repo.ListCountryHarvests(context, country.ID, date)
	if err != nil {
		return nil, err
	}

	view.Languages = slice.Map(firstPerLanguage(rows), func(row LanguageHarvest) LanguageStats {
		stats := row.Harvest.Summary
		if stats == nil {
			stats = resources.Summary{}
		}
		return LanguageStats{Code: row.Code, Stats: stats}
	})
	return view, nil
}

// StatsProjection turns a stats view into its CSV table.
func StatsProjection(view *CountryStatsView) resources.Projection {
	return resources.Project(slice.Map(view.Languages, func(language LanguageStats) resources.LanguageSummary {
		return resources.LanguageSummary{Code: language.Code, Summary: language.Stats}
	}))
}

// # Languages

// GetLanguage returns the language with its harvest at the as-of date.
// An unknown code, or no harvest at that date, is not found.
func (service *Service) GetLanguage(context context.Context, code, requestedDate string) (*LanguageView, error) {
	language, harvest, err := service.languageHarvest(context, code, requestedDate)
	if err != nil {
		return nil, err
	}

	return &LanguageView{
		Code:     language.Code,
		Harvests: []HarvestView{{Date: harvest.Date, Metadata: harvest.Metadata}},
	}, nil
}

// GetLanguageResources returns the raw resource document of the harvest at
// the as-of date. A harvest stored without a document yields {}.
func (service *Service) GetLanguageResources(context context.Context, code, requestedDate string) (*ResourcesView, error) {
	_, harvest, err := service.languageHarvest(context, code, requestedDate)
	if err != nil {
		return nil, err
	}

	view := &ResourcesView{Date: harvest.Date, Resources: &resources.Document{}}

	data, err := service.files.Read(context, harvest.Resources)
	if errors.Is(err, filestore.ErrNotExist) {
		service.logger.DebugContext(context, "harvest_resources_missing",
			slog.String("code", code), slog.String("path", harvest.Resources))
		return view, nil
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if view.Resources, err = resources.Parse(data); err != nil {
		return nil, apperr.Internal(err)
	}
	return view, nil
}

// GetLanguages lists the languages harvested at the as-of date, sorted by
// code. Each name is read from the harvest metadata.
func (service *Service) GetLanguages(context context.Context, requestedDate string) (*LanguageList, error) {
	date, err := service.dates.Resolve(context, requestedDate)
	if err != nil {
		return nil, err
	}
	if date == "" {
		return &LanguageList{Languages: []LanguageItem{}}, nil
	}

	rows, err := service.repo.ListLanguagesAt(context, date)
	if err != nil {
		return nil, err
	}

	return &LanguageList{
		Languages: slice.Map(firstPerLanguage(rows), func(row LanguageHarvest) LanguageItem {
			return LanguageItem{ID: row.LanguageID, Code: row.Code, Name: metadataString(row.Harvest.Metadata, metadataName)}
		}),
	}, nil
}

// # Helpers

func (service *Service) languageHarvest(context context.Context, code, requestedDate string) (*Language, *Harvest, error) {
	language, err := service.repo.GetLanguageByCode(context, canon.Code(code))
	if err != nil {
		return nil, nil, notFoundAs(err, errLanguageNotFound)
	}

	date, err := service.dates.Resolve(context, requestedDate)
	if err != nil {
		return nil, nil, err
	}
	if date == "" {
		return nil, nil, errHarvestNotFound
	}

	harvest, err := service.repo.GetHarvest(context, language.ID, date)
	if err != nil {
		return nil, nil, notFoundAs(err, errHarvestNotFound)
	}
	return language, harvest, nil
}

// firstPerLanguage keeps the first row of each language. Rows arrive
// grouped by code, and (date, language) is unique, so this only matters if
// that constraint was ever bypassed.
func firstPerLanguage(rows []LanguageHarvest) []LanguageHarvest {
	seen := make(map[string]struct{}, len(rows))
	return slice.Filter(rows, func(row LanguageHarvest) bool {
		if _, ok := seen[row.LanguageID]; ok {
			return false
		}
		seen[row.LanguageID] = struct{}{}
		return true
	})
}

// metadataString reads a top-level string member of a metadata document.
func metadataString(metadata json.RawMessage, key string) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(metadata, &fields); err != nil {
		return ""
	}
	var value string
	if err := json.Unmarshal(fields[key], &value); err != nil {
		return ""
	}
	return value
}

// notFoundAs replaces a generic not-found with the resource specific one.
func notFoundAs(err error, notFound *apperr.AppError) error {
	if apperr.IsNotFound(err) {
		return notFound
	}
	return err
}
