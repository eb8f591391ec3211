// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/taibuivan/langdata/internal/resources"
)

// Repository defines the data access contract of the catalog.
//
// Lookups return dberr.ErrNotFound when the key has no row. Create methods
// return dberr.ErrConflict when a unique key already exists; callers resolve
// that by finding the row again. List methods never return nil slices.
type Repository interface {
	// Harvest dates
	ListHarvestDates(context context.Context) ([]string, error)

	// Regions
	ListRegionNames(context context.Context) ([]string, error)
	GetRegionByName(context context.Context, name string) (*Region, error)
	CreateRegion(context context.Context, region *Region) error
	DeleteRegion(context context.Context, id string) error

	// Countries
	ListCountryNames(context context.Context) ([]string, error)
	ListCountryNamesByRegion(context context.Context, regionID string) ([]string, error)
	GetCountryByName(context context.Context, name string) (*Country, error)
	CreateCountry(context context.Context, country *Country) error
	AssignCountryRegion(context context.Context, countryID, regionID string) error
	DeleteCountry(context context.Context, id string) error

	// Languages
	GetLanguageByCode(context context.Context, code string) (*Language, error)
	CreateLanguage(context context.Context, language *Language) error
	LinkLanguageCountry(context context.Context, languageID, countryID string) error
	ListLanguageCodesByCountry(context context.Context, countryID string) ([]string, error)
	DeleteLanguage(context context.Context, id string) (resourcePaths []string, err error)

	// Harvests
	GetHarvest(context context.Context, languageID, date string) (*Harvest, error)
	UpsertHarvest(context context.Context, harvest *Harvest) error
	ListCountryHarvests(context context.Context, countryID, date string) ([]LanguageHarvest, error)
	ListLanguagesAt(context context.Context, date string) ([]LanguageHarvest, error)
	DeleteHarvestsByDate(context context.Context, date string) (resourcePaths []string, err error)
}

// # Column Codecs

// encodeSummary returns the JSON of a summary, or nil for SQL NULL.
func encodeSummary(summary resources.Summary) ([]byte, error) {
	if summary == nil {
		return nil, nil
	}
	return json.Marshal(summary)
}

// decodeSummary reads a stored summary. NULL stays nil.
func decodeSummary(data []byte) (resources.Summary, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var summary resources.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// metadataOrEmpty keeps the NOT NULL metadata column valid.
func metadataOrEmpty(metadata json.RawMessage) []byte {
	if len(metadata) == 0 {
		return []byte("{}")
	}
	return metadata
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}

// nonEmpty drops blank resource paths.
func nonEmpty(paths []string) []string {
	kept := []string{}
	for _, path := range paths {
		if strings.TrimSpace(path) != "" {
			kept = append(kept, path)
		}
	}
	return kept
}
