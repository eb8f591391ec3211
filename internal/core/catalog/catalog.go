// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog serves the region, country and language catalog of the
harvest datasource.

Regions own countries, countries and languages are linked many-to-many, and
every language owns one harvest per date. Read views are scoped to an as-of
date: the one requested, or the latest harvest date when none is given.
*/
package catalog

import (
	"encoding/json"

	"github.com/taibuivan/langdata/internal/resources"
)

// # Entities

// Region groups countries.
type Region struct {
	ID   string
	Name string
}

// Country belongs to at most one region. RegionID is nil until a region
// lists the country.
type Country struct {
	ID       string
	Name     string
	RegionID *string
}

// Language is keyed externally by its code.
type Language struct {
	ID   string
	Code string
}

// Harvest is the dated snapshot of one language.
type Harvest struct {
	ID         string
	LanguageID string
	Date       string
	Metadata   json.RawMessage
	// Resources is the file store path of the raw resource document.
	Resources string
	// Summary is nil when the harvest was stored without one.
	Summary resources.Summary
}

// LanguageHarvest is a language joined with its harvest at one date.
type LanguageHarvest struct {
	LanguageID string
	Code       string
	Harvest    Harvest
}

// # Views

// CountryRef is a country as listed inside a region.
type CountryRef struct {
	Name string `json:"name"`
}

// RegionView is returned by GET /regions/{name}.
type RegionView struct {
	Name      string       `json:"name"`
	Countries []CountryRef `json:"countries"`
}

// CountryView is returned by GET /countries/{name}.
type CountryView struct {
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

// LanguageStats is one language of a country stats view.
type LanguageStats struct {
	Code  string            `json:"code"`
	Stats resources.Summary `json:"stats"`
}

// CountryStatsView is returned by GET /countries/{name}/stats.
type CountryStatsView struct {
	Name      string          `json:"name"`
	Date      string          `json:"date"`
	Languages []LanguageStats `json:"languages"`
}

// HarvestView is a harvest as listed inside a language.
type HarvestView struct {
	Date     string          `json:"date"`
	Metadata json.RawMessage `json:"metadata"`
}

// LanguageView is returned by GET /languages/{code}.
type LanguageView struct {
	Code     string        `json:"code"`
	Harvests []HarvestView `json:"harvests"`
}

// ResourcesView is returned by GET /languages/{code}/resources.
type ResourcesView struct {
	Date      string              `json:"date"`
	Resources *resources.Document `json:"resources"`
}

// LanguageItem is one entry of GET /languages.
type LanguageItem struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// LanguageList is returned by GET /languages.
type LanguageList struct {
	Languages []LanguageItem `json:"languages"`
}

// # Inputs

// RegionInput is the body of POST /regions.
type RegionInput struct {
	Name      string   `json:"name"`
	Countries []string `json:"countries"`
}

// CountryInput is the body of POST /countries.
type CountryInput struct {
	Name      string   `json:"name"`
	Languages []string `json:"languages"`
}

// LanguageInput is the body of POST /languages. Every key except "resources"
// is kept as the harvest metadata.
type LanguageInput struct {
	Code      string
	Date      string
	Metadata  *resources.Document
	Resources *resources.Document
}

// UnmarshalJSON splits the body into metadata and resources, keeping the
// key order of both.
func (input *LanguageInput) UnmarshalJSON(data []byte) error {
	body, err := resources.Parse(data)
	if err != nil {
		return err
	}

	parsed := LanguageInput{Metadata: body, Resources: &resources.Document{}}

	if raw, ok := body.Get(FieldResources); ok {
		if parsed.Resources, err = resources.Parse(raw); err != nil {
			return err
		}
		body.Delete(FieldResources)
	}

	parsed.Code = stringField(body, FieldCode)
	parsed.Date = stringField(body, FieldDate)

	*input = parsed
	return nil
}

// stringField reads a string member; other JSON types read as "".
func stringField(document *resources.Document, key string) string {
	raw, ok := document.Get(key)
	if !ok {
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return ""
	}
	return value
}

const (
	FieldName      = "name"
	FieldCountries = "countries"
	FieldLanguages = "languages"
	FieldCode      = "code"
	FieldDate      = "date"
	FieldResources = "resources"
)

// metadataName is the metadata key holding a language's display name.
const metadataName = "name"
