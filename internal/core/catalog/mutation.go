// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/ctxutil"
	"github.com/taibuivan/langdata/internal/platform/dberr"
	"github.com/taibuivan/langdata/internal/platform/validate"
	"github.com/taibuivan/langdata/internal/resources"
	"github.com/taibuivan/langdata/pkg/canon"
)

// findOrCreateAttempts bounds the find/create loop when concurrent writers
// keep winning the insert race.
const findOrCreateAttempts = 3

const maxKeyLength = 200

// # Regions

/*
SaveRegion creates the region when missing and assigns every listed country
to it, creating countries as needed. A country listed by another region
before moves to this one.

Returns:
  - The region view after the write.
*/
func (service *Service) SaveRegion(context context.Context, input RegionInput) (*RegionView, error) {
	name := canon.Name(input.Name)
	countries := uniqueNames(input.Countries, canon.Name)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxKeyLength)
	validator.RequiredList(FieldCountries, countries)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	region, err := service.findOrCreateRegion(context, name)
	if err != nil {
		return nil, err
	}

	for _, countryName := range countries {
		country, err := service.findOrCreateCountry(context, countryName, &region.ID)
		if err != nil {
			return nil, err
		}
		if country.RegionID == nil || *country.RegionID != region.ID {
			if err := service.repo.AssignCountryRegion(context, country.ID, region.ID); err != nil {
				return nil, err
			}
		}
	}

	service.logger.InfoContext(context, "region_saved",
		slog.String("region", region.Name),
		slog.Int("countries", len(countries)),
		slog.String("admin", ctxutil.GetAdmin(context)),
	)

	return service.GetRegion(context, region.Name)
}

// DeleteRegion removes the region and, with it, its countries.
func (service *Service) DeleteRegion(context context.Context, name string) error {
	region, err := service.repo.GetRegionByName(context, canon.Name(name))
	if err != nil {
		return notFoundAs(err, errRegionNotFound)
	}
	if err := service.repo.DeleteRegion(context, region.ID); err != nil {
		return notFoundAs(err, errRegionNotFound)
	}

	service.logger.WarnContext(context, "region_deleted",
		slog.String("region", region.Name), slog.String("admin", ctxutil.GetAdmin(context)))
	return nil
}

// # Countries

// SaveCountry creates the country when missing and links every listed
// language to it, creating languages as needed. Links are never removed.
func (service *Service) SaveCountry(context context.Context, input CountryInput) (*CountryView, error) {
	name := canon.Name(input.Name)
	codes := uniqueNames(input.Languages, canon.Code)

	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, maxKeyLength)
	validator.RequiredList(FieldLanguages, codes)
	for i, code := range codes {
		validator.Custom(fmt.Sprintf("%s[%d]", FieldLanguages, i), code != "" && !canon.IsFileSafe(code),
			"Must not contain path separators")
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	country, err := service.findOrCreateCountry(context, name, nil)
	if err != nil {
		return nil, err
	}

	for _, code := range codes {
		language, err := service.findOrCreateLanguage(context, code)
		if err != nil {
			return nil, err
		}
		if err := service.repo.LinkLanguageCountry(context, language.ID, country.ID); err != nil {
			return nil, err
		}
	}

	service.logger.InfoContext(context, "country_saved",
		slog.String("country", country.Name),
		slog.Int("languages", len(codes)),
		slog.String("admin", ctxutil.GetAdmin(context)),
	)

	return service.GetCountry(context, country.Name)
}

// DeleteCountry removes the country and its language links.
func (service *Service) DeleteCountry(context context.Context, name string) error {
	country, err := service.repo.GetCountryByName(context, canon.Name(name))
	if err != nil {
		return notFoundAs(err, errCountryNotFound)
	}
	if err := service.repo.DeleteCountry(context, country.ID); err != nil {
		return notFoundAs(err, errCountryNotFound)
	}

	service.logger.WarnContext(context, "country_deleted",
		slog.String("country", country.Name), slog.String("admin", ctxutil.GetAdmin(context)))
	return nil
}

// # Languages

/*
SaveLanguage stores the harvest of a language at a date.

# Flow

 1. The resource document is written to {date}/{code}.json in the file store.
 2. Its summary is computed from the same document.
 3. The harvest row for (date, language) is inserted or updated in place,
    with every body key except "resources" as metadata.

Returns:
  - The language view at the harvest date.
*/
func (service *Service) SaveLanguage(context context.Context, input LanguageInput) (*LanguageView, error) {
	code := canon.Code(input.Code)

	validator := &validate.Validator{}
	validator.Required(FieldCode, code).MaxLen(FieldCode, code, maxKeyLength)
	validator.Custom(FieldCode, code != "" && !canon.IsFileSafe(code), "Must not contain path separators")
	validator.Required(FieldDate, input.Date).HarvestDate(FieldDate, input.Date)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	language, err := service.findOrCreateLanguage(context, code)
	if err != nil {
		return nil, err
	}

	document := input.Resources
	if document == nil {
		document = &resources.Document{}
	}

	path, err := service.files.Path(input.Date, code)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	data, err := json.Marshal(document)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := service.files.Write(context, path, data); err != nil {
		return nil, apperr.Internal(err)
	}

	metadataDocument := input.Metadata
	if metadataDocument == nil {
		metadataDocument = &resources.Document{}
	}
	metadata, err := json.Marshal(metadataDocument)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	harvest := &Harvest{
		LanguageID: language.ID,
		Date:       input.Date,
		Metadata:   metadata,
		Resources:  path,
		Summary:    resources.Summarize(document),
	}
	if err := service.repo.UpsertHarvest(context, harvest); err != nil {
		return nil, err
	}
	service.dates.Invalidate(context)

	service.logger.InfoContext(context, "harvest_upserted",
		slog.String("code", code),
		slog.String("date", harvest.Date),
		slog.Int("categories", len(harvest.Summary)),
		slog.String("admin", ctxutil.GetAdmin(context)),
	)

	return service.GetLanguage(context, code, input.Date)
}

// DeleteLanguage removes the language, its links and all of its harvests,
// including their resource documents.
func (service *Service) DeleteLanguage(context context.Context, code string) error {
	language, err := service.repo.GetLanguageByCode(context, canon.Code(code))
	if err != nil {
		return notFoundAs(err, errLanguageNotFound)
	}

	paths, err := service.repo.DeleteLanguage(context, language.ID)
	if err != nil {
		return notFoundAs(err, errLanguageNotFound)
	}
	service.dates.Invalidate(context)

	for _, path := range paths {
		if err := service.files.Remove(path); err != nil {
			service.logger.WarnContext(context, "harvest_resources_remove_failed",
				slog.String("path", path), slog.Any("error", err))
		}
	}

	service.logger.WarnContext(context, "language_deleted",
		slog.String("code", language.Code),
		slog.Int("harvests", len(paths)),
		slog.String("admin", ctxutil.GetAdmin(context)),
	)
	return nil
}

// # Find or Create

func (service *Service) findOrCreateRegion(context context.Context, name string) (*Region, error) {
	return findOrCreate(
		func() (*Region, error) { return service.repo.GetRegionByName(context, name) },
		func() (*Region, error) {
			region := &Region{Name: name}
			return region, service.repo.CreateRegion(context, region)
		},
	)
}

func (service *Service) findOrCreateCountry(context context.Context, name string, regionID *string) (*Country, error) {
	return findOrCreate(
		func() (*Country, error) { return service.repo.GetCountryByName(context, name) },
		func() (*Country, error) {
			country := &Country{Name: name, RegionID: regionID}
			return country, service.repo.CreateCountry(context, country)
		},
	)
}

func (service *Service) findOrCreateLanguage(context context.Context, code string) (*Language, error) {
	return findOrCreate(
		func() (*Language, error) { return service.repo.GetLanguageByCode(context, code) },
		func() (*Language, error) {
			language := &Language{Code: code}
			return language, service.repo.CreateLanguage(context, language)
		},
	)
}

// findOrCreate returns the row found by find, creating it when missing.
// A create that loses the race on the unique key goes back to find.
func findOrCreate[T any](find func() (*T, error), create func() (*T, error)) (*T, error) {
	for range findOrCreateAttempts {
		found, err := find()
		if err == nil {
			return found, nil
		}
		if !apperr.IsNotFound(err) {
			return nil, err
		}

		created, err := create()
		if err == nil {
			return created, nil
		}
		if !dberr.IsConflict(err) {
			return nil, err
		}
	}

	return nil, apperr.Internal(fmt.Errorf("catalog: find or create gave up after %d attempts", findOrCreateAttempts))
}

// uniqueNames canonicalizes names and drops repeats, keeping first
// occurrences in order.
func uniqueNames(names []string, canonical func(string) string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))
	for _, name := range names {
		name = canonical(name)
		if _, ok := seen[name]; ok && name != "" {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	return result
}
