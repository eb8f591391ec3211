// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/langdata/internal/core/catalog"
	"github.com/taibuivan/langdata/internal/platform/apperr"
	"github.com/taibuivan/langdata/internal/platform/dberr"
	"github.com/taibuivan/langdata/internal/resources"
)

func TestRepository_UniqueKeys(t *testing.T) {
	forEachStore(t, func(t *testing.T, repository catalog.Repository) {
		ctx := context.Background()

		require.NoError(t, repository.CreateRegion(ctx, &catalog.Region{Name: "Africa"}))
		assert.True(t, dberr.IsConflict(repository.CreateRegion(ctx, &catalog.Region{Name: "Africa"})))

		require.NoError(t, repository.CreateCountry(ctx, &catalog.Country{Name: "Algeria"}))
		assert.True(t, dberr.IsConflict(repository.CreateCountry(ctx, &catalog.Country{Name: "Algeria"})))

		require.NoError(t, repository.CreateLanguage(ctx, &catalog.Language{Code: "aaa"}))
		assert.True(t, dberr.IsConflict(repository.CreateLanguage(ctx, &catalog.Language{Code: "aaa"})))

		names, err := repository.ListRegionNames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Africa"}, names)
	})
}

func TestRepository_NotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, repository catalog.Repository) {
		ctx := context.Background()

		_, err := repository.GetRegionByName(ctx, "Atlantis")
		assert.True(t, apperr.IsNotFound(err))

		_, err = repository.GetHarvest(ctx, "missing", "20180501")
		assert.True(t, apperr.IsNotFound(err))

		assert.True(t, apperr.IsNotFound(repository.DeleteCountry(ctx, "missing")))
	})
}

func TestRepository_EmptyListsAreNotNil(t *testing.T) {
	forEachStore(t, func(t *testing.T, repository catalog.Repository) {
		ctx := context.Background()

		dates, err := repository.ListHarvestDates(ctx)
		require.NoError(t, err)
		assert.NotNil(t, dates)
		assert.Empty(t, dates)

		rows, err := repository.ListLanguagesAt(ctx, "20180501")
		require.NoError(t, err)
		assert.NotNil(t, rows)
	})
}

func TestRepository_HarvestUpsertInPlace(t *testing.T) {
	forEachStore(t, func(t *testing.T, repository catalog.Repository) {
		ctx := context.Background()

		language := &catalog.Language{Code: "aaa"}
		require.NoError(t, repository.CreateLanguage(ctx, language))

		first := &catalog.Harvest{
			LanguageID: language.ID,
			Date:       "20180501",
			Metadata:   json.RawMessage(`{"name":"Ghotuo"}`),
			Resources:  "20180501/aaa.json",
		}
		require.NoError(t, repository.UpsertHarvest(ctx, first))

		second := &catalog.Harvest{
			LanguageID: language.ID,
			Date:       "20180501",
			Metadata:   json.RawMessage(`{"name":"Ghotuo (updated)"}`),
			Resources:  "20180501/aaa.json",
			Summary:    resources.Summary{{Category: "A", Count: 2}},
		}
		require.NoError(t, repository.UpsertHarvest(ctx, second))
		assert.Equal(t, first.ID, second.ID, "the stored row is updated, not duplicated")

		stored, err := repository.GetHarvest(ctx, language.ID, "20180501")
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Ghotuo (updated)"}`, string(stored.Metadata))
		assert.Equal(t, resources.Summary{{Category: "A", Count: 2}}, stored.Summary)

		rows, err := repository.ListLanguagesAt(ctx, "20180501")
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestRepository_HarvestDatesDistinctAscending(t *testing.T) {
	forEachStore(t, func(t *testing.T, repository catalog.Repository) {
		ctx := context.Background()

		for _, code := range []string{"aaa", "bbb"} {
			language := &catalog.Language{Code: code}
			require.NoError(t, repository.CreateLanguage(ctx, language))
			for _, date := range []string{"20180601", "20170101", "20180501"} {
				require.NoError(t, repository.UpsertHarvest(ctx, &catalog.Harvest{LanguageID: language.ID, Date: date}))
			}
		}

		dates, err := repository.ListHarvestDates(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"20170101", "20180501", "20180601"}, dates)
	})
}

func TestRepository_DeleteRegionCascades(t *testing.T) {
	forEachStore(t, func(t *testing.T, repository catalog.Repository) {
		ctx := context.Background()

		region := &catalog.Region{Name: "Africa"}
		require.NoError(t, repository.CreateRegion(ctx, region))
		country := &catalog.Country{Name: "Algeria", RegionID: &region.ID}
		require.NoError(t, repository.CreateCountry(ctx, country))
		language := &catalog.Language{Code: "aaa"}
		require.NoError(t, repository.CreateLanguage(ctx, language))
		require.NoError(t, repository.LinkLanguageCountry(ctx, language.ID, country.ID))
		require.NoError(t, repository.LinkLanguageCountry(ctx, language.ID, country.ID), "linking twice is a no-op")

		require.NoError(t, repository.DeleteRegion(ctx, region.ID))

		_, err := repository.GetCountryByName(ctx, "Algeria")
		assert.True(t, apperr.IsNotFound(err))

		_, err = repository.GetLanguageByCode(ctx, "aaa")
		assert.NoError(t, err, "languages are not owned by countries")
	})
}

func TestRepository_DeleteLanguageReturnsPaths(t *testing.T) {
	forEachStore(t, func(t *testing.T, repository catalog.Repository) {
		ctx := context.Background()

		language := &catalog.Language{Code: "aaa"}
		require.NoError(t, repository.CreateLanguage(ctx, language))
		require.NoError(t, repository.UpsertHarvest(ctx, &catalog.Harvest{LanguageID: language.ID, Date: "20180501", Resources: "20180501/aaa.json"}))
		require.NoError(t, repository.UpsertHarvest(ctx, &catalog.Harvest{LanguageID: language.ID, Date: "20180601"}))

		paths, err := repository.DeleteLanguage(ctx, language.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"20180501/aaa.json"}, paths)

		dates, err := repository.ListHarvestDates(ctx)
		require.NoError(t, err)
		assert.Empty(t, dates)
	})
}

func TestRepository_DeleteHarvestsByDate(t *testing.T) {
	forEachStore(t, func(t *testing.T, repository catalog.Repository) {
		ctx := context.Background()

		language := &catalog.Language{Code: "aaa"}
		require.NoError(t, repository.CreateLanguage(ctx, language))
		require.NoError(t, repository.UpsertHarvest(ctx, &catalog.Harvest{LanguageID: language.ID, Date: "20180515", Resources: "20180515/aaa.json"}))
		require.NoError(t, repository.UpsertHarvest(ctx, &catalog.Harvest{LanguageID: language.ID, Date: "20180601", Resources: "20180601/aaa.json"}))

		paths, err := repository.DeleteHarvestsByDate(ctx, "20180515")
		require.NoError(t, err)
		assert.Equal(t, []string{"20180515/aaa.json"}, paths)

		dates, err := repository.ListHarvestDates(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"20180601"}, dates)
	})
}
