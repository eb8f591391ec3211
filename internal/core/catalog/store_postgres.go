// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/langdata/internal/platform/database/schema"
	"github.com/taibuivan/langdata/internal/platform/dberr"
	"github.com/taibuivan/langdata/pkg/uuidv7"
)

// PostgresRepository implements [Repository] on a pgx pool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository wraps an open pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Harvest Dates

func (repository *PostgresRepository) ListHarvestDates(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s ORDER BY %s ASC`,
		schema.CatalogHarvest.Date, schema.CatalogHarvest.Table, schema.CatalogHarvest.Date,
	)
	return repository.texts(context, "list_harvest_dates", query)
}

// # Regions

func (repository *PostgresRepository) ListRegionNames(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		schema.CatalogRegion.Name, schema.CatalogRegion.Table, schema.CatalogRegion.Name,
	)
	return repository.texts(context, "list_region_names", query)
}

func (repository *PostgresRepository) GetRegionByName(context context.Context, name string) (*Region, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogRegion.ID, schema.CatalogRegion.Name,
		schema.CatalogRegion.Table, schema.CatalogRegion.Name,
	)

	region := &Region{}
	err := repository.db.QueryRow(context, query, name).Scan(&region.ID, &region.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "get_region")
	}
	return region, nil
}

func (repository *PostgresRepository) CreateRegion(context context.Context, region *Region) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CatalogRegion.Table, schema.CatalogRegion.ID, schema.CatalogRegion.Name,
	)

	if region.ID == "" {
		region.ID = uuidv7.New()
	}
	_, err := repository.db.Exec(context, query, region.ID, region.Name)
	return dberr.Wrap(err, "create_region")
}

func (repository *PostgresRepository) DeleteRegion(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogRegion.Table, schema.CatalogRegion.ID)
	return repository.execOne(context, "delete_region", query, id)
}

// # Countries

func (repository *PostgresRepository) ListCountryNames(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		schema.CatalogCountry.Name, schema.CatalogCountry.Table, schema.CatalogCountry.Name,
	)
	return repository.texts(context, "list_country_names", query)
}

func (repository *PostgresRepository) ListCountryNamesByRegion(context context.Context, regionID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC`,
		schema.CatalogCountry.Name, schema.CatalogCountry.Table,
		schema.CatalogCountry.RegionID, schema.CatalogCountry.Name,
	)
	return repository.texts(context, "list_region_countries", query, regionID)
}

func (repository *PostgresRepository) GetCountryByName(context context.Context, name string) (*Country, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogCountry.ID, schema.CatalogCountry.Name, schema.CatalogCountry.RegionID,
		schema.CatalogCountry.Table, schema.CatalogCountry.Name,
	)

	country := &Country{}
	err := repository.db.QueryRow(context, query, name).Scan(&country.ID, &country.Name, &country.RegionID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_country")
	}
	return country, nil
}

func (repository *PostgresRepository) CreateCountry(context context.Context, country *Country) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.CatalogCountry.Table,
		schema.CatalogCountry.ID, schema.CatalogCountry.Name, schema.CatalogCountry.RegionID,
	)

	if country.ID == "" {
		country.ID = uuidv7.New()
	}
	_, err := repository.db.Exec(context, query, country.ID, country.Name, country.RegionID)
	return dberr.Wrap(err, "create_country")
}

func (repository *PostgresRepository) AssignCountryRegion(context context.Context, countryID, regionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CatalogCountry.Table, schema.CatalogCountry.RegionID, schema.CatalogCountry.ID,
	)
	return repository.execOne(context, "assign_country_region", query, countryID, regionID)
}

func (repository *PostgresRepository) DeleteCountry(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogCountry.Table, schema.CatalogCountry.ID)
	return repository.execOne(context, "delete_country", query, id)
}

// # Languages

func (repository *PostgresRepository) GetLanguageByCode(context context.Context, code string) (*Language, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = $1`,
		schema.CatalogLanguage.ID, schema.CatalogLanguage.Code,
		schema.CatalogLanguage.Table, schema.CatalogLanguage.Code,
	)

	language := &Language{}
	err := repository.db.QueryRow(context, query, code).Scan(&language.ID, &language.Code)
	if err != nil {
		return nil, dberr.Wrap(err, "get_language")
	}
	return language, nil
}

func (repository *PostgresRepository) CreateLanguage(context context.Context, language *Language) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.CatalogLanguage.Table, schema.CatalogLanguage.ID, schema.CatalogLanguage.Code,
	)

	if language.ID == "" {
		language.ID = uuidv7.New()
	}
	_, err := repository.db.Exec(context, query, language.ID, language.Code)
	return dberr.Wrap(err, "create_language")
}

func (repository *PostgresRepository) LinkLanguageCountry(context context.Context, languageID, countryID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.CatalogLanguageCountry.Table,
		schema.CatalogLanguageCountry.ID, schema.CatalogLanguageCountry.LanguageID, schema.CatalogLanguageCountry.CountryID,
		schema.CatalogLanguageCountry.LanguageID, schema.CatalogLanguageCountry.CountryID,
	)

	_, err := repository.db.Exec(context, query, uuidv7.New(), languageID, countryID)
	return dberr.Wrap(err, "link_language_country")
}

func (repository *PostgresRepository) ListLanguageCodesByCountry(context context.Context, countryID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT l.%s
		FROM %s l
		JOIN %s lc ON lc.%s = l.%s
		WHERE lc.%s = $1
		ORDER BY l.%s ASC
	`,
		schema.CatalogLanguage.Code,
		schema.CatalogLanguage.Table,
		schema.CatalogLanguageCountry.Table, schema.CatalogLanguageCountry.LanguageID, schema.CatalogLanguage.ID,
		schema.CatalogLanguageCountry.CountryID,
		schema.CatalogLanguage.Code,
	)
	return repository.texts(context, "list_country_languages", query, countryID)
}

// DeleteLanguage removes the language with its links and harvests, and
// returns the resource paths of the removed harvests.
func (repository *PostgresRepository) DeleteLanguage(context context.Context, id string) ([]string, error) {
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "delete_language_begin")
	}
	defer func() { _ = transaction.Rollback(context) }()

	pathsQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s <> ''`,
		schema.CatalogHarvest.Resources, schema.CatalogHarvest.Table,
		schema.CatalogHarvest.LanguageID, schema.CatalogHarvest.Resources,
	)
	rows, err := transaction.Query(context, pathsQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "delete_language_paths")
	}
	paths, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, "scan_language_paths")
	}

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CatalogLanguage.Table, schema.CatalogLanguage.ID)
	tag, err := transaction.Exec(context, deleteQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "delete_language")
	}
	if tag.RowsAffected() == 0 {
		return nil, dberr.ErrNotFound
	}

	if err := transaction.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "delete_language_commit")
	}
	return nonNil(paths), nil
}

// # Harvests

func (repository *PostgresRepository) GetHarvest(context context.Context, languageID, date string) (*Harvest, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
		ORDER BY %s ASC
		LIMIT 1
	`,
		schema.CatalogHarvest.ID, schema.CatalogHarvest.LanguageID, schema.CatalogHarvest.Date,
		schema.CatalogHarvest.Metadata, schema.CatalogHarvest.Resources, schema.CatalogHarvest.ResourcesSummary,
		schema.CatalogHarvest.Table,
		schema.CatalogHarvest.LanguageID, schema.CatalogHarvest.Date,
		schema.CatalogHarvest.ID,
	)

	var (
		harvest Harvest
		summary []byte
	)
	err := repository.db.QueryRow(context, query, languageID, date).Scan(
		&harvest.ID, &harvest.LanguageID, &harvest.Date, &harvest.Metadata, &harvest.Resources, &summary,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_harvest")
	}
	if harvest.Summary, err = decodeSummary(summary); err != nil {
		return nil, dberr.Wrap(err, "decode_harvest_summary")
	}
	return &harvest, nil
}

// UpsertHarvest inserts the harvest or updates the row already stored for
// its (date, language). The stored id is written back.
func (repository *PostgresRepository) UpsertHarvest(context context.Context, harvest *Harvest) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%[3]s, %[7]s) DO UPDATE
		SET %[4]s = EXCLUDED.%[4]s, %[5]s = EXCLUDED.%[5]s, %[6]s = EXCLUDED.%[6]s
		RETURNING %[2]s
	`,
		schema.CatalogHarvest.Table,
		schema.CatalogHarvest.ID, schema.CatalogHarvest.Date, schema.CatalogHarvest.Metadata,
		schema.CatalogHarvest.Resources, schema.CatalogHarvest.ResourcesSummary, schema.CatalogHarvest.LanguageID,
	)

	summary, err := encodeSummary(harvest.Summary)
	if err != nil {
		return dberr.Wrap(err, "encode_harvest_summary")
	}
	if harvest.ID == "" {
		harvest.ID = uuidv7.New()
	}

	err = repository.db.QueryRow(context, query,
		harvest.ID, harvest.Date, metadataOrEmpty(harvest.Metadata), harvest.Resources, summary, harvest.LanguageID,
	).Scan(&harvest.ID)
	return dberr.Wrap(err, "upsert_harvest")
}

func (repository *PostgresRepository) ListCountryHarvests(context context.Context, countryID, date string) ([]LanguageHarvest, error) {
	query := fmt.Sprintf(`
		SELECT l.%s, l.%s, h.%s, h.%s, h.%s, h.%s, h.%s
		FROM %s lc
		JOIN %s l ON l.%s = lc.%s
		JOIN %s h ON h.%s = l.%s AND h.%s = $2
		WHERE lc.%s = $1
		ORDER BY l.%s ASC, h.%s ASC
	`,
		schema.CatalogLanguage.ID, schema.CatalogLanguage.Code,
		schema.CatalogHarvest.ID, schema.CatalogHarvest.Date, schema.CatalogHarvest.Metadata,
		schema.CatalogHarvest.Resources, schema.CatalogHarvest.ResourcesSummary,
		schema.CatalogLanguageCountry.Table,
		schema.CatalogLanguage.Table, schema.CatalogLanguage.ID, schema.CatalogLanguageCountry.LanguageID,
		schema.CatalogHarvest.Table, schema.CatalogHarvest.LanguageID, schema.CatalogLanguage.ID, schema.CatalogHarvest.Date,
		schema.CatalogLanguageCountry.CountryID,
		schema.CatalogLanguage.Code, schema.CatalogHarvest.ID,
	)
	return repository.languageHarvests(context, "list_country_harvests", query, countryID, date)
}

func (repository *PostgresRepository) ListLanguagesAt(context context.Context, date string) ([]LanguageHarvest, error) {
	query := fmt.Sprintf(`
		SELECT l.%s, l.%s, h.%s, h.%s, h.%s, h.%s, h.%s
		FROM %s l
		JOIN %s h ON h.%s = l.%s
		WHERE h.%s = $1
		ORDER BY l.%s ASC, h.%s ASC
	`,
		schema.CatalogLanguage.ID, schema.CatalogLanguage.Code,
		schema.CatalogHarvest.ID, schema.CatalogHarvest.Date, schema.CatalogHarvest.Metadata,
		schema.CatalogHarvest.Resources, schema.CatalogHarvest.ResourcesSummary,
		schema.CatalogLanguage.Table,
		schema.CatalogHarvest.Table, schema.CatalogHarvest.LanguageID, schema.CatalogLanguage.ID,
		schema.CatalogHarvest.Date,
		schema.CatalogLanguage.Code, schema.CatalogHarvest.ID,
	)
	return repository.languageHarvests(context, "list_languages_at", query, date)
}

func (repository *PostgresRepository) DeleteHarvestsByDate(context context.Context, date string) ([]string, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 RETURNING %s`,
		schema.CatalogHarvest.Table, schema.CatalogHarvest.Date, schema.CatalogHarvest.Resources,
	)
	paths, err := repository.texts(context, "delete_harvests_by_date", query, date)
	if err != nil {
		return nil, err
	}
	return nonEmpty(paths), nil
}

// # Helpers

// texts runs a query selecting one text column.
func (repository *PostgresRepository) texts(context context.Context, action, query string, args ...any) ([]string, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return nonNil(values), nil
}

// execOne runs a statement that must affect exactly one row.
func (repository *PostgresRepository) execOne(context context.Context, action, query string, args ...any) error {
	tag, err := repository.db.Exec(context, query, args...)
	if err != nil {
		return dberr.Wrap(err, action)
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) languageHarvests(context context.Context, action, query string, args ...any) ([]LanguageHarvest, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	result := []LanguageHarvest{}
	for rows.Next() {
		var (
			item    LanguageHarvest
			summary []byte
		)
		if err := rows.Scan(
			&item.LanguageID, &item.Code,
			&item.Harvest.ID, &item.Harvest.Date, &item.Harvest.Metadata, &item.Harvest.Resources, &summary,
		); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		item.Harvest.LanguageID = item.LanguageID
		if item.Harvest.Summary, err = decodeSummary(summary); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}

	return result, nil
}
