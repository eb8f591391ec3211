// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taibuivan/langdata/internal/platform/database/schema"
	"github.com/taibuivan/langdata/internal/platform/dberr"
	"github.com/taibuivan/langdata/pkg/nullable"
	"github.com/taibuivan/langdata/pkg/uuidv7"
)

// sqliteSchema mirrors data/migrations for the embedded store. JSON columns
// are TEXT.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS region (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE CHECK (name <> '')
);

CREATE TABLE IF NOT EXISTS country (
	id        TEXT PRIMARY KEY,
	name      TEXT NOT NULL UNIQUE CHECK (name <> ''),
	region_id TEXT NULL REFERENCES region (id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS country_region_id_idx ON country (region_id);

CREATE TABLE IF NOT EXISTS language (
	id   TEXT PRIMARY KEY,
	code TEXT NOT NULL UNIQUE CHECK (code <> '')
);

CREATE TABLE IF NOT EXISTS language_country (
	id          TEXT PRIMARY KEY,
	language_id TEXT NOT NULL REFERENCES language (id) ON DELETE CASCADE,
	country_id  TEXT NOT NULL REFERENCES country (id) ON DELETE CASCADE,
	UNIQUE (language_id, country_id)
);
CREATE INDEX IF NOT EXISTS language_country_country_id_idx ON language_country (country_id);

CREATE TABLE IF NOT EXISTS harvest (
	id                TEXT PRIMARY KEY,
	date              TEXT NOT NULL CHECK (date <> ''),
	metadata          TEXT NOT NULL DEFAULT '{}',
	resources         TEXT NOT NULL DEFAULT '',
	resources_summary TEXT NULL,
	language_id       TEXT NOT NULL REFERENCES language (id) ON DELETE CASCADE,
	UNIQUE (date, language_id)
);
CREATE INDEX IF NOT EXISTS harvest_date_idx ON harvest (date);
`

// SQLiteRepository implements [Repository] on an embedded SQLite database.
// Deletes remove child rows explicitly before the parent, so the cascade
// holds even on connections opened without foreign key enforcement.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates the catalog tables when missing.
func NewSQLiteRepository(context context.Context, db *sql.DB) (*SQLiteRepository, error) {
	if _, err := db.ExecContext(context, sqliteSchema); err != nil {
		return nil, fmt.Errorf("catalog: create sqlite schema: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// # Harvest Dates

func (repository *SQLiteRepository) ListHarvestDates(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s FROM %s ORDER BY %s ASC`,
		schema.CatalogHarvest.Date, schema.CatalogHarvest.Table, schema.CatalogHarvest.Date,
	)
	return queryTexts(context, repository.db, "list_harvest_dates", query)
}

// # Regions

func (repository *SQLiteRepository) ListRegionNames(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		schema.CatalogRegion.Name, schema.CatalogRegion.Table, schema.CatalogRegion.Name,
	)
	return queryTexts(context, repository.db, "list_region_names", query)
}

func (repository *SQLiteRepository) GetRegionByName(context context.Context, name string) (*Region, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ?`,
		schema.CatalogRegion.ID, schema.CatalogRegion.Name,
		schema.CatalogRegion.Table, schema.CatalogRegion.Name,
	)

	region := &Region{}
	err := repository.db.QueryRowContext(context, query, name).Scan(&region.ID, &region.Name)
	if err != nil {
		return nil, dberr.Wrap(err, "get_region")
	}
	return region, nil
}

func (repository *SQLiteRepository) CreateRegion(context context.Context, region *Region) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?)`,
		schema.CatalogRegion.Table, schema.CatalogRegion.ID, schema.CatalogRegion.Name,
	)

	if region.ID == "" {
		region.ID = uuidv7.New()
	}
	_, err := repository.db.ExecContext(context, query, region.ID, region.Name)
	return dberr.Wrap(err, "create_region")
}

func (repository *SQLiteRepository) DeleteRegion(context context.Context, id string) error {
	countryIDs := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ?`,
		schema.CatalogCountry.ID, schema.CatalogCountry.Table, schema.CatalogCountry.RegionID,
	)

	return repository.inTx(context, "delete_region", func(transaction *sql.Tx) error {
		statements := []string{
			fmt.Sprintf(`DELETE FROM %s WHERE %s IN (%s)`,
				schema.CatalogLanguageCountry.Table, schema.CatalogLanguageCountry.CountryID, countryIDs),
			fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.CatalogCountry.Table, schema.CatalogCountry.RegionID),
		}
		for _, statement := range statements {
			if _, err := transaction.ExecContext(context, statement, id); err != nil {
				return err
			}
		}

		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.CatalogRegion.Table, schema.CatalogRegion.ID)
		return execOne(context, transaction, query, id)
	})
}

// # Countries

func (repository *SQLiteRepository) ListCountryNames(context context.Context) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY %s ASC`,
		schema.CatalogCountry.Name, schema.CatalogCountry.Table, schema.CatalogCountry.Name,
	)
	return queryTexts(context, repository.db, "list_country_names", query)
}

func (repository *SQLiteRepository) ListCountryNamesByRegion(context context.Context, regionID string) ([]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ? ORDER BY %s ASC`,
		schema.CatalogCountry.Name, schema.CatalogCountry.Table,
		schema.CatalogCountry.RegionID, schema.CatalogCountry.Name,
	)
	return queryTexts(context, repository.db, "list_region_countries", query, regionID)
}

func (repository *SQLiteRepository) GetCountryByName(context context.Context, name string) (*Country, error) {
	query := fmt.Sprintf(`SELECT %s, %s, %s FROM %s WHERE %s = ?`,
		schema.CatalogCountry.ID, schema.CatalogCountry.Name, schema.CatalogCountry.RegionID,
		schema.CatalogCountry.Table, schema.CatalogCountry.Name,
	)

	var (
		country  Country
		regionID sql.Null[string]
	)
	err := repository.db.QueryRowContext(context, query, name).Scan(&country.ID, &country.Name, &regionID)
	if err != nil {
		return nil, dberr.Wrap(err, "get_country")
	}
	country.RegionID = nullable.Ptr(regionID)
	return &country, nil
}

func (repository *SQLiteRepository) CreateCountry(context context.Context, country *Country) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)`,
		schema.CatalogCountry.Table,
		schema.CatalogCountry.ID, schema.CatalogCountry.Name, schema.CatalogCountry.RegionID,
	)

	if country.ID == "" {
		country.ID = uuidv7.New()
	}
	_, err := repository.db.ExecContext(context, query, country.ID, country.Name, nullable.From(country.RegionID))
	return dberr.Wrap(err, "create_country")
}

func (repository *SQLiteRepository) AssignCountryRegion(context context.Context, countryID, regionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = ? WHERE %s = ?`,
		schema.CatalogCountry.Table, schema.CatalogCountry.RegionID, schema.CatalogCountry.ID,
	)
	return dberr.Wrap(execOne(context, repository.db, query, regionID, countryID), "assign_country_region")
}

func (repository *SQLiteRepository) DeleteCountry(context context.Context, id string) error {
	return repository.inTx(context, "delete_country", func(transaction *sql.Tx) error {
		links := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`,
			schema.CatalogLanguageCountry.Table, schema.CatalogLanguageCountry.CountryID,
		)
		if _, err := transaction.ExecContext(context, links, id); err != nil {
			return err
		}

		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.CatalogCountry.Table, schema.CatalogCountry.ID)
		return execOne(context, transaction, query, id)
	})
}

// # Languages

func (repository *SQLiteRepository) GetLanguageByCode(context context.Context, code string) (*Language, error) {
	query := fmt.Sprintf(`SELECT %s, %s FROM %s WHERE %s = ?`,
		schema.CatalogLanguage.ID, schema.CatalogLanguage.Code,
		schema.CatalogLanguage.Table, schema.CatalogLanguage.Code,
	)

	language := &Language{}
	err := repository.db.QueryRowContext(context, query, code).Scan(&language.ID, &language.Code)
	if err != nil {
		return nil, dberr.Wrap(err, "get_language")
	}
	return language, nil
}

func (repository *SQLiteRepository) CreateLanguage(context context.Context, language *Language) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?)`,
		schema.CatalogLanguage.Table, schema.CatalogLanguage.ID, schema.CatalogLanguage.Code,
	)

	if language.ID == "" {
		language.ID = uuidv7.New()
	}
	_, err := repository.db.ExecContext(context, query, language.ID, language.Code)
	return dberr.Wrap(err, "create_language")
}

func (repository *SQLiteRepository) LinkLanguageCountry(context context.Context, languageID, countryID string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES (?, ?, ?)
		ON CONFLICT (%s, %s) DO NOTHING
	`,
		schema.CatalogLanguageCountry.Table,
		schema.CatalogLanguageCountry.ID, schema.CatalogLanguageCountry.LanguageID, schema.CatalogLanguageCountry.CountryID,
		schema.CatalogLanguageCountry.LanguageID, schema.CatalogLanguageCountry.CountryID,
	)

	_, err := repository.db.ExecContext(context, query, uuidv7.New(), languageID, countryID)
	return dberr.Wrap(err, "link_language_country")
}

func (repository *SQLiteRepository) ListLanguageCodesByCountry(context context.Context, countryID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT l.%s
		FROM %s l
		JOIN %s lc ON lc.%s = l.%s
		WHERE lc.%s = ?
		ORDER BY l.%s ASC
	`,
		schema.CatalogLanguage.Code,
		schema.CatalogLanguage.Table,
		schema.CatalogLanguageCountry.Table, schema.CatalogLanguageCountry.LanguageID, schema.CatalogLanguage.ID,
		schema.CatalogLanguageCountry.CountryID,
		schema.CatalogLanguage.Code,
	)
	return queryTexts(context, repository.db, "list_country_languages", query, countryID)
}

func (repository *SQLiteRepository) DeleteLanguage(context context.Context, id string) ([]string, error) {
	var paths []string

	err := repository.inTx(context, "delete_language", func(transaction *sql.Tx) error {
		harvests := fmt.Sprintf(`DELETE FROM %s WHERE %s = ? RETURNING %s`,
			schema.CatalogHarvest.Table, schema.CatalogHarvest.LanguageID, schema.CatalogHarvest.Resources,
		)
		removed, err := queryTexts(context, transaction, "delete_language_harvests", harvests, id)
		if err != nil {
			return err
		}
		paths = nonEmpty(removed)

		links := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`,
			schema.CatalogLanguageCountry.Table, schema.CatalogLanguageCountry.LanguageID,
		)
		if _, err := transaction.ExecContext(context, links, id); err != nil {
			return err
		}

		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, schema.CatalogLanguage.Table, schema.CatalogLanguage.ID)
		return execOne(context, transaction, query, id)
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// # Harvests

func (repository *SQLiteRepository) GetHarvest(context context.Context, languageID, date string) (*Harvest, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ? AND %s = ?
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
		harvest  Harvest
		metadata []byte
		summary  []byte
	)
	err := repository.db.QueryRowContext(context, query, languageID, date).Scan(
		&harvest.ID, &harvest.LanguageID, &harvest.Date, &metadata, &harvest.Resources, &summary,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_harvest")
	}
	harvest.Metadata = metadata
	if harvest.Summary, err = decodeSummary(summary); err != nil {
		return nil, dberr.Wrap(err, "decode_harvest_summary")
	}
	return &harvest, nil
}

func (repository *SQLiteRepository) UpsertHarvest(context context.Context, harvest *Harvest) error {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (%[2]s, %[3]s, %[4]s, %[5]s, %[6]s, %[7]s)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (%[3]s, %[7]s) DO UPDATE
		SET %[4]s = excluded.%[4]s, %[5]s = excluded.%[5]s, %[6]s = excluded.%[6]s
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
	summaryColumn := sql.NullString{String: string(summary), Valid: summary != nil}
	if harvest.ID == "" {
		harvest.ID = uuidv7.New()
	}

	err = repository.db.QueryRowContext(context, query,
		harvest.ID, harvest.Date, string(metadataOrEmpty(harvest.Metadata)), harvest.Resources, summaryColumn, harvest.LanguageID,
	).Scan(&harvest.ID)
	return dberr.Wrap(err, "upsert_harvest")
}

func (repository *SQLiteRepository) ListCountryHarvests(context context.Context, countryID, date string) ([]LanguageHarvest, error) {
	query := fmt.Sprintf(`
		SELECT l.%s, l.%s, h.%s, h.%s, h.%s, h.%s, h.%s
		FROM %s lc
		JOIN %s l ON l.%s = lc.%s
		JOIN %s h ON h.%s = l.%s AND h.%s = ?
		WHERE lc.%s = ?
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
	// The date binds first: it appears before the country in the statement.
	return repository.languageHarvests(context, "list_country_harvests", query, date, countryID)
}

func (repository *SQLiteRepository) ListLanguagesAt(context context.Context, date string) ([]LanguageHarvest, error) {
	query := fmt.Sprintf(`
		SELECT l.%s, l.%s, h.%s, h.%s, h.%s, h.%s, h.%s
		FROM %s l
		JOIN %s h ON h.%s = l.%s
		WHERE h.%s = ?
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

func (repository *SQLiteRepository) DeleteHarvestsByDate(context context.Context, date string) ([]string, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ? RETURNING %s`,
		schema.CatalogHarvest.Table, schema.CatalogHarvest.Date, schema.CatalogHarvest.Resources,
	)
	paths, err := queryTexts(context, repository.db, "delete_harvests_by_date", query, date)
	if err != nil {
		return nil, err
	}
	return nonEmpty(paths), nil
}

// # Helpers

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func queryTexts(context context.Context, db queryer, action, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		values = append(values, value)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, action)
	}
	return values, nil
}

// execOne runs a statement that must affect exactly one row.
func execOne(context context.Context, db queryer, query string, args ...any) error {
	result, err := db.ExecContext(context, query, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// inTx runs fn in a transaction and classifies its error.
func (repository *SQLiteRepository) inTx(context context.Context, action string, fn func(*sql.Tx) error) error {
	transaction, err := repository.db.BeginTx(context, nil)
	if err != nil {
		return dberr.Wrap(err, action+"_begin")
	}
	defer func() { _ = transaction.Rollback() }()

	if err := fn(transaction); err != nil {
		return dberr.Wrap(err, action)
	}
	return dberr.Wrap(transaction.Commit(), action+"_commit")
}

func (repository *SQLiteRepository) languageHarvests(context context.Context, action, query string, args ...any) ([]LanguageHarvest, error) {
	rows, err := repository.db.QueryContext(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	result := []LanguageHarvest{}
	for rows.Next() {
		var (
			item     LanguageHarvest
			metadata []byte
			summary  []byte
		)
		if err := rows.Scan(
			&item.LanguageID, &item.Code,
			&item.Harvest.ID, &item.Harvest.Date, &metadata, &item.Harvest.Resources, &summary,
		); err != nil {
			return nil, dberr.Wrap(err, action)
		}
		item.Harvest.LanguageID = item.LanguageID
		item.Harvest.Metadata = metadata
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
