package schema

// CatalogLanguageCountryTable represents the 'language_country' join table
type CatalogLanguageCountryTable struct {
	Table      string
	ID         string
	LanguageID string
	CountryID  string
}

// CatalogLanguageCountry is the schema definition for language_country
var CatalogLanguageCountry = CatalogLanguageCountryTable{
	Table:      "language_country",
	ID:         "id",
	LanguageID: "language_id",
	CountryID:  "country_id",
}

func (t CatalogLanguageCountryTable) Columns() []string {
	return []string{t.ID, t.LanguageID, t.CountryID}
}
