package schema

// CatalogCountryTable represents the 'country' table
type CatalogCountryTable struct {
	Table    string
	ID       string
	Name     string
	RegionID string
}

// CatalogCountry is the schema definition for country.
// RegionID stays NULL until a region lists the country.
var CatalogCountry = CatalogCountryTable{
	Table:    "country",
	ID:       "id",
	Name:     "name",
	RegionID: "region_id",
}

func (t CatalogCountryTable) Columns() []string { return []string{t.ID, t.Name, t.RegionID} }
