package schema

// CatalogRegionTable represents the 'region' table
type CatalogRegionTable struct {
	Table string
	ID    string
	Name  string
}

// CatalogRegion is the schema definition for region
var CatalogRegion = CatalogRegionTable{
	Table: "region",
	ID:    "id",
	Name:  "name",
}

func (t CatalogRegionTable) Columns() []string { return []string{t.ID, t.Name} }
