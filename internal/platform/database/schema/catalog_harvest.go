package schema

// CatalogHarvestTable represents the 'harvest' table
type CatalogHarvestTable struct {
	Table            string
	ID               string
	Date             string
	Metadata         string
	Resources        string
	ResourcesSummary string
	LanguageID       string
}

// CatalogHarvest is the schema definition for harvest.
// (Date, LanguageID) is unique.
var CatalogHarvest = CatalogHarvestTable{
	Table:            "harvest",
	ID:               "id",
	Date:             "date",
	Metadata:         "metadata",
	Resources:        "resources",
	ResourcesSummary: "resources_summary",
	LanguageID:       "language_id",
}

func (t CatalogHarvestTable) Columns() []string {
	return []string{t.ID, t.Date, t.Metadata, t.Resources, t.ResourcesSummary, t.LanguageID}
}
