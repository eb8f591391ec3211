package schema

// CatalogLanguageTable represents the 'language' table
type CatalogLanguageTable struct {
	Table string
	ID    string
	Code  string
}

// CatalogLanguage is the schema definition for language
var CatalogLanguage = CatalogLanguageTable{
	Table: "language",
	ID:    "id",
	Code:  "code",
}

func (t CatalogLanguageTable) Columns() []string { return []string{t.ID, t.Code} }
