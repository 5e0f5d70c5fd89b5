package schema

// CatalogServiceProductTable represents the 'catalog.serviceproduct' table
type CatalogServiceProductTable struct {
	Table             string
	ID                string
	ProviderID        string
	Name              string
	Slug              string
	Description       string
	PriceCLP          string
	Tier              string
	MetaTitle         string
	MetaDescription   string
	CoverageMode      string
	EffectiveCoverage string
	Status            string
	CreatedAt         string
	UpdatedAt         string
}

// CatalogServiceProduct is the schema definition for catalog.serviceproduct
var CatalogServiceProduct = CatalogServiceProductTable{
	Table:             "catalog.serviceproduct",
	ID:                "id",
	ProviderID:        "providerid",
	Name:              "name",
	Slug:              "slug",
	Description:       "description",
	PriceCLP:          "priceclp",
	Tier:              "tier",
	MetaTitle:         "metatitle",
	MetaDescription:   "metadescription",
	CoverageMode:      "coveragemode",
	EffectiveCoverage: "effectivecoverage",
	Status:            "status",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t CatalogServiceProductTable) Columns() []string {
	return []string{
		t.ID, t.ProviderID, t.Name, t.Slug, t.Description, t.PriceCLP,
		t.Tier, t.MetaTitle, t.MetaDescription, t.CoverageMode,
		t.EffectiveCoverage, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
