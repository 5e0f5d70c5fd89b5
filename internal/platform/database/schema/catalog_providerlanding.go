package schema

// CatalogProviderLandingTable represents the 'catalog.providerlanding' table
type CatalogProviderLandingTable struct {
	Table           string
	ProviderID      string
	Tier            string
	Headline        string
	Editorial       string
	MetaTitle       string
	MetaDescription string
	UpdatedAt       string
}

// CatalogProviderLanding is the schema definition for catalog.providerlanding
var CatalogProviderLanding = CatalogProviderLandingTable{
	Table:           "catalog.providerlanding",
	ProviderID:      "providerid",
	Tier:            "tier",
	Headline:        "headline",
	Editorial:       "editorial",
	MetaTitle:       "metatitle",
	MetaDescription: "metadescription",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t CatalogProviderLandingTable) Columns() []string {
	return []string{
		t.ProviderID, t.Tier, t.Headline, t.Editorial,
		t.MetaTitle, t.MetaDescription, t.UpdatedAt,
	}
}
