package schema

// CatalogHouseTable represents the 'catalog.house' table
type CatalogHouseTable struct {
	Table           string
	ID              string
	ProviderID      string
	Name            string
	Slug            string
	Description     string
	AreaM2          string
	Bedrooms        string
	Bathrooms       string
	PriceCLP        string
	Tier            string
	MetaTitle       string
	MetaDescription string
	Status          string
	CreatedAt       string
	UpdatedAt       string
}

// CatalogHouse is the schema definition for catalog.house
var CatalogHouse = CatalogHouseTable{
	Table:           "catalog.house",
	ID:              "id",
	ProviderID:      "providerid",
	Name:            "name",
	Slug:            "slug",
	Description:     "description",
	AreaM2:          "aream2",
	Bedrooms:        "bedrooms",
	Bathrooms:       "bathrooms",
	PriceCLP:        "priceclp",
	Tier:            "tier",
	MetaTitle:       "metatitle",
	MetaDescription: "metadescription",
	Status:          "status",
	CreatedAt:       "createdat",
	UpdatedAt:       "updatedat",
}

// Columns returns all standard column names
func (t CatalogHouseTable) Columns() []string {
	return []string{
		t.ID, t.ProviderID, t.Name, t.Slug, t.Description, t.AreaM2,
		t.Bedrooms, t.Bathrooms, t.PriceCLP, t.Tier, t.MetaTitle,
		t.MetaDescription, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
