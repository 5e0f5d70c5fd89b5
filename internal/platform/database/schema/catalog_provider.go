package schema

// CatalogProviderTable represents the 'catalog.provider' table
type CatalogProviderTable struct {
	Table             string
	ID                string
	Name              string
	Slug              string
	RUT               string
	Email             string
	Phone             string
	Website           string
	CommuneCode       string
	Description       string
	IsManufacturer    string
	IsServiceProvider string
	BaseCoverage      string
	Status            string
	CreatedAt         string
	UpdatedAt         string
}

// CatalogProvider is the schema definition for catalog.provider
var CatalogProvider = CatalogProviderTable{
	Table:             "catalog.provider",
	ID:                "id",
	Name:              "name",
	Slug:              "slug",
	RUT:               "rut",
	Email:             "email",
	Phone:             "phone",
	Website:           "website",
	CommuneCode:       "communecode",
	Description:       "description",
	IsManufacturer:    "ismanufacturer",
	IsServiceProvider: "isserviceprovider",
	BaseCoverage:      "basecoverage",
	Status:            "status",
	CreatedAt:         "createdat",
	UpdatedAt:         "updatedat",
}

// Columns returns all standard column names
func (t CatalogProviderTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Slug, t.RUT, t.Email, t.Phone, t.Website,
		t.CommuneCode, t.Description, t.IsManufacturer, t.IsServiceProvider,
		t.BaseCoverage, t.Status, t.CreatedAt, t.UpdatedAt,
	}
}
