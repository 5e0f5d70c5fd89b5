package schema

// CatalogMediaAssetTable represents the 'catalog.mediaasset' table
type CatalogMediaAssetTable struct {
	Table      string
	ID         string
	OwnerType  string
	OwnerID    string
	Role       string
	StorageKey string
	URL        string
	Position   string
	CreatedAt  string
}

// CatalogMediaAsset is the schema definition for catalog.mediaasset
var CatalogMediaAsset = CatalogMediaAssetTable{
	Table:      "catalog.mediaasset",
	ID:         "id",
	OwnerType:  "ownertype",
	OwnerID:    "ownerid",
	Role:       "role",
	StorageKey: "storagekey",
	URL:        "url",
	Position:   "position",
	CreatedAt:  "createdat",
}

// Columns returns all standard column names
func (t CatalogMediaAssetTable) Columns() []string {
	return []string{
		t.ID, t.OwnerType, t.OwnerID, t.Role, t.StorageKey,
		t.URL, t.Position, t.CreatedAt,
	}
}
