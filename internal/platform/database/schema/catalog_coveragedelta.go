package schema

// CatalogCoverageDeltaTable represents the 'catalog.coveragedelta' table
type CatalogCoverageDeltaTable struct {
	Table      string
	ServiceID  string
	RegionCode string
	Op         string
	Position   string
}

// CatalogCoverageDelta is the schema definition for catalog.coveragedelta
var CatalogCoverageDelta = CatalogCoverageDeltaTable{
	Table:      "catalog.coveragedelta",
	ServiceID:  "serviceid",
	RegionCode: "regioncode",
	Op:         "op",
	Position:   "position",
}

// Columns returns all standard column names
func (t CatalogCoverageDeltaTable) Columns() []string {
	return []string{t.ServiceID, t.RegionCode, t.Op, t.Position}
}
