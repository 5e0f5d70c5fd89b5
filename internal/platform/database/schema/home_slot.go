package schema

// HomeSlotTable represents the 'home.slot' table
type HomeSlotTable struct {
	Table         string
	ID            string
	SlotType      string
	SlotPosition  string
	ContentType   string
	ContentID     string
	MonthlyPrice  string
	StartDate     string
	EndDate       string
	RotationOrder string
	IsActive      string
	CreatedAt     string
	UpdatedAt     string
}

// HomeSlot is the schema definition for home.slot
var HomeSlot = HomeSlotTable{
	Table:         "home.slot",
	ID:            "id",
	SlotType:      "slottype",
	SlotPosition:  "slotposition",
	ContentType:   "contenttype",
	ContentID:     "contentid",
	MonthlyPrice:  "monthlyprice",
	StartDate:     "startdate",
	EndDate:       "enddate",
	RotationOrder: "rotationorder",
	IsActive:      "isactive",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

// Columns returns all standard column names
func (t HomeSlotTable) Columns() []string {
	return []string{
		t.ID, t.SlotType, t.SlotPosition, t.ContentType, t.ContentID,
		t.MonthlyPrice, t.StartDate, t.EndDate, t.RotationOrder,
		t.IsActive, t.CreatedAt, t.UpdatedAt,
	}
}
