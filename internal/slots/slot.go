// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

/*
Package slots manages the paid homepage placements and their round-robin
rotation.

Every placement (slot) is bound to one piece of content and grouped into a
bucket by slot type, which mirrors the listing tiers. A process-wide rotation
index advances on a fixed tick; at any instant each rotating bucket shows a
sliding window of its active pool.

Core Responsibility:

  - Pool: Active slots per type, ordered by rotation_order, rebuilt per query.
  - Rotation: Deterministic window computation from the rotation index.
  - Admin: CRUD over slot rows; only is_active gates visibility.

End dates are stored for billing but the rotation engine never checks them;
deactivation on expiry is an external admin job.
*/
package slots

import (
	"time"

	"github.com/prefabrica/prefabrica/internal/publish"
)

// # Content Binding

// ContentType identifies what kind of listing a slot promotes.
type ContentType string

const (
	ContentProvider       ContentType = "provider"
	ContentHouse          ContentType = "house"
	ContentServiceProduct ContentType = "service_product"
)

// IsValid reports whether c is a recognised [ContentType] value.
func (c ContentType) IsValid() bool {
	switch c {
	case ContentProvider, ContentHouse, ContentServiceProduct:
		return true
	}
	return false
}

// # Slot Entity

// Slot is a single paid homepage placement.
//
// A slot is created and destroyed only by explicit admin action. EndDate is
// informational; visibility is gated by IsActive alone.
type Slot struct {
	ID           string      `json:"id"`
	SlotType     publish.Tier `json:"slot_type"`
	SlotPosition int         `json:"slot_position"` // >= 1, layout hint for the homepage grid
	ContentType  ContentType `json:"content_type,omitempty"`
	ContentID    string      `json:"content_id,omitempty"`
	MonthlyPrice *int64      `json:"monthly_price,omitempty"` // CLP, no decimals
	StartDate    *time.Time  `json:"start_date,omitempty"`
	EndDate      *time.Time  `json:"end_date,omitempty"`

	// RotationOrder fixes the slot's position within its type's pool.
	RotationOrder int `json:"rotation_order"`

	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
