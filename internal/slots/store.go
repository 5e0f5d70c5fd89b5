// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package slots

import (
	"context"

	"github.com/prefabrica/prefabrica/internal/publish"
)

// # Slot Data Access

// Repository defines the data access contract for homepage slot rows.
//
// ListActive feeds the rotation engine and must always reflect the current
// admin state; the engine never caches a pool across a tick boundary.
type Repository interface {
	ListActive(context context.Context, slotType publish.Tier) ([]Slot, error)
	List(context context.Context, slotType publish.Tier) ([]Slot, error)
	FindByID(context context.Context, id string) (*Slot, error)
	Create(context context.Context, slot *Slot) error
	Update(context context.Context, slot *Slot) error
	SetActive(context context.Context, id string, isActive bool) error
	Delete(context context.Context, id string) error
}
