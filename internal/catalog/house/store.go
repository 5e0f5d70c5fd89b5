// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package house

import (
	"context"
	"time"

	"github.com/prefabrica/prefabrica/internal/publish"
)

// # House Data Access

// Filter narrows house list queries.
type Filter struct {
	Query      string
	ProviderID string
	Status     Status
	Tier       publish.Tier
	MinArea    float64
	Bedrooms   *int
}

// Repository defines the data access contract for house rows.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*House, int, error)
	FindByID(context context.Context, id string) (*House, error)
	FindBySlug(context context.Context, slug string) (*House, error)
	Create(context context.Context, house *House) error
	Update(context context.Context, house *House) error

	// Activate flips status to active guarded by an updatedat
	// compare-and-swap; false means a concurrent edit won.
	Activate(context context.Context, id string, seenUpdatedAt time.Time) (bool, error)

	Archive(context context.Context, id string) error
}
