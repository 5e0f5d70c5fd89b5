// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package media

import (
	"context"

	"github.com/prefabrica/prefabrica/internal/publish"
)

// # Media Data Access

// Repository defines the data access contract for media asset rows.
type Repository interface {
	ListByOwner(context context.Context, ownerType publish.EntityType, ownerID string) ([]Asset, error)

	// CountsByOwner aggregates assets into per-role counts for the publish
	// engine. Roles with no assets are simply absent from the map.
	CountsByOwner(context context.Context, ownerType publish.EntityType, ownerID string) (publish.MediaCounts, error)

	CountByRole(context context.Context, ownerType publish.EntityType, ownerID string, role publish.MediaRole) (int, error)
	Create(context context.Context, asset *Asset) error
	Delete(context context.Context, id string) error
}
