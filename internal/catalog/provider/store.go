// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package provider

import (
	"context"
	"time"

	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/publish"
)

// # Provider Data Access

// Filter narrows provider list queries.
type Filter struct {
	Query          string
	Status         Status
	IsManufacturer *bool
	Region         coverage.Region
}

// Repository defines the data access contract for provider rows.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Provider, int, error)
	FindByID(context context.Context, id string) (*Provider, error)
	FindBySlug(context context.Context, slug string) (*Provider, error)
	Create(context context.Context, provider *Provider) error
	Update(context context.Context, provider *Provider) error

	// Activate flips status to active only when the row's updatedat still
	// matches the snapshot the caller validated against. A zero rows
	// result means a concurrent edit won; the caller must re-validate.
	Activate(context context.Context, id string, seenUpdatedAt time.Time) (bool, error)

	Archive(context context.Context, id string) error

	// BaseCoverage returns just the provider's own region set, used by the
	// coverage resolver for services in inherit mode.
	BaseCoverage(context context.Context, id string) ([]coverage.Region, error)

	FindLanding(context context.Context, providerID string) (*Landing, error)
	UpsertLanding(context context.Context, landing *Landing) error
	DeleteLanding(context context.Context, providerID string) error
}

// MediaCounter supplies per-role media counts for the publish flow.
//
// Implemented by the media service; declared here so the provider package
// depends on a capability, not on the media package.
type MediaCounter interface {
	Counts(context context.Context, ownerType publish.EntityType, ownerID string) (publish.MediaCounts, error)
}
