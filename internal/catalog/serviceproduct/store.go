// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package serviceproduct

import (
	"context"
	"time"

	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/publish"
)

// # Service Data Access

// Filter narrows service list queries.
type Filter struct {
	Query      string
	ProviderID string
	Status     Status
	Tier       publish.Tier

	// Region filters against the materialized effective coverage.
	Region coverage.Region
}

// Repository defines the data access contract for service rows and their
// coverage deltas.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*ServiceProduct, int, error)
	FindByID(context context.Context, id string) (*ServiceProduct, error)
	FindBySlug(context context.Context, slug string) (*ServiceProduct, error)
	Create(context context.Context, sp *ServiceProduct) error
	Update(context context.Context, sp *ServiceProduct) error

	// ActivateWithCoverage flips status to active AND stores the resolved
	// coverage in one write, guarded by an updatedat compare-and-swap.
	ActivateWithCoverage(context context.Context, id string, effective []coverage.Region, seenUpdatedAt time.Time) (bool, error)

	// SetEffectiveCoverage refreshes the materialized set outside the
	// publish flow (after coverage edits on an already-active service).
	SetEffectiveCoverage(context context.Context, id string, effective []coverage.Region) error

	Archive(context context.Context, id string) error

	// ListDeltas returns the service's coverage deltas in stored list
	// order; duplicates are possible and resolution order matters.
	ListDeltas(context context.Context, serviceID string) ([]coverage.Delta, error)

	// ReplaceDeltas overwrites the delta list wholesale, preserving the
	// given order.
	ReplaceDeltas(context context.Context, serviceID string, deltas []coverage.Delta) error
}

// ProviderCoverage supplies a provider's base region set for inherit mode.
//
// Implemented by the provider repository; declared here so this package
// depends on a capability, not on the provider package.
type ProviderCoverage interface {
	BaseCoverage(context context.Context, providerID string) ([]coverage.Region, error)
}

// MediaCounter supplies per-role media counts for the publish flow.
type MediaCounter interface {
	Counts(context context.Context, ownerType publish.EntityType, ownerID string) (publish.MediaCounts, error)
}
