// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

/*
Package serviceproduct manages the marketplace services (transport,
installation, permits, turnkey assembly) a provider sells alongside houses.

A service's geographic reach is not stored directly: editors pick a
coverage mode and a list of per-region deltas, and the effective region
set is resolved by the coverage engine and materialized onto the row at
publish time so region-filtered listing queries stay flat.
*/
package serviceproduct

import (
	"time"

	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/publish"
)

// Status is the publication state of a service listing.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// ServiceProduct is a single marketplace service offering.
type ServiceProduct struct {
	ID          string `json:"id"`
	ProviderID  string `json:"provider_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`

	// PriceCLP is the reference price in Chilean pesos, when fixed.
	PriceCLP *int64 `json:"price_clp,omitempty"`

	Tier            publish.Tier `json:"tier"`
	MetaTitle       string       `json:"meta_title,omitempty"`
	MetaDescription string       `json:"meta_description,omitempty"`

	// CoverageMode selects inherit-with-deltas vs. from-scratch coverage.
	// Switching mode does not clear existing deltas; see the coverage
	// package notes.
	CoverageMode coverage.Mode `json:"coverage_mode"`

	// EffectiveCoverage is the materialized resolver output, refreshed on
	// every publish and coverage edit. Read-only through the API.
	EffectiveCoverage []coverage.Region `json:"effective_coverage"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// publishRecord flattens a service into the engine's input shape.
func publishRecord(sp *ServiceProduct) publish.Record {
	return publish.Record{
		Name:            sp.Name,
		ProviderID:      sp.ProviderID,
		MetaTitle:       sp.MetaTitle,
		MetaDescription: sp.MetaDescription,
		Tier:            sp.Tier,
	}
}
