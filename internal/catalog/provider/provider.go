// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

/*
Package provider manages the manufacturer/service-provider companies listed
on the marketplace.

A provider carries its own base geographic coverage (the region set its
services may inherit) and an optional landing sub-record holding the paid
tier plus the editorial and SEO content that tier unlocks.

Publishing is gated by the publish-readiness engine: the service layer
aggregates fresh record, landing, and media-count state and defers the
decision to [publish.Validate].
*/
package provider

import (
	"time"

	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/publish"
)

// # Lifecycle

// Status is the publication state of a provider listing.
type Status string

const (
	// StatusDraft is the initial, editor-only state.
	StatusDraft Status = "draft"

	// StatusActive is live on the public marketplace.
	StatusActive Status = "active"

	// StatusArchived is delisted but retained for history.
	StatusArchived Status = "archived"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// # Core Entities

// Provider is a company offering prefabricated houses or related services.
type Provider struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	RUT         string `json:"rut"` // Chilean tax ID, e.g. "76.123.456-7"
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Website     string `json:"website,omitempty"`
	CommuneCode string `json:"commune_code"`
	Description string `json:"description,omitempty"`

	// Capability flags. At least one must be set before publishing.
	IsManufacturer    bool `json:"is_manufacturer"`
	IsServiceProvider bool `json:"is_service_provider"`

	// BaseCoverage is the provider's own region set, inherited by its
	// services unless they override it.
	BaseCoverage []coverage.Region `json:"base_coverage"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Landing is the provider's paid landing sub-record.
//
// Its presence (and its tier) is what makes a provider promoted: a provider
// without a landing is implicitly standard tier.
type Landing struct {
	ProviderID      string       `json:"provider_id"`
	Tier            publish.Tier `json:"tier"`
	Headline        string       `json:"headline,omitempty"`
	Editorial       string       `json:"editorial,omitempty"`
	MetaTitle       string       `json:"meta_title,omitempty"`
	MetaDescription string       `json:"meta_description,omitempty"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// publishRecord flattens a provider into the engine's input shape.
func publishRecord(provider *Provider) publish.Record {
	return publish.Record{
		Name:              provider.Name,
		CommuneCode:       provider.CommuneCode,
		IsManufacturer:    provider.IsManufacturer,
		IsServiceProvider: provider.IsServiceProvider,
	}
}

// publishLanding converts the landing sub-record into the engine's shape.
// A nil landing stays nil: the engine treats that as standard tier.
func publishLanding(landing *Landing) *publish.Landing {
	if landing == nil {
		return nil
	}
	return &publish.Landing{
		Tier:            landing.Tier,
		Headline:        landing.Headline,
		Editorial:       landing.Editorial,
		MetaTitle:       landing.MetaTitle,
		MetaDescription: landing.MetaDescription,
	}
}
