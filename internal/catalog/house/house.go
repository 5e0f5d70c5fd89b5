// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

/*
Package house manages the prefabricated house models listed on the
marketplace.

A house belongs to a provider, carries its listing tier directly on the
row, and must pass the publish-readiness engine (structural dimensions,
tier-gated media, and tier-gated SEO) before going live.
*/
package house

import (
	"time"

	"github.com/prefabrica/prefabrica/internal/publish"
)

// Status is the publication state of a house listing.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// House is a single prefabricated house model.
type House struct {
	ID          string `json:"id"`
	ProviderID  string `json:"provider_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`

	// Physical attributes shown in listing filters.
	AreaM2    float64 `json:"area_m2"`
	Bedrooms  int     `json:"bedrooms"`
	Bathrooms int     `json:"bathrooms"`

	// PriceCLP is the reference base price in Chilean pesos.
	PriceCLP *int64 `json:"price_clp,omitempty"`

	Tier            publish.Tier `json:"tier"`
	MetaTitle       string       `json:"meta_title,omitempty"`
	MetaDescription string       `json:"meta_description,omitempty"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// publishRecord flattens a house into the engine's input shape.
func publishRecord(house *House) publish.Record {
	return publish.Record{
		Name:            house.Name,
		AreaM2:          house.AreaM2,
		Bedrooms:        house.Bedrooms,
		Bathrooms:       house.Bathrooms,
		MetaTitle:       house.MetaTitle,
		MetaDescription: house.MetaDescription,
		Tier:            house.Tier,
	}
}
