// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package publish

import (
	"fmt"
	"unicode/utf8"
)

// # Entity Kinds

// EntityType identifies which catalogue entity is being validated.
//
// It selects the structural checks that run; the media and SEO checks are
// tier-driven and shared across entity types.
type EntityType string

const (
	// EntityProvider is a manufacturer or service provider company.
	EntityProvider EntityType = "provider"

	// EntityHouse is a prefabricated house model.
	EntityHouse EntityType = "house"

	// EntityService is a marketplace service attached to a provider.
	EntityService EntityType = "service"
)

// IsValid reports whether e is a recognised [EntityType] value.
func (e EntityType) IsValid() bool {
	switch e {
	case EntityProvider, EntityHouse, EntityService:
		return true
	}
	return false
}

// # Error Sections

// Section tags a validation error with the admin UI tab it belongs to.
//
// Grouping is purely presentational: the engine produces a flat ordered
// list and never branches on section values.
type Section string

const (
	SectionIdentity   Section = "identity"
	SectionLocation   Section = "location"
	SectionRoles      Section = "roles"
	SectionCoverage   Section = "coverage"
	SectionMedia      Section = "media"
	SectionSEO        Section = "seo"
	SectionDimensions Section = "dimensions"
	SectionLanding    Section = "landing"
	SectionGeneral    Section = "general"
)

// # Validation Output

// Error is a single publish-readiness failure.
type Error struct {
	// Field is the record field (or media role) that failed the check.
	Field string `json:"field"`
	// Message is a human-readable description safe to show to editors.
	Message string `json:"message"`
	// Section groups the error under an admin UI tab.
	Section Section `json:"section"`
}

// Result is the outcome of a publish-readiness run.
//
// Readiness is derived from the error list via [Result.OK], never stored
// separately, so the two cannot drift apart.
type Result struct {
	// Errors holds every failing check, in the order checks ran.
	Errors []Error `json:"errors"`
}

// OK reports whether the entity may be published.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// # Validation Input

// Record is the flat entity snapshot the engine validates.
//
// It is a superset across entity types; each [EntityType] reads only the
// fields its structural checks need. Callers populate it from whatever
// storage row they hold.
type Record struct {
	Name        string
	CommuneCode string

	// Provider capability flags. A provider must carry at least one.
	IsManufacturer    bool
	IsServiceProvider bool

	// House physical attributes.
	AreaM2    float64
	Bedrooms  int
	Bathrooms int

	// Service association.
	ProviderID string

	// Direct SEO fields (houses and services; providers use [Landing]).
	MetaTitle       string
	MetaDescription string

	// Tier as stored on the row (houses and services only; provider tier
	// lives on the landing sub-record, see [TierFor]).
	Tier Tier
}

// Landing is the provider landing sub-record carrying promoted-tier content.
type Landing struct {
	Tier            Tier
	Headline        string
	Editorial       string
	MetaTitle       string
	MetaDescription string
}

// SEO length bounds, inclusive, counted in runes.
const (
	MetaTitleMinLen = 10
	MetaTitleMaxLen = 60

	MetaDescriptionMinLen = 30
	MetaDescriptionMaxLen = 160
)

// # Tier Derivation

// TierFor resolves the effective listing tier for an entity.
//
// Providers store their tier on the landing sub-record and default to
// standard when no landing exists. Houses and services carry it directly.
func TierFor(entity EntityType, record Record, landing *Landing) Tier {
	switch entity {
	case EntityProvider:
		if landing == nil {
			return TierStandard
		}
		return landing.Tier
	case EntityHouse, EntityService:
		return record.Tier
	}
	panic(fmt.Sprintf("publish: unknown entity type %q", entity))
}

// # Publish Validation

// Validate runs every publish-readiness check for the entity and returns
// the full list of failures. It never short-circuits: an editor sees all
// problems in one pass, not one at a time.
//
// Check order is fixed: structural checks per entity type, then tier-gated
// media checks, then tier-gated SEO checks. This order is observable in the
// returned list and is relied on by the admin UI.
//
// Missing data is a validation error, never a Go error. Validate panics
// only when entity or tier is outside its enumerated domain, which means
// the integrating code is broken.
func Validate(entity EntityType, tier Tier, record Record, media MediaCounts, landing *Landing) Result {
	if !entity.IsValid() {
		panic(fmt.Sprintf("publish: unknown entity type %q", entity))
	}
	if !tier.IsValid() {
		panic(fmt.Sprintf("publish: unknown tier %q", tier))
	}

	var errs []Error
	add := func(field, message string, section Section) {
		errs = append(errs, Error{Field: field, Message: message, Section: section})
	}

	// ── 1. Structural checks ──────────────────────────────────────────────
	switch entity {
	case EntityProvider:
		if record.Name == "" {
			add("name", "Company name is required", SectionIdentity)
		}
		if record.CommuneCode == "" {
			add("commune_code", "Commune is required", SectionLocation)
		}
		if !record.IsManufacturer && !record.IsServiceProvider {
			add("capabilities", "Select at least one capability (manufacturer or service provider)", SectionRoles)
		}
		if tier != TierStandard && landing == nil {
			add("landing", "Landing content is required for promoted tiers", SectionLanding)
		}

	case EntityHouse:
		if record.Name == "" {
			add("name", "Model name is required", SectionIdentity)
		}
		if record.AreaM2 <= 0 {
			add("area_m2", "Built area must be greater than zero", SectionDimensions)
		}
		if record.Bedrooms < 0 {
			add("bedrooms", "Bedrooms cannot be negative", SectionDimensions)
		}
		if record.Bathrooms < 0 {
			add("bathrooms", "Bathrooms cannot be negative", SectionDimensions)
		}

	case EntityService:
		if record.Name == "" {
			add("name", "Service name is required", SectionIdentity)
		}
		if record.ProviderID == "" {
			add("provider_id", "Service must belong to a provider", SectionGeneral)
		}
	}

	// ── 2. Tier-gated media checks ────────────────────────────────────────
	for _, role := range RequiredMedia(tier) {
		if media[role] == 0 {
			add(string(role), fmt.Sprintf("Missing required media: %s", role), SectionMedia)
		}
	}

	// ── 3. Tier-gated SEO checks ──────────────────────────────────────────
	if RequiresSEO(tier) {
		metaTitle, metaDescription := record.MetaTitle, record.MetaDescription
		if entity == EntityProvider && landing != nil {
			metaTitle, metaDescription = landing.MetaTitle, landing.MetaDescription
		}

		// Empty and out-of-range collapse into the same message on purpose;
		// the admin UI shows the allowed range either way.
		if !runeLenBetween(metaTitle, MetaTitleMinLen, MetaTitleMaxLen) {
			add("meta_title",
				fmt.Sprintf("Meta title must be between %d and %d characters", MetaTitleMinLen, MetaTitleMaxLen),
				SectionSEO)
		}
		if !runeLenBetween(metaDescription, MetaDescriptionMinLen, MetaDescriptionMaxLen) {
			add("meta_description",
				fmt.Sprintf("Meta description must be between %d and %d characters", MetaDescriptionMinLen, MetaDescriptionMaxLen),
				SectionSEO)
		}
	}

	return Result{Errors: errs}
}

// runeLenBetween reports whether the Unicode character count of s is within
// the inclusive [min, max] range.
func runeLenBetween(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	return n >= min && n <= max
}
