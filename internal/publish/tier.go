// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

/*
Package publish implements the publish-readiness rules engine.

It decides whether a provider, house, or marketplace service may be flipped
to the public "active" status. The decision is a pure function of the entity
record, its listing tier, and the media currently attached to it.

Core Responsibility:

  - TierPolicy: Maps each listing tier to its mandatory media roles and SEO fields.
  - Validation: Runs structural, media, and SEO checks and collects every failure.
  - Purity: No storage or HTTP access. Callers fetch state, the engine decides.

The write path that flips status MUST re-run validation immediately before
persisting; the read-validate-write sequence is not transactional.
*/
package publish

import "fmt"

// # Listing Tiers

// Tier is the promotional level of a listing.
//
// The ordering standard < destacado < premium is meaningful: policy checks
// may ask for "at least" a given tier, never only equality.
type Tier string

const (
	// TierStandard is the default free tier.
	TierStandard Tier = "standard"

	// TierDestacado is the mid "highlighted" paid tier.
	TierDestacado Tier = "destacado"

	// TierPremium is the top paid tier with full landing real estate.
	TierPremium Tier = "premium"
)

// IsValid reports whether t is a recognised [Tier] value.
func (t Tier) IsValid() bool {
	switch t {
	case TierStandard, TierDestacado, TierPremium:
		return true
	}
	return false
}

// AtLeast checks if the tier meets or exceeds the required target tier.
func (t Tier) AtLeast(target Tier) bool {
	return t.level() >= target.level()
}

// level maps a tier to a numeric rank for ordinal comparison.
func (t Tier) level() int {

	// Linear scale (10-30) allows for future intermediate tiers
	switch t {
	case TierPremium:
		return 30
	case TierDestacado:
		return 20
	case TierStandard:
		return 10
	default:
		return 0
	}
}

// # Media Roles

// MediaRole classifies the purpose of a media asset attached to a listing.
//
// A role is not unique per owner (gallery may hold many assets); per-role
// uniqueness limits are enforced by the upload layer, not by this engine.
type MediaRole string

const (
	MediaRoleThumbnail        MediaRole = "thumbnail"
	MediaRoleLandingHero      MediaRole = "landing_hero"
	MediaRoleLandingSecondary MediaRole = "landing_secondary"
	MediaRoleLandingThird     MediaRole = "landing_third"
	MediaRoleGallery          MediaRole = "gallery"
	MediaRolePlan             MediaRole = "plan"
	MediaRoleBrochurePDF      MediaRole = "brochure_pdf"
	MediaRoleCover            MediaRole = "cover"
	MediaRoleLogo             MediaRole = "logo"
)

// IsValid reports whether r is a recognised [MediaRole] value.
func (r MediaRole) IsValid() bool {
	switch r {
	case
		MediaRoleThumbnail,
		MediaRoleLandingHero,
		MediaRoleLandingSecondary,
		MediaRoleLandingThird,
		MediaRoleGallery,
		MediaRolePlan,
		MediaRoleBrochurePDF,
		MediaRoleCover,
		MediaRoleLogo:
		return true
	}
	return false
}

// MediaCounts maps each media role to the number of assets attached under it.
//
// The engine only ever needs counts, never asset bodies. Absent roles are
// treated as zero, so a nil or partial map is safe input.
type MediaCounts map[MediaRole]int

// # Tier Policy

// requiredMediaByTier is the closed policy table of mandatory media roles.
//
// Changing this table changes which listings may go live; every consumer of
// [RequiredMedia] must be reviewed when an entry is added.
var requiredMediaByTier = map[Tier][]MediaRole{
	TierStandard:  {},
	TierDestacado: {MediaRoleThumbnail},
	TierPremium: {
		MediaRoleThumbnail,
		MediaRoleLandingHero,
		MediaRoleLandingSecondary,
		MediaRoleLandingThird,
	},
}

// RequiredMedia returns the media roles a listing of the given tier must
// carry before it may be published, in stable check order.
//
// An unknown tier is a caller bug and panics.
func RequiredMedia(tier Tier) []MediaRole {
	roles, ok := requiredMediaByTier[tier]
	if !ok {
		panic(fmt.Sprintf("publish: unknown tier %q", tier))
	}
	return roles
}

// RequiresSEO reports whether the given tier mandates meta title and meta
// description. Only premium listings earn (and therefore owe) SEO fields.
//
// An unknown tier is a caller bug and panics.
func RequiresSEO(tier Tier) bool {
	if !tier.IsValid() {
		panic(fmt.Sprintf("publish: unknown tier %q", tier))
	}
	return tier == TierPremium
}
