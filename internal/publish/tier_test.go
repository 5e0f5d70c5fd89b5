// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package publish_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefabrica/prefabrica/internal/publish"
)

/*
TestRequiredMedia verifies the closed tier-to-media policy table.
*/
func TestRequiredMedia(t *testing.T) {
	tests := []struct {
		name  string
		tier  publish.Tier
		roles []publish.MediaRole
	}{
		{"standard_requires_nothing", publish.TierStandard, []publish.MediaRole{}},
		{"destacado_requires_thumbnail", publish.TierDestacado, []publish.MediaRole{
			publish.MediaRoleThumbnail,
		}},
		{"premium_requires_full_landing_set", publish.TierPremium, []publish.MediaRole{
			publish.MediaRoleThumbnail,
			publish.MediaRoleLandingHero,
			publish.MediaRoleLandingSecondary,
			publish.MediaRoleLandingThird,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.roles, publish.RequiredMedia(tt.tier))
		})
	}
}

/*
TestRequiredMedia_GrowsWithTier checks that higher tiers never require fewer
media roles than lower tiers.
*/
func TestRequiredMedia_GrowsWithTier(t *testing.T) {
	standard := publish.RequiredMedia(publish.TierStandard)
	destacado := publish.RequiredMedia(publish.TierDestacado)
	premium := publish.RequiredMedia(publish.TierPremium)

	assert.LessOrEqual(t, len(standard), len(destacado))
	assert.LessOrEqual(t, len(destacado), len(premium))
}

/*
TestRequiredMedia_UnknownTierPanics asserts the fail-fast contract for
out-of-domain tiers.
*/
func TestRequiredMedia_UnknownTierPanics(t *testing.T) {
	assert.Panics(t, func() {
		publish.RequiredMedia(publish.Tier("platinum"))
	})
}

/*
TestRequiresSEO checks that only premium listings owe SEO fields.
*/
func TestRequiresSEO(t *testing.T) {
	assert.False(t, publish.RequiresSEO(publish.TierStandard))
	assert.False(t, publish.RequiresSEO(publish.TierDestacado))
	assert.True(t, publish.RequiresSEO(publish.TierPremium))

	assert.Panics(t, func() {
		publish.RequiresSEO(publish.Tier(""))
	})
}

/*
TestTier_AtLeast verifies the ordinal ordering standard < destacado < premium.
*/
func TestTier_AtLeast(t *testing.T) {
	tests := []struct {
		name     string
		tier     publish.Tier
		target   publish.Tier
		expected bool
	}{
		{"premium_at_least_standard", publish.TierPremium, publish.TierStandard, true},
		{"premium_at_least_premium", publish.TierPremium, publish.TierPremium, true},
		{"destacado_at_least_premium", publish.TierDestacado, publish.TierPremium, false},
		{"standard_at_least_destacado", publish.TierStandard, publish.TierDestacado, false},
		{"standard_at_least_standard", publish.TierStandard, publish.TierStandard, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.tier.AtLeast(tt.target))
		})
	}
}

/*
TestTierFor verifies per-entity tier derivation, including the provider
landing-record rule.
*/
func TestTierFor(t *testing.T) {
	t.Run("provider_without_landing_defaults_to_standard", func(t *testing.T) {
		tier := publish.TierFor(publish.EntityProvider, publish.Record{}, nil)
		assert.Equal(t, publish.TierStandard, tier)
	})

	t.Run("provider_tier_comes_from_landing", func(t *testing.T) {
		landing := &publish.Landing{Tier: publish.TierPremium}
		tier := publish.TierFor(publish.EntityProvider, publish.Record{}, landing)
		assert.Equal(t, publish.TierPremium, tier)
	})

	t.Run("house_tier_is_direct_field", func(t *testing.T) {
		record := publish.Record{Tier: publish.TierDestacado}
		tier := publish.TierFor(publish.EntityHouse, record, nil)
		assert.Equal(t, publish.TierDestacado, tier)
	})

	t.Run("service_tier_is_direct_field", func(t *testing.T) {
		record := publish.Record{Tier: publish.TierPremium}
		tier := publish.TierFor(publish.EntityService, record, nil)
		assert.Equal(t, publish.TierPremium, tier)
	})

	t.Run("unknown_entity_panics", func(t *testing.T) {
		require.Panics(t, func() {
			publish.TierFor(publish.EntityType("plot"), publish.Record{}, nil)
		})
	})
}
