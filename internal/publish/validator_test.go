// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package publish_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefabrica/prefabrica/internal/publish"
)

// validProviderRecord returns a provider record that passes every
// structural check.
func validProviderRecord() publish.Record {
	return publish.Record{
		Name:           "Casas del Sur",
		CommuneCode:    "13101",
		IsManufacturer: true,
	}
}

// fullPremiumMedia returns counts satisfying the premium media policy.
func fullPremiumMedia() publish.MediaCounts {
	return publish.MediaCounts{
		publish.MediaRoleThumbnail:        1,
		publish.MediaRoleLandingHero:      1,
		publish.MediaRoleLandingSecondary: 2,
		publish.MediaRoleLandingThird:     1,
	}
}

/*
TestValidate_StandardProviderReady checks the happy path: a structurally
complete standard provider needs no media and no SEO.
*/
func TestValidate_StandardProviderReady(t *testing.T) {
	result := publish.Validate(publish.EntityProvider, publish.TierStandard,
		validProviderRecord(), nil, nil)

	assert.True(t, result.OK())
	assert.Empty(t, result.Errors)
}

/*
TestValidate_PremiumProviderWithNoMedia reproduces the worst-case premium
scenario: zero media and empty SEO yields exactly 4 media errors plus 2 SEO
errors (plus the missing-landing structural error when no landing exists).
*/
func TestValidate_PremiumProviderWithNoMedia(t *testing.T) {
	landing := &publish.Landing{Tier: publish.TierPremium}

	result := publish.Validate(publish.EntityProvider, publish.TierPremium,
		validProviderRecord(), publish.MediaCounts{}, landing)

	require.False(t, result.OK())
	require.Len(t, result.Errors, 6)

	bySection := map[publish.Section]int{}
	for _, e := range result.Errors {
		bySection[e.Section]++
	}
	assert.Equal(t, 4, bySection[publish.SectionMedia])
	assert.Equal(t, 2, bySection[publish.SectionSEO])
}

/*
TestValidate_MediaErrorsFollowPolicyOrder checks that media errors surface
in the policy table's check order, one per missing role.
*/
func TestValidate_MediaErrorsFollowPolicyOrder(t *testing.T) {
	landing := &publish.Landing{
		Tier:            publish.TierPremium,
		MetaTitle:       "Premium prefab houses in Chile",
		MetaDescription: strings.Repeat("Quality modular construction. ", 3),
	}

	result := publish.Validate(publish.EntityProvider, publish.TierPremium,
		validProviderRecord(), publish.MediaCounts{publish.MediaRoleThumbnail: 1}, landing)

	require.Len(t, result.Errors, 3)
	assert.Equal(t, string(publish.MediaRoleLandingHero), result.Errors[0].Field)
	assert.Equal(t, string(publish.MediaRoleLandingSecondary), result.Errors[1].Field)
	assert.Equal(t, string(publish.MediaRoleLandingThird), result.Errors[2].Field)
}

/*
TestValidate_SEOBounds exercises the inclusive rune-length bounds for
premium SEO fields, including the collapsed missing/out-of-range message.
*/
func TestValidate_SEOBounds(t *testing.T) {
	tests := []struct {
		name            string
		metaTitle       string
		metaDescription string
		wantErrors      int
	}{
		{"both_at_lower_bound", strings.Repeat("a", 10), strings.Repeat("b", 30), 0},
		{"both_at_upper_bound", strings.Repeat("a", 60), strings.Repeat("b", 160), 0},
		{"title_too_short", strings.Repeat("a", 9), strings.Repeat("b", 30), 1},
		{"title_too_long", strings.Repeat("a", 61), strings.Repeat("b", 30), 1},
		{"description_too_long", strings.Repeat("a", 10), strings.Repeat("b", 161), 1},
		{"both_empty", "", "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			landing := &publish.Landing{
				Tier:            publish.TierPremium,
				MetaTitle:       tt.metaTitle,
				MetaDescription: tt.metaDescription,
			}

			result := publish.Validate(publish.EntityProvider, publish.TierPremium,
				validProviderRecord(), fullPremiumMedia(), landing)

			assert.Len(t, result.Errors, tt.wantErrors)
			for _, e := range result.Errors {
				assert.Equal(t, publish.SectionSEO, e.Section)
			}
		})
	}
}

/*
TestValidate_SEOEmptyAndShortCollapse confirms that an empty meta title
produces the same message as a too-short one.
*/
func TestValidate_SEOEmptyAndShortCollapse(t *testing.T) {
	run := func(title string) publish.Result {
		landing := &publish.Landing{
			Tier:            publish.TierPremium,
			MetaTitle:       title,
			MetaDescription: strings.Repeat("b", 30),
		}
		return publish.Validate(publish.EntityProvider, publish.TierPremium,
			validProviderRecord(), fullPremiumMedia(), landing)
	}

	empty := run("")
	short := run("short")

	require.Len(t, empty.Errors, 1)
	require.Len(t, short.Errors, 1)
	assert.Equal(t, empty.Errors[0].Message, short.Errors[0].Message)
}

/*
TestValidate_StandardHouseStructural checks that a standard house with
zero area and negative bedrooms yields exactly two structural errors and
no media/SEO errors.
*/
func TestValidate_StandardHouseStructural(t *testing.T) {
	record := publish.Record{
		Name:     "Modelo Laguna 54",
		Tier:     publish.TierStandard,
		AreaM2:   0,
		Bedrooms: -1,
	}

	result := publish.Validate(publish.EntityHouse, publish.TierStandard, record, nil, nil)

	require.Len(t, result.Errors, 2)
	assert.Equal(t, "area_m2", result.Errors[0].Field)
	assert.Equal(t, publish.SectionDimensions, result.Errors[0].Section)
	assert.Equal(t, "bedrooms", result.Errors[1].Field)
	assert.Equal(t, publish.SectionDimensions, result.Errors[1].Section)
}

/*
TestValidate_ProviderCapabilityFlags checks the at-least-one-capability rule.
*/
func TestValidate_ProviderCapabilityFlags(t *testing.T) {
	record := validProviderRecord()
	record.IsManufacturer = false
	record.IsServiceProvider = false

	result := publish.Validate(publish.EntityProvider, publish.TierStandard, record, nil, nil)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "capabilities", result.Errors[0].Field)
	assert.Equal(t, publish.SectionRoles, result.Errors[0].Section)
}

/*
TestValidate_PromotedProviderNeedsLanding checks that a non-standard
provider without a landing sub-record is blocked.
*/
func TestValidate_PromotedProviderNeedsLanding(t *testing.T) {
	result := publish.Validate(publish.EntityProvider, publish.TierDestacado,
		validProviderRecord(), publish.MediaCounts{publish.MediaRoleThumbnail: 1}, nil)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "landing", result.Errors[0].Field)
	assert.Equal(t, publish.SectionLanding, result.Errors[0].Section)
}

/*
TestValidate_ServiceRequiresProvider checks the provider association rule.
*/
func TestValidate_ServiceRequiresProvider(t *testing.T) {
	record := publish.Record{Name: "Transporte e instalación", Tier: publish.TierStandard}

	result := publish.Validate(publish.EntityService, publish.TierStandard, record, nil, nil)

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "provider_id", result.Errors[0].Field)
}

/*
TestValidate_CollectsAllErrors verifies that validation never short-circuits:
structural, media, and SEO failures all surface in a single pass.
*/
func TestValidate_CollectsAllErrors(t *testing.T) {
	record := publish.Record{
		Tier:     publish.TierPremium,
		AreaM2:   -10,
		Bedrooms: -1,
	}

	result := publish.Validate(publish.EntityHouse, publish.TierPremium, record, nil, nil)

	// name + area + bedrooms + 4 media + 2 seo
	assert.Len(t, result.Errors, 9)
	assert.False(t, result.OK())
}

/*
TestValidate_IsPure runs the same inputs twice and demands identical,
order-stable results.
*/
func TestValidate_IsPure(t *testing.T) {
	record := publish.Record{Tier: publish.TierPremium}
	media := publish.MediaCounts{publish.MediaRoleThumbnail: 1}

	first := publish.Validate(publish.EntityHouse, publish.TierPremium, record, media, nil)
	second := publish.Validate(publish.EntityHouse, publish.TierPremium, record, media, nil)

	assert.Equal(t, first, second)
}

/*
TestValidate_UnknownDomainsPanic asserts the caller-contract failure mode.
*/
func TestValidate_UnknownDomainsPanic(t *testing.T) {
	assert.Panics(t, func() {
		publish.Validate(publish.EntityType("plot"), publish.TierStandard, publish.Record{}, nil, nil)
	})
	assert.Panics(t, func() {
		publish.Validate(publish.EntityHouse, publish.Tier("gold"), publish.Record{}, nil, nil)
	})
}
