// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package coverage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefabrica/prefabrica/internal/coverage"
)

/*
TestEffective_InheritMode covers the base-plus-deltas resolution path.
*/
func TestEffective_InheritMode(t *testing.T) {
	tests := []struct {
		name     string
		base     []coverage.Region
		deltas   []coverage.Delta
		expected []coverage.Region
	}{
		{
			name:     "no_deltas_copies_base",
			base:     []coverage.Region{"RM", "V"},
			deltas:   nil,
			expected: []coverage.Region{"V", "RM"},
		},
		{
			name: "exclude_and_include",
			base: []coverage.Region{"RM", "V"},
			deltas: []coverage.Delta{
				{RegionCode: "RM", Op: coverage.OpExclude},
				{RegionCode: "IX", Op: coverage.OpInclude},
			},
			expected: []coverage.Region{"V", "IX"},
		},
		{
			name:     "exclude_absent_region_is_noop",
			base:     []coverage.Region{"RM"},
			deltas:   []coverage.Delta{{RegionCode: "X", Op: coverage.OpExclude}},
			expected: []coverage.Region{"RM"},
		},
		{
			name:     "include_present_region_is_noop",
			base:     []coverage.Region{"RM"},
			deltas:   []coverage.Delta{{RegionCode: "RM", Op: coverage.OpInclude}},
			expected: []coverage.Region{"RM"},
		},
		{
			name:     "empty_base_with_include_yields_singleton",
			base:     nil,
			deltas:   []coverage.Delta{{RegionCode: "VIII", Op: coverage.OpInclude}},
			expected: []coverage.Region{"VIII"},
		},
		{
			name: "duplicate_deltas_last_wins",
			base: []coverage.Region{"RM"},
			deltas: []coverage.Delta{
				{RegionCode: "RM", Op: coverage.OpExclude},
				{RegionCode: "RM", Op: coverage.OpInclude},
			},
			expected: []coverage.Region{"RM"},
		},
		{
			name: "duplicate_deltas_last_wins_reversed",
			base: []coverage.Region{"RM"},
			deltas: []coverage.Delta{
				{RegionCode: "RM", Op: coverage.OpInclude},
				{RegionCode: "RM", Op: coverage.OpExclude},
			},
			expected: []coverage.Region{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coverage.Effective(coverage.ModeInherit, tt.base, tt.deltas)
			assert.ElementsMatch(t, tt.expected, got)
		})
	}
}

/*
TestEffective_OverrideMode covers from-scratch resolution: base is ignored
and exclude deltas are skipped.
*/
func TestEffective_OverrideMode(t *testing.T) {
	t.Run("base_is_ignored", func(t *testing.T) {
		got := coverage.Effective(coverage.ModeOverride,
			[]coverage.Region{"RM", "V", "VIII"},
			[]coverage.Delta{{RegionCode: "IX", Op: coverage.OpInclude}},
		)
		assert.Equal(t, []coverage.Region{"IX"}, got)
	})

	t.Run("excludes_only_yields_empty_set", func(t *testing.T) {
		// The mode-switch quirk: deltas entered under inherit mode survive a
		// switch to override. Excludes must be dropped, not resurrected.
		got := coverage.Effective(coverage.ModeOverride,
			[]coverage.Region{"RM"},
			[]coverage.Delta{
				{RegionCode: "RM", Op: coverage.OpExclude},
				{RegionCode: "V", Op: coverage.OpExclude},
			},
		)
		assert.Empty(t, got)
	})

	t.Run("zero_deltas_yields_empty_set", func(t *testing.T) {
		got := coverage.Effective(coverage.ModeOverride, []coverage.Region{"RM"}, nil)
		assert.Empty(t, got)
	})

	t.Run("output_is_subset_of_includes", func(t *testing.T) {
		deltas := []coverage.Delta{
			{RegionCode: "RM", Op: coverage.OpInclude},
			{RegionCode: "V", Op: coverage.OpExclude},
			{RegionCode: "IX", Op: coverage.OpInclude},
		}
		got := coverage.Effective(coverage.ModeOverride, []coverage.Region{"X", "XI"}, deltas)

		includes := map[coverage.Region]bool{"RM": true, "IX": true}
		for _, r := range got {
			assert.True(t, includes[r], "region %s is not an include delta", r)
		}
	})
}

/*
TestEffective_Idempotent re-runs resolution with identical inputs and
demands identical output.
*/
func TestEffective_Idempotent(t *testing.T) {
	base := []coverage.Region{"RM", "V", "VIII"}
	deltas := []coverage.Delta{
		{RegionCode: "V", Op: coverage.OpExclude},
		{RegionCode: "XII", Op: coverage.OpInclude},
	}

	first := coverage.Effective(coverage.ModeInherit, base, deltas)
	second := coverage.Effective(coverage.ModeInherit, base, deltas)

	assert.Equal(t, first, second)
}

/*
TestEffective_CanonicalOrder checks that output follows the north-to-south
display order regardless of delta order.
*/
func TestEffective_CanonicalOrder(t *testing.T) {
	deltas := []coverage.Delta{
		{RegionCode: "XII", Op: coverage.OpInclude},
		{RegionCode: "XV", Op: coverage.OpInclude},
		{RegionCode: "RM", Op: coverage.OpInclude},
	}

	got := coverage.Effective(coverage.ModeOverride, nil, deltas)
	assert.Equal(t, []coverage.Region{"XV", "RM", "XII"}, got)
}

/*
TestEffective_UnknownModePanics asserts the fail-fast caller contract.
*/
func TestEffective_UnknownModePanics(t *testing.T) {
	require.Panics(t, func() {
		coverage.Effective(coverage.Mode("mixed"), nil, nil)
	})
}

/*
TestRegionTable sanity-checks the canonical Chilean region list.
*/
func TestRegionTable(t *testing.T) {
	all := coverage.All()

	require.Len(t, all, 16)
	assert.True(t, coverage.IsValid("RM"))
	assert.True(t, coverage.IsValid("XVI"))
	assert.False(t, coverage.IsValid("ZZ"))

	// Returned slice is a defensive copy.
	all[0] = "ZZ"
	assert.Equal(t, coverage.Region("XV"), coverage.All()[0])
}
