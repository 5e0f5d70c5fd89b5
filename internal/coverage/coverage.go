// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package coverage

import "fmt"

// # Coverage Modes

// Mode selects how a service's coverage relates to its provider's coverage.
//
// The mode is chosen per service and may be switched by an editor before
// publish. Switching does NOT clear previously entered deltas; stale deltas
// from the old mode are re-applied under the new one. Known quirk, kept for
// compatibility with existing data.
type Mode string

const (
	// ModeInherit starts from the provider's own coverage and adjusts it.
	ModeInherit Mode = "inherit"

	// ModeOverride ignores the provider's coverage entirely.
	ModeOverride Mode = "override"
)

// IsValid reports whether m is a recognised [Mode] value.
func (m Mode) IsValid() bool {
	return m == ModeInherit || m == ModeOverride
}

// # Deltas

// Op is the direction of a coverage adjustment.
type Op string

const (
	// OpInclude adds a region to the effective set.
	OpInclude Op = "include"

	// OpExclude removes a region from the effective set.
	OpExclude Op = "exclude"
)

// Delta is one signed adjustment to a region set.
//
// A delta list should carry at most one delta per region code, but the
// editor UI has allowed duplicates in the past. Resolution applies deltas
// in list order, so the last delta for a region wins.
type Delta struct {
	RegionCode Region `json:"region_code"`
	Op         Op     `json:"op"`
}

// # Resolution

// Effective computes a service's resolved coverage set.
//
// In inherit mode the base set is copied and deltas apply in order: include
// adds (no-op when present), exclude removes (no-op when absent). In
// override mode the base set is ignored, resolution starts empty, and only
// include deltas apply; excludes are meaningless there and silently skipped.
//
// The result carries no duplicates and no meaningful order. Resolution is
// idempotent: re-running with the same inputs yields the same set.
//
// An unknown mode is a caller bug and panics.
func Effective(mode Mode, base []Region, deltas []Delta) []Region {
	if !mode.IsValid() {
		panic(fmt.Sprintf("coverage: unknown mode %q", mode))
	}

	effective := make(map[Region]bool, len(base))

	if mode == ModeInherit {
		for _, r := range base {
			effective[r] = true
		}
	}

	for _, d := range deltas {
		switch d.Op {
		case OpInclude:
			effective[d.RegionCode] = true
		case OpExclude:
			if mode == ModeOverride {
				continue
			}
			delete(effective, d.RegionCode)
		}
	}

	out := make([]Region, 0, len(effective))
	for r := range effective {
		out = append(out, r)
	}
	return SortCanonical(out)
}
