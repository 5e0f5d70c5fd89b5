// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

/*
Package coverage resolves the effective geographic coverage of a marketplace
service.

A service either inherits its provider's region set with per-region
include/exclude adjustments, or declares its own set from scratch. The
resolved set is materialized by the caller so region-filtered listing
queries can run against plain rows.

Core Responsibility:

  - Regions: Owns the canonical table of Chilean region codes.
  - Resolution: Applies ordered coverage deltas on top of a base set.
  - Purity: No storage access; the caller supplies base regions and deltas.
*/
package coverage

// Region is an opaque Chilean region code (e.g. "RM", "V").
type Region string

// regions is the canonical list of the 16 Chilean regions, in official
// north-to-south display order. Presentation layers sort by this order.
var regions = []Region{
	"XV",   // Arica y Parinacota
	"I",    // Tarapacá
	"II",   // Antofagasta
	"III",  // Atacama
	"IV",   // Coquimbo
	"V",    // Valparaíso
	"RM",   // Metropolitana de Santiago
	"VI",   // O'Higgins
	"VII",  // Maule
	"XVI",  // Ñuble
	"VIII", // Biobío
	"IX",   // La Araucanía
	"XIV",  // Los Ríos
	"X",    // Los Lagos
	"XI",   // Aysén
	"XII",  // Magallanes
}

// All returns the canonical region list in display order.
//
// The returned slice is a copy; callers may mutate it freely.
func All() []Region {
	out := make([]Region, len(regions))
	copy(out, regions)
	return out
}

// IsValid reports whether code is a recognised [Region].
func IsValid(code Region) bool {
	for _, r := range regions {
		if r == code {
			return true
		}
	}
	return false
}

// SortCanonical orders a region set by the canonical north-to-south list.
//
// Unknown codes sink to the end in their incoming order. This is a display
// concern only; resolution itself is order-insensitive.
func SortCanonical(set []Region) []Region {
	rank := make(map[Region]int, len(regions))
	for i, r := range regions {
		rank[r] = i
	}

	out := make([]Region, 0, len(set))
	for _, r := range regions {
		for _, s := range set {
			if s == r {
				out = append(out, s)
				break
			}
		}
	}
	for _, s := range set {
		if _, known := rank[s]; !known {
			out = append(out, s)
		}
	}
	return out
}
