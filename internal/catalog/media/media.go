// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

/*
Package media manages the media assets attached to catalogue entities.

Each asset row binds one uploaded file to an owner (provider, house, or
service) under a [publish.MediaRole]. The publish engine never sees asset
bodies; this package aggregates per-role counts for it.

Uniqueness limits per role (e.g. a single thumbnail) are enforced here at
attach time, not by the publish validator.
*/
package media

import (
	"time"

	"github.com/prefabrica/prefabrica/internal/publish"
)

// Asset is one media file attached to a catalogue entity.
type Asset struct {
	ID        string             `json:"id"`
	OwnerType publish.EntityType `json:"owner_type"`
	OwnerID   string             `json:"owner_id"`
	Role      publish.MediaRole  `json:"role"`

	// StorageKey locates the file in object storage; URL is the public CDN path.
	StorageKey string `json:"storage_key"`
	URL        string `json:"url"`

	// Position orders assets within a role (gallery ordering).
	Position int `json:"position"`

	CreatedAt time.Time `json:"created_at"`
}

// singleAssetRoles are roles that admit at most one asset per owner.
var singleAssetRoles = map[publish.MediaRole]bool{
	publish.MediaRoleThumbnail:        true,
	publish.MediaRoleLandingHero:      true,
	publish.MediaRoleLandingSecondary: false, // carousel, multiple allowed
	publish.MediaRoleLandingThird:     true,
	publish.MediaRoleCover:            true,
	publish.MediaRoleLogo:             true,
}

// IsSingleAssetRole reports whether the role admits at most one asset.
func IsSingleAssetRole(role publish.MediaRole) bool {
	return singleAssetRoles[role]
}
