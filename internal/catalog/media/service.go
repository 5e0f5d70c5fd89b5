// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package media

import (
	"context"
	"log/slog"

	"github.com/prefabrica/prefabrica/internal/platform/apperr"
	"github.com/prefabrica/prefabrica/internal/platform/validate"
	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/pkg/uuid"
)

// Field identifiers used in validation errors.
const (
	FieldOwnerType = "owner_type"
	FieldOwnerID   = "owner_id"
	FieldRole      = "role"
	FieldURL       = "url"
)

// # Service Layer

// Service orchestrates media asset administration.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a media [Service].
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
ListAssets returns every asset attached to one catalogue entity.
*/
func (service *Service) ListAssets(ctx context.Context, ownerType publish.EntityType, ownerID string) ([]Asset, error) {
	if !ownerType.IsValid() {
		return nil, validate.RequiredError(FieldOwnerType, "Unknown owner type")
	}
	return service.repo.ListByOwner(ctx, ownerType, ownerID)
}

/*
Counts aggregates one entity's assets into per-role counts for the publish
engine.
*/
func (service *Service) Counts(ctx context.Context, ownerType publish.EntityType, ownerID string) (publish.MediaCounts, error) {
	return service.repo.CountsByOwner(ctx, ownerType, ownerID)
}

/*
Attach validates and persists a new asset binding.

Description: Enforces the per-role uniqueness limits (one thumbnail, one
hero, ...) that the publish validator deliberately does not own.
*/
func (service *Service) Attach(ctx context.Context, asset *Asset) error {
	validator := &validate.Validator{}
	validator.Custom(FieldOwnerType, !asset.OwnerType.IsValid(), "Unknown owner type")
	validator.Required(FieldOwnerID, asset.OwnerID)
	validator.Custom(FieldRole, !asset.Role.IsValid(), "Unknown media role")
	validator.Required(FieldURL, asset.URL)
	if err := validator.Err(); err != nil {
		return err
	}

	if IsSingleAssetRole(asset.Role) {
		count, err := service.repo.CountByRole(ctx, asset.OwnerType, asset.OwnerID, asset.Role)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperr.Conflict("An asset already exists for this role")
		}
	}

	if asset.ID == "" {
		asset.ID = uuid.New()
	}

	if err := service.repo.Create(ctx, asset); err != nil {
		return err
	}

	service.logger.Info("media_attached",
		slog.String("asset_id", asset.ID),
		slog.String("owner_type", string(asset.OwnerType)),
		slog.String("owner_id", asset.OwnerID),
		slog.String("role", string(asset.Role)),
	)
	return nil
}

/*
Detach removes an asset binding.
*/
func (service *Service) Detach(ctx context.Context, id string) error {
	if err := service.repo.Delete(ctx, id); err != nil {
		return err
	}
	service.logger.Info("media_detached", slog.String("asset_id", id))
	return nil
}
