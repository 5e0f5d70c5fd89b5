// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package house

import (
	"context"
	"log/slog"

	"github.com/prefabrica/prefabrica/internal/platform/apperr"
	"github.com/prefabrica/prefabrica/internal/platform/validate"
	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/pkg/slug"
	"github.com/prefabrica/prefabrica/pkg/uuid"
)

// Field identifiers used in validation errors.
const (
	FieldName       = "name"
	FieldProviderID = "provider_id"
	FieldTier       = "tier"
)

// MediaCounter supplies per-role media counts for the publish flow.
type MediaCounter interface {
	Counts(context context.Context, ownerType publish.EntityType, ownerID string) (publish.MediaCounts, error)
}

// # Service Layer

// Service orchestrates house administration and publishing.
type Service struct {
	repo   Repository
	media  MediaCounter
	logger *slog.Logger
}

// NewService constructs a house [Service].
func NewService(repo Repository, media MediaCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, media: media, logger: logger}
}

/*
ListHouses retrieves a paginated and filtered house collection.
*/
func (service *Service) ListHouses(ctx context.Context, filter Filter, limit, offset int) ([]*House, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

/*
GetHouse fetches a single house by UUID or SEO slug.
*/
func (service *Service) GetHouse(ctx context.Context, identifier string) (*House, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(ctx, identifier)
	}
	return service.repo.FindBySlug(ctx, identifier)
}

/*
CreateHouse validates and persists a new house in draft state.
*/
func (service *Service) CreateHouse(ctx context.Context, house *House) error {
	if err := service.validateHouse(house); err != nil {
		return err
	}

	if house.ID == "" {
		house.ID = uuid.New()
	}
	if house.Slug == "" {
		house.Slug = slug.From(house.Name)
	}
	if house.Tier == "" {
		house.Tier = publish.TierStandard
	}
	house.Status = StatusDraft

	if err := service.repo.Create(ctx, house); err != nil {
		return err
	}

	service.logger.Info("house_created",
		slog.String("house_id", house.ID),
		slog.String("name", house.Name),
	)
	return nil
}

/*
UpdateHouse applies modifications to an existing house.
*/
func (service *Service) UpdateHouse(ctx context.Context, house *House) error {
	if err := service.validateHouse(house); err != nil {
		return err
	}

	if house.Slug == "" {
		house.Slug = slug.From(house.Name)
	}

	if err := service.repo.Update(ctx, house); err != nil {
		return err
	}

	service.logger.Info("house_updated", slog.String("house_id", house.ID))
	return nil
}

/*
ArchiveHouse delists a house from the public marketplace.
*/
func (service *Service) ArchiveHouse(ctx context.Context, id string) error {
	if err := service.repo.Archive(ctx, id); err != nil {
		return err
	}
	service.logger.Info("house_archived", slog.String("house_id", id))
	return nil
}

// # Publishing

/*
ValidatePublish runs the publish-readiness engine against fresh state
without touching the house's status.
*/
func (service *Service) ValidatePublish(ctx context.Context, id string) (publish.Result, error) {
	_, result, err := service.validateSnapshot(ctx, id)
	return result, err
}

/*
Publish validates a house against fresh state and flips it to active.

Description: Same discipline as the provider flow: all-or-nothing, with an
updatedat compare-and-swap guarding the stale-read race between validation
and the status write.
*/
func (service *Service) Publish(ctx context.Context, id string) (publish.Result, error) {
	house, result, err := service.validateSnapshot(ctx, id)
	if err != nil {
		return publish.Result{}, err
	}
	if !result.OK() {
		return result, nil
	}

	flipped, err := service.repo.Activate(ctx, id, house.UpdatedAt)
	if err != nil {
		return publish.Result{}, err
	}
	if !flipped {
		return publish.Result{}, apperr.Conflict("House changed during publish; validate again")
	}

	service.logger.Info("house_published", slog.String("house_id", id))
	return result, nil
}

// validateSnapshot aggregates fresh house and media state and runs the
// publish engine over it.
func (service *Service) validateSnapshot(ctx context.Context, id string) (*House, publish.Result, error) {
	house, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, publish.Result{}, err
	}

	counts, err := service.media.Counts(ctx, publish.EntityHouse, id)
	if err != nil {
		return nil, publish.Result{}, err
	}

	record := publishRecord(house)
	tier := publish.TierFor(publish.EntityHouse, record, nil)

	result := publish.Validate(publish.EntityHouse, tier, record, counts, nil)
	return house, result, nil
}

// validateHouse runs the request-shape checks shared by create and update.
func (service *Service) validateHouse(house *House) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, house.Name).MaxLen(FieldName, house.Name, 255)
	validator.Required(FieldProviderID, house.ProviderID)

	if house.Tier != "" {
		validator.OneOf(FieldTier, string(house.Tier),
			string(publish.TierStandard),
			string(publish.TierDestacado),
			string(publish.TierPremium),
		)
	}

	return validator.Err()
}

// isUUID reports whether the identifier looks like a UUID rather than a slug.
func isUUID(identifier string) bool {
	if len(identifier) != 36 {
		return false
	}
	return identifier[8] == '-' && identifier[13] == '-' && identifier[18] == '-' && identifier[23] == '-'
}
