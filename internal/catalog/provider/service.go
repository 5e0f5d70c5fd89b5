// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package provider

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/platform/apperr"
	"github.com/prefabrica/prefabrica/internal/platform/dberr"
	"github.com/prefabrica/prefabrica/internal/platform/validate"
	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/pkg/slug"
	"github.com/prefabrica/prefabrica/pkg/uuid"
)

// Field identifiers used in validation errors.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldRUT          = "rut"
	FieldCommuneCode  = "commune_code"
	FieldBaseCoverage = "base_coverage"
	FieldTier         = "tier"
)

// # Service Layer

// Service orchestrates provider administration and publishing.
type Service struct {
	repo   Repository
	media  MediaCounter
	logger *slog.Logger
}

// NewService constructs a provider [Service].
func NewService(repo Repository, media MediaCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, media: media, logger: logger}
}

// # Lookups

/*
ListProviders retrieves a paginated and filtered provider collection.
*/
func (service *Service) ListProviders(ctx context.Context, filter Filter, limit, offset int) ([]*Provider, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

/*
GetProvider fetches a single provider by UUID or SEO slug.
*/
func (service *Service) GetProvider(ctx context.Context, identifier string) (*Provider, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(ctx, identifier)
	}
	return service.repo.FindBySlug(ctx, identifier)
}

// # Management

/*
CreateProvider validates and persists a new provider in draft state.

Description: Generates a UUIDv7 identity and an SEO slug, and rejects
region codes outside the canonical Chilean table up front so bad coverage
never reaches the resolver.
*/
func (service *Service) CreateProvider(ctx context.Context, provider *Provider) error {
	if err := service.validateProvider(provider); err != nil {
		return err
	}

	if provider.ID == "" {
		provider.ID = uuid.New()
	}
	if provider.Slug == "" {
		provider.Slug = slug.From(provider.Name)
	}
	provider.Status = StatusDraft

	if err := service.repo.Create(ctx, provider); err != nil {
		return err
	}

	service.logger.Info("provider_created",
		slog.String("provider_id", provider.ID),
		slog.String("name", provider.Name),
	)
	return nil
}

/*
UpdateProvider applies modifications to an existing provider.

Description: Status is not writable here; publishing and archiving have
their own flows so an edit can never skip validation.
*/
func (service *Service) UpdateProvider(ctx context.Context, provider *Provider) error {
	if err := service.validateProvider(provider); err != nil {
		return err
	}

	if provider.Slug == "" {
		provider.Slug = slug.From(provider.Name)
	}

	if err := service.repo.Update(ctx, provider); err != nil {
		return err
	}

	service.logger.Info("provider_updated", slog.String("provider_id", provider.ID))
	return nil
}

/*
ArchiveProvider delists a provider from the public marketplace.
*/
func (service *Service) ArchiveProvider(ctx context.Context, id string) error {
	if err := service.repo.Archive(ctx, id); err != nil {
		return err
	}
	service.logger.Info("provider_archived", slog.String("provider_id", id))
	return nil
}

// # Landing Management

/*
GetLanding returns the provider's landing sub-record, or nil when the
provider has never been promoted.
*/
func (service *Service) GetLanding(ctx context.Context, providerID string) (*Landing, error) {
	landing, err := service.repo.FindLanding(ctx, providerID)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return landing, nil
}

/*
SetLanding creates or replaces the landing sub-record, which also sets the
provider's effective tier.
*/
func (service *Service) SetLanding(ctx context.Context, landing *Landing) error {
	validator := &validate.Validator{}
	validator.Required("provider_id", landing.ProviderID)
	validator.OneOf(FieldTier, string(landing.Tier),
		string(publish.TierStandard),
		string(publish.TierDestacado),
		string(publish.TierPremium),
	)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpsertLanding(ctx, landing); err != nil {
		return err
	}

	service.logger.Info("provider_landing_set",
		slog.String("provider_id", landing.ProviderID),
		slog.String("tier", string(landing.Tier)),
	)
	return nil
}

// # Publishing

/*
ValidatePublish runs the publish-readiness engine against fresh state
without touching the provider's status.

Description: Backs the "validate before publish" admin endpoint. The same
aggregation runs again inside [Service.Publish]; callers must not reuse an
earlier result across edits.
*/
func (service *Service) ValidatePublish(ctx context.Context, id string) (publish.Result, error) {
	_, _, result, err := service.validateSnapshot(ctx, id)
	return result, err
}

/*
Publish validates a provider against fresh state and flips it to active.

Description: All-or-nothing. A non-empty error list blocks the flip and is
returned as data for the admin UI. The activation write carries an
updatedat compare-and-swap; when a concurrent edit wins the race, the
caller gets a conflict and must re-run validation.
*/
func (service *Service) Publish(ctx context.Context, id string) (publish.Result, error) {
	provider, _, result, err := service.validateSnapshot(ctx, id)
	if err != nil {
		return publish.Result{}, err
	}
	if !result.OK() {
		return result, nil
	}

	flipped, err := service.repo.Activate(ctx, id, provider.UpdatedAt)
	if err != nil {
		return publish.Result{}, err
	}
	if !flipped {
		return publish.Result{}, apperr.Conflict("Provider changed during publish; validate again")
	}

	service.logger.Info("provider_published", slog.String("provider_id", id))
	return result, nil
}

// validateSnapshot aggregates fresh provider, landing, and media state and
// runs the publish engine over it.
func (service *Service) validateSnapshot(ctx context.Context, id string) (*Provider, *Landing, publish.Result, error) {
	provider, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, publish.Result{}, err
	}

	landing, err := service.GetLanding(ctx, id)
	if err != nil {
		return nil, nil, publish.Result{}, err
	}

	counts, err := service.media.Counts(ctx, publish.EntityProvider, id)
	if err != nil {
		return nil, nil, publish.Result{}, err
	}

	record := publishRecord(provider)
	engineLanding := publishLanding(landing)
	tier := publish.TierFor(publish.EntityProvider, record, engineLanding)

	result := publish.Validate(publish.EntityProvider, tier, record, counts, engineLanding)
	return provider, landing, result, nil
}

// validateProvider runs the request-shape checks shared by create and update.
func (service *Service) validateProvider(provider *Provider) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, provider.Name).MaxLen(FieldName, provider.Name, 255)
	validator.Required(FieldEmail, provider.Email).Email(FieldEmail, provider.Email)
	validator.Required(FieldRUT, provider.RUT)
	validator.Required(FieldCommuneCode, provider.CommuneCode)

	for _, region := range provider.BaseCoverage {
		if !coverage.IsValid(region) {
			validator.Custom(FieldBaseCoverage, true, "Unknown region code: "+string(region))
		}
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
