// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package serviceproduct

import (
	"context"
	"log/slog"

	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/platform/apperr"
	"github.com/prefabrica/prefabrica/internal/platform/validate"
	"github.com/prefabrica/prefabrica/internal/publish"
	"github.com/prefabrica/prefabrica/pkg/slug"
	"github.com/prefabrica/prefabrica/pkg/uuid"
)

// Field identifiers used in validation errors.
const (
	FieldName         = "name"
	FieldProviderID   = "provider_id"
	FieldTier         = "tier"
	FieldCoverageMode = "coverage_mode"
	FieldDeltas       = "deltas"
)

// # Service Layer

// Service orchestrates marketplace-service administration, coverage
// resolution, and publishing.
type Service struct {
	repo     Repository
	provider ProviderCoverage
	media    MediaCounter
	logger   *slog.Logger
}

// NewService constructs a serviceproduct [Service].
func NewService(repo Repository, provider ProviderCoverage, media MediaCounter, logger *slog.Logger) *Service {
	return &Service{repo: repo, provider: provider, media: media, logger: logger}
}

/*
ListServices retrieves a paginated and filtered service collection.

Description: Region filters run against the materialized effective
coverage, so results reflect the last resolution, not live delta state.
*/
func (service *Service) ListServices(ctx context.Context, filter Filter, limit, offset int) ([]*ServiceProduct, int, error) {
	return service.repo.List(ctx, filter, limit, offset)
}

/*
GetService fetches a single service by UUID or SEO slug.
*/
func (service *Service) GetService(ctx context.Context, identifier string) (*ServiceProduct, error) {
	if isUUID(identifier) {
		return service.repo.FindByID(ctx, identifier)
	}
	return service.repo.FindBySlug(ctx, identifier)
}

/*
CreateService validates and persists a new service in draft state.
*/
func (service *Service) CreateService(ctx context.Context, sp *ServiceProduct) error {
	if err := service.validateService(sp); err != nil {
		return err
	}

	if sp.ID == "" {
		sp.ID = uuid.New()
	}
	if sp.Slug == "" {
		sp.Slug = slug.From(sp.Name)
	}
	if sp.Tier == "" {
		sp.Tier = publish.TierStandard
	}
	if sp.CoverageMode == "" {
		sp.CoverageMode = coverage.ModeInherit
	}
	sp.Status = StatusDraft
	sp.EffectiveCoverage = nil

	if err := service.repo.Create(ctx, sp); err != nil {
		return err
	}

	service.logger.Info("service_created",
		slog.String("service_id", sp.ID),
		slog.String("provider_id", sp.ProviderID),
	)
	return nil
}

/*
UpdateService applies modifications to an existing service.

Description: Changing the coverage mode deliberately leaves the stored
deltas untouched; they are re-interpreted under the new mode at the next
resolution. See the coverage package notes on this quirk.
*/
func (service *Service) UpdateService(ctx context.Context, sp *ServiceProduct) error {
	if err := service.validateService(sp); err != nil {
		return err
	}

	if sp.Slug == "" {
		sp.Slug = slug.From(sp.Name)
	}

	if err := service.repo.Update(ctx, sp); err != nil {
		return err
	}

	service.logger.Info("service_updated", slog.String("service_id", sp.ID))
	return nil
}

/*
ArchiveService delists a service from the public marketplace.
*/
func (service *Service) ArchiveService(ctx context.Context, id string) error {
	if err := service.repo.Archive(ctx, id); err != nil {
		return err
	}
	service.logger.Info("service_archived", slog.String("service_id", id))
	return nil
}

// # Coverage

/*
GetDeltas returns the service's stored coverage deltas in list order.
*/
func (service *Service) GetDeltas(ctx context.Context, serviceID string) ([]coverage.Delta, error) {
	return service.repo.ListDeltas(ctx, serviceID)
}

/*
SetDeltas replaces the coverage delta list and refreshes the materialized
coverage when the service is already live.

Description: Delta order is preserved as given; the resolver's
last-delta-wins rule makes order meaningful for duplicated region codes.
*/
func (service *Service) SetDeltas(ctx context.Context, serviceID string, deltas []coverage.Delta) error {
	validator := &validate.Validator{}
	for _, delta := range deltas {
		if !coverage.IsValid(delta.RegionCode) {
			validator.Custom(FieldDeltas, true, "Unknown region code: "+string(delta.RegionCode))
		}
		if delta.Op != coverage.OpInclude && delta.Op != coverage.OpExclude {
			validator.Custom(FieldDeltas, true, "Unknown delta op: "+string(delta.Op))
		}
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.ReplaceDeltas(ctx, serviceID, deltas); err != nil {
		return err
	}

	sp, err := service.repo.FindByID(ctx, serviceID)
	if err != nil {
		return err
	}

	// Keep the searchable coverage of a live service in step with edits;
	// draft services wait for publish.
	if sp.Status == StatusActive {
		effective, err := service.resolveCoverage(ctx, sp, deltas)
		if err != nil {
			return err
		}
		if err := service.repo.SetEffectiveCoverage(ctx, serviceID, effective); err != nil {
			return err
		}
	}

	service.logger.Info("service_deltas_replaced",
		slog.String("service_id", serviceID),
		slog.Int("delta_count", len(deltas)),
	)
	return nil
}

/*
PreviewCoverage resolves the service's effective coverage from current
state without persisting anything.
*/
func (service *Service) PreviewCoverage(ctx context.Context, serviceID string) ([]coverage.Region, error) {
	sp, err := service.repo.FindByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	deltas, err := service.repo.ListDeltas(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	return service.resolveCoverage(ctx, sp, deltas)
}

// resolveCoverage fetches the inherit-mode base set when needed and runs
// the coverage engine.
func (service *Service) resolveCoverage(ctx context.Context, sp *ServiceProduct, deltas []coverage.Delta) ([]coverage.Region, error) {
	var base []coverage.Region

	if sp.CoverageMode == coverage.ModeInherit {
		providerBase, err := service.provider.BaseCoverage(ctx, sp.ProviderID)
		if err != nil {
			return nil, err
		}
		base = providerBase
	}

	return coverage.Effective(sp.CoverageMode, base, deltas), nil
}

// # Publishing

/*
ValidatePublish runs the publish-readiness engine against fresh state
without touching the service's status.
*/
func (service *Service) ValidatePublish(ctx context.Context, id string) (publish.Result, error) {
	_, _, result, err := service.validateSnapshot(ctx, id)
	return result, err
}

/*
Publish validates a service, resolves its effective coverage, and flips it
to active with the materialized set in a single guarded write.
*/
func (service *Service) Publish(ctx context.Context, id string) (publish.Result, error) {
	sp, deltas, result, err := service.validateSnapshot(ctx, id)
	if err != nil {
		return publish.Result{}, err
	}
	if !result.OK() {
		return result, nil
	}

	effective, err := service.resolveCoverage(ctx, sp, deltas)
	if err != nil {
		return publish.Result{}, err
	}

	flipped, err := service.repo.ActivateWithCoverage(ctx, id, effective, sp.UpdatedAt)
	if err != nil {
		return publish.Result{}, err
	}
	if !flipped {
		return publish.Result{}, apperr.Conflict("Service changed during publish; validate again")
	}

	service.logger.Info("service_published",
		slog.String("service_id", id),
		slog.Int("coverage_regions", len(effective)),
	)
	return result, nil
}

// validateSnapshot aggregates fresh service, delta, and media state and
// runs the publish engine over it.
func (service *Service) validateSnapshot(ctx context.Context, id string) (*ServiceProduct, []coverage.Delta, publish.Result, error) {
	sp, err := service.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, publish.Result{}, err
	}

	deltas, err := service.repo.ListDeltas(ctx, id)
	if err != nil {
		return nil, nil, publish.Result{}, err
	}

	counts, err := service.media.Counts(ctx, publish.EntityService, id)
	if err != nil {
		return nil, nil, publish.Result{}, err
	}

	record := publishRecord(sp)
	tier := publish.TierFor(publish.EntityService, record, nil)

	result := publish.Validate(publish.EntityService, tier, record, counts, nil)
	return sp, deltas, result, nil
}

// validateService runs the request-shape checks shared by create and update.
func (service *Service) validateService(sp *ServiceProduct) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, sp.Name).MaxLen(FieldName, sp.Name, 255)
	validator.Required(FieldProviderID, sp.ProviderID)

	if sp.Tier != "" {
		validator.OneOf(FieldTier, string(sp.Tier),
			string(publish.TierStandard),
			string(publish.TierDestacado),
			string(publish.TierPremium),
		)
	}
	if sp.CoverageMode != "" {
		validator.OneOf(FieldCoverageMode, string(sp.CoverageMode),
			string(coverage.ModeInherit),
			string(coverage.ModeOverride),
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
