// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package serviceproduct_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prefabrica/prefabrica/internal/catalog/serviceproduct"
	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/platform/apperr"
	"github.com/prefabrica/prefabrica/internal/publish"
)

// fakeRepository is an in-memory [serviceproduct.Repository].
type fakeRepository struct {
	services map[string]*serviceproduct.ServiceProduct
	deltas   map[string][]coverage.Delta

	// activateFlipped is what ActivateWithCoverage reports; defaults to true.
	activateDenied  bool
	activatedWith   []coverage.Region
	materializedSet []coverage.Region
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		services: map[string]*serviceproduct.ServiceProduct{},
		deltas:   map[string][]coverage.Delta{},
	}
}

func (f *fakeRepository) List(_ context.Context, _ serviceproduct.Filter, _, _ int) ([]*serviceproduct.ServiceProduct, int, error) {
	out := make([]*serviceproduct.ServiceProduct, 0, len(f.services))
	for _, sp := range f.services {
		out = append(out, sp)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*serviceproduct.ServiceProduct, error) {
	sp, ok := f.services[id]
	if !ok {
		return nil, apperr.NotFound("Service")
	}
	clone := *sp
	return &clone, nil
}

func (f *fakeRepository) FindBySlug(_ context.Context, slug string) (*serviceproduct.ServiceProduct, error) {
	for _, sp := range f.services {
		if sp.Slug == slug {
			clone := *sp
			return &clone, nil
		}
	}
	return nil, apperr.NotFound("Service")
}

func (f *fakeRepository) Create(_ context.Context, sp *serviceproduct.ServiceProduct) error {
	f.services[sp.ID] = sp
	return nil
}

func (f *fakeRepository) Update(_ context.Context, sp *serviceproduct.ServiceProduct) error {
	if _, ok := f.services[sp.ID]; !ok {
		return apperr.NotFound("Service")
	}
	f.services[sp.ID] = sp
	return nil
}

func (f *fakeRepository) ActivateWithCoverage(_ context.Context, id string, effective []coverage.Region, _ time.Time) (bool, error) {
	if f.activateDenied {
		return false, nil
	}
	sp, ok := f.services[id]
	if !ok {
		return false, nil
	}
	sp.Status = serviceproduct.StatusActive
	sp.EffectiveCoverage = effective
	f.activatedWith = effective
	return true, nil
}

func (f *fakeRepository) SetEffectiveCoverage(_ context.Context, id string, effective []coverage.Region) error {
	if sp, ok := f.services[id]; ok {
		sp.EffectiveCoverage = effective
	}
	f.materializedSet = effective
	return nil
}

func (f *fakeRepository) Archive(_ context.Context, id string) error {
	sp, ok := f.services[id]
	if !ok {
		return apperr.NotFound("Service")
	}
	sp.Status = serviceproduct.StatusArchived
	return nil
}

func (f *fakeRepository) ListDeltas(_ context.Context, serviceID string) ([]coverage.Delta, error) {
	return f.deltas[serviceID], nil
}

func (f *fakeRepository) ReplaceDeltas(_ context.Context, serviceID string, deltas []coverage.Delta) error {
	f.deltas[serviceID] = deltas
	return nil
}

// fakeProvider serves a fixed base coverage for every provider.
type fakeProvider struct {
	base []coverage.Region
}

func (f *fakeProvider) BaseCoverage(_ context.Context, _ string) ([]coverage.Region, error) {
	return f.base, nil
}

// fakeMedia serves fixed per-role counts for every owner.
type fakeMedia struct {
	counts publish.MediaCounts
}

func (f *fakeMedia) Counts(_ context.Context, _ publish.EntityType, _ string) (publish.MediaCounts, error) {
	return f.counts, nil
}

// newService wires a service over the given fakes.
func newService(repo *fakeRepository, base []coverage.Region, counts publish.MediaCounts) *serviceproduct.Service {
	return serviceproduct.NewService(repo, &fakeProvider{base: base}, &fakeMedia{counts: counts}, slog.Default())
}

// seed inserts a stored service directly into the fake.
func seed(repo *fakeRepository, sp *serviceproduct.ServiceProduct) {
	if sp.UpdatedAt.IsZero() {
		sp.UpdatedAt = time.Now()
	}
	repo.services[sp.ID] = sp
}

const serviceID = "5f8e7d6c-1a2b-4c3d-8e9f-0a1b2c3d4e5f"

/*
TestCreateService_Defaults checks the draft-state defaults applied on create.
*/
func TestCreateService_Defaults(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo, nil, nil)

	sp := &serviceproduct.ServiceProduct{
		Name:       "Transporte e Instalación",
		ProviderID: "provider-1",
	}
	require.NoError(t, service.CreateService(context.Background(), sp))

	assert.NotEmpty(t, sp.ID)
	assert.Equal(t, "transporte-e-instalacion", sp.Slug)
	assert.Equal(t, publish.TierStandard, sp.Tier)
	assert.Equal(t, coverage.ModeInherit, sp.CoverageMode)
	assert.Equal(t, serviceproduct.StatusDraft, sp.Status)
	assert.Nil(t, sp.EffectiveCoverage)
}

/*
TestCreateService_Validation rejects requests missing identity fields or
carrying unknown enum values.
*/
func TestCreateService_Validation(t *testing.T) {
	tests := []struct {
		name string
		sp   serviceproduct.ServiceProduct
	}{
		{"missing_name", serviceproduct.ServiceProduct{ProviderID: "provider-1"}},
		{"missing_provider", serviceproduct.ServiceProduct{Name: "Fletes"}},
		{"unknown_tier", serviceproduct.ServiceProduct{Name: "Fletes", ProviderID: "provider-1", Tier: "sponsored"}},
		{"unknown_mode", serviceproduct.ServiceProduct{Name: "Fletes", ProviderID: "provider-1", CoverageMode: "mixed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			service := newService(repo, nil, nil)

			err := service.CreateService(context.Background(), &tt.sp)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
			assert.Empty(t, repo.services)
		})
	}
}

/*
TestGetService_ByIDOrSlug routes UUID-shaped identifiers to the ID lookup
and everything else to the slug lookup.
*/
func TestGetService_ByIDOrSlug(t *testing.T) {
	repo := newFakeRepository()
	seed(repo, &serviceproduct.ServiceProduct{ID: serviceID, Slug: "fletes-rm", Name: "Fletes RM"})
	service := newService(repo, nil, nil)

	byID, err := service.GetService(context.Background(), serviceID)
	require.NoError(t, err)
	assert.Equal(t, "Fletes RM", byID.Name)

	bySlug, err := service.GetService(context.Background(), "fletes-rm")
	require.NoError(t, err)
	assert.Equal(t, serviceID, bySlug.ID)
}

/*
TestSetDeltas_RejectsUnknownInput refuses unknown region codes and ops
before touching storage.
*/
func TestSetDeltas_RejectsUnknownInput(t *testing.T) {
	repo := newFakeRepository()
	seed(repo, &serviceproduct.ServiceProduct{ID: serviceID, Name: "Fletes", ProviderID: "provider-1"})
	service := newService(repo, nil, nil)

	err := service.SetDeltas(context.Background(), serviceID, []coverage.Delta{
		{RegionCode: "ZZ", Op: coverage.OpInclude},
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	err = service.SetDeltas(context.Background(), serviceID, []coverage.Delta{
		{RegionCode: "RM", Op: "toggle"},
	})
	require.Error(t, err)
	assert.Empty(t, repo.deltas[serviceID])
}

/*
TestSetDeltas_DraftDoesNotMaterialize replaces deltas on a draft without
refreshing the stored effective set.
*/
func TestSetDeltas_DraftDoesNotMaterialize(t *testing.T) {
	repo := newFakeRepository()
	seed(repo, &serviceproduct.ServiceProduct{
		ID: serviceID, Name: "Fletes", ProviderID: "provider-1",
		CoverageMode: coverage.ModeInherit, Status: serviceproduct.StatusDraft,
	})
	service := newService(repo, []coverage.Region{"RM", "V"}, nil)

	deltas := []coverage.Delta{{RegionCode: "VIII", Op: coverage.OpInclude}}
	require.NoError(t, service.SetDeltas(context.Background(), serviceID, deltas))

	assert.Equal(t, deltas, repo.deltas[serviceID])
	assert.Nil(t, repo.materializedSet)
}

/*
TestSetDeltas_ActiveRefreshesCoverage re-resolves and stores the effective
set when the service is already live.
*/
func TestSetDeltas_ActiveRefreshesCoverage(t *testing.T) {
	repo := newFakeRepository()
	seed(repo, &serviceproduct.ServiceProduct{
		ID: serviceID, Name: "Fletes", ProviderID: "provider-1",
		CoverageMode: coverage.ModeInherit, Status: serviceproduct.StatusActive,
	})
	service := newService(repo, []coverage.Region{"RM", "V"}, nil)

	require.NoError(t, service.SetDeltas(context.Background(), serviceID, []coverage.Delta{
		{RegionCode: "V", Op: coverage.OpExclude},
		{RegionCode: "VIII", Op: coverage.OpInclude},
	}))

	assert.Equal(t, []coverage.Region{"RM", "VIII"}, repo.materializedSet)
}

/*
TestPreviewCoverage_OverrideIgnoresBase resolves from scratch in override
mode: the provider base never leaks in, excludes are no-ops.
*/
func TestPreviewCoverage_OverrideIgnoresBase(t *testing.T) {
	repo := newFakeRepository()
	seed(repo, &serviceproduct.ServiceProduct{
		ID: serviceID, Name: "Fletes", ProviderID: "provider-1",
		CoverageMode: coverage.ModeOverride,
	})
	repo.deltas[serviceID] = []coverage.Delta{
		{RegionCode: "IX", Op: coverage.OpInclude},
		{RegionCode: "RM", Op: coverage.OpExclude},
	}
	service := newService(repo, []coverage.Region{"RM", "V"}, nil)

	regions, err := service.PreviewCoverage(context.Background(), serviceID)
	require.NoError(t, err)
	assert.Equal(t, []coverage.Region{"IX"}, regions)
}

/*
TestValidatePublish_PremiumFailures lists all failures in one pass for a
premium service missing landing media and SEO fields.
*/
func TestValidatePublish_PremiumFailures(t *testing.T) {
	repo := newFakeRepository()
	seed(repo, &serviceproduct.ServiceProduct{
		ID: serviceID, Name: "Fletes", ProviderID: "provider-1",
		Tier: publish.TierPremium, CoverageMode: coverage.ModeInherit,
	})
	service := newService(repo, []coverage.Region{"RM"}, publish.MediaCounts{
		publish.MediaRoleThumbnail: 1,
	})

	result, err := service.ValidatePublish(context.Background(), serviceID)
	require.NoError(t, err)
	require.False(t, result.OK())

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{
		"landing_hero", "landing_secondary", "landing_third",
		"meta_title", "meta_description",
	}, fields)

	// Validation never changes status.
	assert.Equal(t, serviceproduct.Status(""), repo.services[serviceID].Status)
}

/*
TestPublish_Success flips a clean standard service to active with its
resolved coverage materialized in the same write.
*/
func TestPublish_Success(t *testing.T) {
	repo := newFakeRepository()
	seed(repo, &serviceproduct.ServiceProduct{
		ID: serviceID, Name: "Fletes", ProviderID: "provider-1",
		Tier: publish.TierStandard, CoverageMode: coverage.ModeInherit,
		Status: serviceproduct.StatusDraft,
	})
	repo.deltas[serviceID] = []coverage.Delta{{RegionCode: "RM", Op: coverage.OpExclude}}
	service := newService(repo, []coverage.Region{"RM", "V", "VIII"}, nil)

	result, err := service.Publish(context.Background(), serviceID)
	require.NoError(t, err)
	assert.True(t, result.OK())

	stored := repo.services[serviceID]
	assert.Equal(t, serviceproduct.StatusActive, stored.Status)
	assert.Equal(t, []coverage.Region{"V", "VIII"}, repo.activatedWith)
}

/*
TestPublish_FailedValidationKeepsDraft returns the failure report without
attempting the activation write.
*/
func TestPublish_FailedValidationKeepsDraft(t *testing.T) {
	repo := newFakeRepository()
	seed(repo, &serviceproduct.ServiceProduct{
		ID: serviceID, Name: "Fletes", ProviderID: "provider-1",
		Tier: publish.TierDestacado, CoverageMode: coverage.ModeInherit,
		Status: serviceproduct.StatusDraft,
	})
	service := newService(repo, []coverage.Region{"RM"}, nil) // no thumbnail

	result, err := service.Publish(context.Background(), serviceID)
	require.NoError(t, err)
	require.False(t, result.OK())

	assert.Equal(t, serviceproduct.StatusDraft, repo.services[serviceID].Status)
	assert.Nil(t, repo.activatedWith)
}

/*
TestPublish_ConcurrentEditConflict surfaces a conflict when the guarded
activation write loses the race against a concurrent edit.
*/
func TestPublish_ConcurrentEditConflict(t *testing.T) {
	repo := newFakeRepository()
	repo.activateDenied = true
	seed(repo, &serviceproduct.ServiceProduct{
		ID: serviceID, Name: "Fletes", ProviderID: "provider-1",
		Tier: publish.TierStandard, CoverageMode: coverage.ModeInherit,
		Status: serviceproduct.StatusDraft,
	})
	service := newService(repo, []coverage.Region{"RM"}, nil)

	_, err := service.Publish(context.Background(), serviceID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	assert.Equal(t, serviceproduct.StatusDraft, repo.services[serviceID].Status)
}
