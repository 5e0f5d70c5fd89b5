// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prefabrica/prefabrica/internal/coverage"
	"github.com/prefabrica/prefabrica/internal/platform/database/schema"
	"github.com/prefabrica/prefabrica/internal/platform/dberr"
	"github.com/prefabrica/prefabrica/pkg/slice"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed provider store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const providerColumns = `
	id, name, slug, rut, email, phone, website, communecode, description,
	ismanufacturer, isserviceprovider, basecoverage, status, createdat, updatedat
`

// scanProvider hydrates one row into a [Provider].
func scanProvider(row interface{ Scan(dest ...any) error }, extra ...any) (*Provider, error) {
	provider := &Provider{}
	var baseCoverage []string

	dest := []any{
		&provider.ID, &provider.Name, &provider.Slug, &provider.RUT, &provider.Email,
		&provider.Phone, &provider.Website, &provider.CommuneCode, &provider.Description,
		&provider.IsManufacturer, &provider.IsServiceProvider, &baseCoverage,
		&provider.Status, &provider.CreatedAt, &provider.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	provider.BaseCoverage = slice.Map(baseCoverage, func(code string) coverage.Region {
		return coverage.Region(code)
	})
	return provider, nil
}

// regionCodes converts a region slice to the text[] representation pgx expects.
func regionCodes(set []coverage.Region) []string {
	return slice.Map(set, func(r coverage.Region) string { return string(r) })
}

/*
List returns a filtered and paginated provider collection.

Description: Uses ILIKE for name search, the basecoverage text[] for region
filtering, and COUNT(*) OVER() for pagination metadata in a single query.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Provider, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + providerColumns + `, COUNT(*) OVER() AS total
		FROM ` + schema.CatalogProvider.Table + `
		WHERE 1=1
	`)

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	if filter.IsManufacturer != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND ismanufacturer = $%d", argID))
		args = append(args, *filter.IsManufacturer)
		argID++
	}

	if filter.Region != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(basecoverage)", argID))
		args = append(args, string(filter.Region))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_providers")
	}
	defer rows.Close()

	var providers []*Provider
	var total int
	for rows.Next() {
		provider, err := scanProvider(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_provider")
		}
		providers = append(providers, provider)
	}
	return providers, total, nil
}

// FindByID returns a single provider row.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM ` + schema.CatalogProvider.Table + ` WHERE id = $1`

	provider, err := scanProvider(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_provider_by_id")
	}
	return provider, nil
}

// FindBySlug returns a single provider row by its SEO slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Provider, error) {
	query := `SELECT ` + providerColumns + ` FROM ` + schema.CatalogProvider.Table + ` WHERE slug = $1`

	provider, err := scanProvider(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_provider_by_slug")
	}
	return provider, nil
}

// Create persists a new provider row in draft state.
func (repository *PostgresRepository) Create(context context.Context, provider *Provider) error {
	query := `
		INSERT INTO ` + schema.CatalogProvider.Table + ` (
			id, name, slug, rut, email, phone, website, communecode, description,
			ismanufacturer, isserviceprovider, basecoverage, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := repository.db.Exec(context, query,
		provider.ID, provider.Name, provider.Slug, provider.RUT, provider.Email,
		provider.Phone, provider.Website, provider.CommuneCode, provider.Description,
		provider.IsManufacturer, provider.IsServiceProvider, regionCodes(provider.BaseCoverage),
		provider.Status,
	)
	return dberr.Wrap(err, "create_provider")
}

// Update overwrites the mutable fields of a provider row.
func (repository *PostgresRepository) Update(context context.Context, provider *Provider) error {
	query := `
		UPDATE ` + schema.CatalogProvider.Table + `
		SET name = $2, slug = $3, rut = $4, email = $5, phone = $6, website = $7,
		    communecode = $8, description = $9, ismanufacturer = $10,
		    isserviceprovider = $11, basecoverage = $12, updatedat = NOW()
		WHERE id = $1
	`
	tag, err := repository.db.Exec(context, query,
		provider.ID, provider.Name, provider.Slug, provider.RUT, provider.Email,
		provider.Phone, provider.Website, provider.CommuneCode, provider.Description,
		provider.IsManufacturer, provider.IsServiceProvider, regionCodes(provider.BaseCoverage),
	)
	if err != nil {
		return dberr.Wrap(err, "update_provider")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Activate flips a provider to active, guarded by an updatedat compare-and-swap.

Description: The publish flow validates against a snapshot; a concurrent
edit between validation and this write would otherwise let a no-longer-valid
provider go live. The WHERE clause on updatedat closes that window: zero
rows affected means the snapshot is stale.
*/
func (repository *PostgresRepository) Activate(context context.Context, id string, seenUpdatedAt time.Time) (bool, error) {
	query := `
		UPDATE ` + schema.CatalogProvider.Table + `
		SET status = 'active', updatedat = NOW()
		WHERE id = $1 AND updatedat = $2
	`
	tag, err := repository.db.Exec(context, query, id, seenUpdatedAt)
	if err != nil {
		return false, dberr.Wrap(err, "activate_provider")
	}
	return tag.RowsAffected() > 0, nil
}

// Archive delists a provider.
func (repository *PostgresRepository) Archive(context context.Context, id string) error {
	query := `UPDATE ` + schema.CatalogProvider.Table + ` SET status = 'archived', updatedat = NOW() WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "archive_provider")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// BaseCoverage returns just the provider's own region set.
func (repository *PostgresRepository) BaseCoverage(context context.Context, id string) ([]coverage.Region, error) {
	var codes []string
	err := repository.db.QueryRow(context,
		`SELECT basecoverage FROM ` + schema.CatalogProvider.Table + ` WHERE id = $1`, id).Scan(&codes)
	if err != nil {
		return nil, dberr.Wrap(err, "get_provider_base_coverage")
	}

	regions := slice.Map(codes, func(code string) coverage.Region { return coverage.Region(code) })
	return regions, nil
}

// # Landing Sub-Record

// FindLanding returns the provider's landing sub-record, or ErrNotFound
// when the provider has never been promoted.
func (repository *PostgresRepository) FindLanding(context context.Context, providerID string) (*Landing, error) {
	query := `
		SELECT providerid, tier, headline, editorial, metatitle, metadescription, updatedat
		FROM ` + schema.CatalogProviderLanding.Table + `
		WHERE providerid = $1
	`
	landing := &Landing{}
	err := repository.db.QueryRow(context, query, providerID).Scan(
		&landing.ProviderID, &landing.Tier, &landing.Headline, &landing.Editorial,
		&landing.MetaTitle, &landing.MetaDescription, &landing.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_provider_landing")
	}
	return landing, nil
}

// UpsertLanding creates or replaces the provider's landing sub-record.
func (repository *PostgresRepository) UpsertLanding(context context.Context, landing *Landing) error {
	query := `
		INSERT INTO ` + schema.CatalogProviderLanding.Table + ` (providerid, tier, headline, editorial, metatitle, metadescription, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (providerid) DO UPDATE
		SET tier = EXCLUDED.tier, headline = EXCLUDED.headline,
		    editorial = EXCLUDED.editorial, metatitle = EXCLUDED.metatitle,
		    metadescription = EXCLUDED.metadescription, updatedat = NOW()
	`
	_, err := repository.db.Exec(context, query,
		landing.ProviderID, landing.Tier, landing.Headline, landing.Editorial,
		landing.MetaTitle, landing.MetaDescription,
	)
	return dberr.Wrap(err, "upsert_provider_landing")
}

// DeleteLanding demotes a provider back to implicit standard tier.
func (repository *PostgresRepository) DeleteLanding(context context.Context, providerID string) error {
	_, err := repository.db.Exec(context,
		`DELETE FROM ` + schema.CatalogProviderLanding.Table + ` WHERE providerid = $1`, providerID)
	return dberr.Wrap(err, "delete_provider_landing")
}
