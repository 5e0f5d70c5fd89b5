// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package serviceproduct

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
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

// NewPostgresRepository constructs a PostgreSQL backed service store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const serviceColumns = `
	id, providerid, name, slug, description, priceclp, tier, metatitle,
	metadescription, coveragemode, effectivecoverage, status, createdat, updatedat
`

// scanService hydrates one row into a [ServiceProduct].
func scanService(row interface{ Scan(dest ...any) error }, extra ...any) (*ServiceProduct, error) {
	sp := &ServiceProduct{}
	var effective []string

	dest := []any{
		&sp.ID, &sp.ProviderID, &sp.Name, &sp.Slug, &sp.Description, &sp.PriceCLP,
		&sp.Tier, &sp.MetaTitle, &sp.MetaDescription, &sp.CoverageMode, &effective,
		&sp.Status, &sp.CreatedAt, &sp.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	sp.EffectiveCoverage = slice.Map(effective, func(code string) coverage.Region {
		return coverage.Region(code)
	})
	return sp, nil
}

// regionCodes converts a region slice to the text[] representation pgx expects.
func regionCodes(set []coverage.Region) []string {
	return slice.Map(set, func(r coverage.Region) string { return string(r) })
}

/*
List returns a filtered and paginated service collection.

Description: Region filtering runs against the materialized
effectivecoverage text[] — the whole point of resolving coverage at write
time instead of per query.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*ServiceProduct, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + serviceColumns + `, COUNT(*) OVER() AS total
		FROM ` + schema.CatalogServiceProduct.Table + `
		WHERE 1=1
	`)

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.ProviderID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND providerid = $%d", argID))
		args = append(args, filter.ProviderID)
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, filter.Status)
		argID++
	}

	if filter.Tier != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND tier = $%d", argID))
		args = append(args, filter.Tier)
		argID++
	}

	if filter.Region != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND $%d = ANY(effectivecoverage)", argID))
		args = append(args, string(filter.Region))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_services")
	}
	defer rows.Close()

	var services []*ServiceProduct
	var total int
	for rows.Next() {
		sp, err := scanService(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_service")
		}
		services = append(services, sp)
	}
	return services, total, nil
}

// FindByID returns a single service row.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*ServiceProduct, error) {
	query := `SELECT ` + serviceColumns + ` FROM ` + schema.CatalogServiceProduct.Table + ` WHERE id = $1`

	sp, err := scanService(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_service_by_id")
	}
	return sp, nil
}

// FindBySlug returns a single service row by its SEO slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*ServiceProduct, error) {
	query := `SELECT ` + serviceColumns + ` FROM ` + schema.CatalogServiceProduct.Table + ` WHERE slug = $1`

	sp, err := scanService(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_service_by_slug")
	}
	return sp, nil
}

// Create persists a new service row in draft state.
func (repository *PostgresRepository) Create(context context.Context, sp *ServiceProduct) error {
	query := `
		INSERT INTO ` + schema.CatalogServiceProduct.Table + ` (
			id, providerid, name, slug, description, priceclp, tier, metatitle,
			metadescription, coveragemode, effectivecoverage, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`
	_, err := repository.db.Exec(context, query,
		sp.ID, sp.ProviderID, sp.Name, sp.Slug, sp.Description, sp.PriceCLP,
		sp.Tier, sp.MetaTitle, sp.MetaDescription, sp.CoverageMode,
		regionCodes(sp.EffectiveCoverage), sp.Status,
	)
	return dberr.Wrap(err, "create_service")
}

// Update overwrites the mutable fields of a service row. The materialized
// coverage is not writable here; it only changes through resolution.
func (repository *PostgresRepository) Update(context context.Context, sp *ServiceProduct) error {
	query := `
		UPDATE ` + schema.CatalogServiceProduct.Table + `
		SET name = $2, slug = $3, description = $4, priceclp = $5, tier = $6,
		    metatitle = $7, metadescription = $8, coveragemode = $9, updatedat = NOW()
		WHERE id = $1
	`
	tag, err := repository.db.Exec(context, query,
		sp.ID, sp.Name, sp.Slug, sp.Description, sp.PriceCLP, sp.Tier,
		sp.MetaTitle, sp.MetaDescription, sp.CoverageMode,
	)
	if err != nil {
		return dberr.Wrap(err, "update_service")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
ActivateWithCoverage flips a service to active and stores its resolved
coverage in one guarded write.

Description: Coupling the two keeps a published service and its searchable
coverage consistent: either both land or neither does. The updatedat
compare-and-swap closes the validate-then-write race.
*/
func (repository *PostgresRepository) ActivateWithCoverage(context context.Context, id string, effective []coverage.Region, seenUpdatedAt time.Time) (bool, error) {
	query := `
		UPDATE ` + schema.CatalogServiceProduct.Table + `
		SET status = 'active', effectivecoverage = $3, updatedat = NOW()
		WHERE id = $1 AND updatedat = $2
	`
	tag, err := repository.db.Exec(context, query, id, seenUpdatedAt, regionCodes(effective))
	if err != nil {
		return false, dberr.Wrap(err, "activate_service")
	}
	return tag.RowsAffected() > 0, nil
}

// SetEffectiveCoverage refreshes the materialized coverage set.
func (repository *PostgresRepository) SetEffectiveCoverage(context context.Context, id string, effective []coverage.Region) error {
	query := `UPDATE ` + schema.CatalogServiceProduct.Table + ` SET effectivecoverage = $2, updatedat = NOW() WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id, regionCodes(effective))
	if err != nil {
		return dberr.Wrap(err, "set_service_coverage")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Archive delists a service.
func (repository *PostgresRepository) Archive(context context.Context, id string) error {
	query := `UPDATE ` + schema.CatalogServiceProduct.Table + ` SET status = 'archived', updatedat = NOW() WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "archive_service")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Coverage Deltas

// ListDeltas returns the service's coverage deltas in stored list order.
func (repository *PostgresRepository) ListDeltas(context context.Context, serviceID string) ([]coverage.Delta, error) {
	query := `
		SELECT regioncode, op
		FROM ` + schema.CatalogCoverageDelta.Table + `
		WHERE serviceid = $1
		ORDER BY position ASC
	`
	rows, err := repository.db.Query(context, query, serviceID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_coverage_deltas")
	}
	defer rows.Close()

	deltas := make([]coverage.Delta, 0)
	for rows.Next() {
		delta := coverage.Delta{}
		if err := rows.Scan(&delta.RegionCode, &delta.Op); err != nil {
			return nil, dberr.Wrap(err, "scan_coverage_delta")
		}
		deltas = append(deltas, delta)
	}
	return deltas, nil
}

// ReplaceDeltas overwrites the delta list wholesale inside a transaction,
// preserving list order via the position column.
func (repository *PostgresRepository) ReplaceDeltas(context context.Context, serviceID string, deltas []coverage.Delta) error {
	transaction, err := repository.db.BeginTx(context, pgx.TxOptions{})
	if err != nil {
		return dberr.Wrap(err, "begin_replace_deltas")
	}
	defer func() { _ = transaction.Rollback(context) }()

	if _, err := transaction.Exec(context,
		`DELETE FROM ` + schema.CatalogCoverageDelta.Table + ` WHERE serviceid = $1`, serviceID); err != nil {
		return dberr.Wrap(err, "clear_coverage_deltas")
	}

	for position, delta := range deltas {
		_, err := transaction.Exec(context, `
			INSERT INTO ` + schema.CatalogCoverageDelta.Table + ` (serviceid, regioncode, op, position)
			VALUES ($1, $2, $3, $4)
		`, serviceID, delta.RegionCode, delta.Op, position)
		if err != nil {
			return dberr.Wrap(err, "insert_coverage_delta")
		}
	}

	return dberr.Wrap(transaction.Commit(context), "commit_replace_deltas")
}
