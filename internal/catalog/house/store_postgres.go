// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package house

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prefabrica/prefabrica/internal/platform/database/schema"
	"github.com/prefabrica/prefabrica/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed house store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const houseColumns = `
	id, providerid, name, slug, description, aream2, bedrooms, bathrooms,
	priceclp, tier, metatitle, metadescription, status, createdat, updatedat
`

// scanHouse hydrates one row into a [House].
func scanHouse(row interface{ Scan(dest ...any) error }, extra ...any) (*House, error) {
	house := &House{}
	dest := []any{
		&house.ID, &house.ProviderID, &house.Name, &house.Slug, &house.Description,
		&house.AreaM2, &house.Bedrooms, &house.Bathrooms, &house.PriceCLP,
		&house.Tier, &house.MetaTitle, &house.MetaDescription,
		&house.Status, &house.CreatedAt, &house.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return house, nil
}

/*
List returns a filtered and paginated house collection.
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*House, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT ` + houseColumns + `, COUNT(*) OVER() AS total
		FROM ` + schema.CatalogHouse.Table + `
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

	if filter.MinArea > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" AND aream2 >= $%d", argID))
		args = append(args, filter.MinArea)
		argID++
	}

	if filter.Bedrooms != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND bedrooms = $%d", argID))
		args = append(args, *filter.Bedrooms)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_houses")
	}
	defer rows.Close()

	var houses []*House
	var total int
	for rows.Next() {
		house, err := scanHouse(rows, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_house")
		}
		houses = append(houses, house)
	}
	return houses, total, nil
}

// FindByID returns a single house row.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*House, error) {
	query := `SELECT ` + houseColumns + ` FROM ` + schema.CatalogHouse.Table + ` WHERE id = $1`

	house, err := scanHouse(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_house_by_id")
	}
	return house, nil
}

// FindBySlug returns a single house row by its SEO slug.
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*House, error) {
	query := `SELECT ` + houseColumns + ` FROM ` + schema.CatalogHouse.Table + ` WHERE slug = $1`

	house, err := scanHouse(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_house_by_slug")
	}
	return house, nil
}

// Create persists a new house row in draft state.
func (repository *PostgresRepository) Create(context context.Context, house *House) error {
	query := `
		INSERT INTO ` + schema.CatalogHouse.Table + ` (
			id, providerid, name, slug, description, aream2, bedrooms, bathrooms,
			priceclp, tier, metatitle, metadescription, status, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
	`
	_, err := repository.db.Exec(context, query,
		house.ID, house.ProviderID, house.Name, house.Slug, house.Description,
		house.AreaM2, house.Bedrooms, house.Bathrooms, house.PriceCLP,
		house.Tier, house.MetaTitle, house.MetaDescription, house.Status,
	)
	return dberr.Wrap(err, "create_house")
}

// Update overwrites the mutable fields of a house row.
func (repository *PostgresRepository) Update(context context.Context, house *House) error {
	query := `
		UPDATE ` + schema.CatalogHouse.Table + `
		SET name = $2, slug = $3, description = $4, aream2 = $5, bedrooms = $6,
		    bathrooms = $7, priceclp = $8, tier = $9, metatitle = $10,
		    metadescription = $11, updatedat = NOW()
		WHERE id = $1
	`
	tag, err := repository.db.Exec(context, query,
		house.ID, house.Name, house.Slug, house.Description, house.AreaM2,
		house.Bedrooms, house.Bathrooms, house.PriceCLP, house.Tier,
		house.MetaTitle, house.MetaDescription,
	)
	if err != nil {
		return dberr.Wrap(err, "update_house")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Activate flips a house to active, guarded by an updatedat compare-and-swap.
func (repository *PostgresRepository) Activate(context context.Context, id string, seenUpdatedAt time.Time) (bool, error) {
	query := `
		UPDATE ` + schema.CatalogHouse.Table + `
		SET status = 'active', updatedat = NOW()
		WHERE id = $1 AND updatedat = $2
	`
	tag, err := repository.db.Exec(context, query, id, seenUpdatedAt)
	if err != nil {
		return false, dberr.Wrap(err, "activate_house")
	}
	return tag.RowsAffected() > 0, nil
}

// Archive delists a house.
func (repository *PostgresRepository) Archive(context context.Context, id string) error {
	query := `UPDATE ` + schema.CatalogHouse.Table + ` SET status = 'archived', updatedat = NOW() WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "archive_house")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
