// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package media

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prefabrica/prefabrica/internal/platform/database/schema"
	"github.com/prefabrica/prefabrica/internal/platform/dberr"
	"github.com/prefabrica/prefabrica/internal/publish"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed media store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByOwner returns every asset attached to one entity, role-grouped in
// display order.
func (repository *PostgresRepository) ListByOwner(context context.Context, ownerType publish.EntityType, ownerID string) ([]Asset, error) {
	query := `
		SELECT id, ownertype, ownerid, role, storagekey, url, position, createdat
		FROM ` + schema.CatalogMediaAsset.Table + `
		WHERE ownertype = $1 AND ownerid = $2
		ORDER BY role ASC, position ASC
	`
	rows, err := repository.db.Query(context, query, ownerType, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_media_by_owner")
	}
	defer rows.Close()

	assets := make([]Asset, 0)
	for rows.Next() {
		asset := Asset{}
		err := rows.Scan(
			&asset.ID, &asset.OwnerType, &asset.OwnerID, &asset.Role,
			&asset.StorageKey, &asset.URL, &asset.Position, &asset.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_media_asset")
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

/*
CountsByOwner aggregates one entity's assets into per-role counts.

Description: This is the narrow boundary the publish engine consumes. The
callers re-fetch counts immediately before each validation run, so the map
is never cached.
*/
func (repository *PostgresRepository) CountsByOwner(context context.Context, ownerType publish.EntityType, ownerID string) (publish.MediaCounts, error) {
	query := `
		SELECT role, COUNT(*)
		FROM ` + schema.CatalogMediaAsset.Table + `
		WHERE ownertype = $1 AND ownerid = $2
		GROUP BY role
	`
	rows, err := repository.db.Query(context, query, ownerType, ownerID)
	if err != nil {
		return nil, dberr.Wrap(err, "count_media_by_owner")
	}
	defer rows.Close()

	counts := publish.MediaCounts{}
	for rows.Next() {
		var role publish.MediaRole
		var count int
		if err := rows.Scan(&role, &count); err != nil {
			return nil, dberr.Wrap(err, "scan_media_count")
		}
		counts[role] = count
	}
	return counts, nil
}

// CountByRole counts one entity's assets under a single role.
func (repository *PostgresRepository) CountByRole(context context.Context, ownerType publish.EntityType, ownerID string, role publish.MediaRole) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM ` + schema.CatalogMediaAsset.Table + `
		WHERE ownertype = $1 AND ownerid = $2 AND role = $3
	`
	var count int
	err := repository.db.QueryRow(context, query, ownerType, ownerID, role).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "count_media_by_role")
	}
	return count, nil
}

// Create persists a new asset row.
func (repository *PostgresRepository) Create(context context.Context, asset *Asset) error {
	query := `
		INSERT INTO ` + schema.CatalogMediaAsset.Table + ` (id, ownertype, ownerid, role, storagekey, url, position, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := repository.db.Exec(context, query,
		asset.ID, asset.OwnerType, asset.OwnerID, asset.Role,
		asset.StorageKey, asset.URL, asset.Position,
	)
	return dberr.Wrap(err, "create_media_asset")
}

// Delete removes an asset row.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tag, err := repository.db.Exec(context, `DELETE FROM ` + schema.CatalogMediaAsset.Table + ` WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_media_asset")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
