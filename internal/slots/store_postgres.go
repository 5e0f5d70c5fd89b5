// Copyright (c) 2026 Prefabrica SpA. All rights reserved.

package slots

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

// NewPostgresRepository constructs a PostgreSQL backed slot store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const slotColumns = `
	id, slottype, slotposition, contenttype, contentid, monthlyprice,
	startdate, enddate, rotationorder, isactive, createdat, updatedat
`

// scanSlot hydrates one row into a [Slot].
func scanSlot(row interface{ Scan(dest ...any) error }) (*Slot, error) {
	slot := &Slot{}
	var contentType, contentID *string

	err := row.Scan(
		&slot.ID, &slot.SlotType, &slot.SlotPosition, &contentType, &contentID,
		&slot.MonthlyPrice, &slot.StartDate, &slot.EndDate, &slot.RotationOrder,
		&slot.IsActive, &slot.CreatedAt, &slot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if contentType != nil {
		slot.ContentType = ContentType(*contentType)
	}
	if contentID != nil {
		slot.ContentID = *contentID
	}
	return slot, nil
}

/*
ListActive returns the active slot pool for one type, ordered by rotation order.

Description: This is the authoritative pool snapshot the rotation engine
consumes. It must hit the database on every call so admin edits
(activate/deactivate/create/delete) are visible within one tick.
*/
func (repository *PostgresRepository) ListActive(context context.Context, slotType publish.Tier) ([]Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM ` + schema.HomeSlot.Table + `
		WHERE slottype = $1 AND isactive = TRUE
		ORDER BY rotationorder ASC
	`
	return repository.querySlots(context, query, "list_active_slots", slotType)
}

/*
List returns every slot of one type regardless of active state, for the
admin management screen.
*/
func (repository *PostgresRepository) List(context context.Context, slotType publish.Tier) ([]Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM ` + schema.HomeSlot.Table + `
		WHERE slottype = $1
		ORDER BY rotationorder ASC
	`
	return repository.querySlots(context, query, "list_slots", slotType)
}

// querySlots runs a multi-row slot query and hydrates the results.
func (repository *PostgresRepository) querySlots(context context.Context, query, action string, args ...any) ([]Slot, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	pool := make([]Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_slot")
		}
		pool = append(pool, *slot)
	}
	return pool, nil
}

// FindByID returns a single slot row.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Slot, error) {
	query := `
		SELECT ` + slotColumns + `
		FROM ` + schema.HomeSlot.Table + `
		WHERE id = $1
	`
	slot, err := scanSlot(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_slot_by_id")
	}
	return slot, nil
}

// Create persists a new slot row.
func (repository *PostgresRepository) Create(context context.Context, slot *Slot) error {
	query := `
		INSERT INTO ` + schema.HomeSlot.Table + ` (
			id, slottype, slotposition, contenttype, contentid, monthlyprice,
			startdate, enddate, rotationorder, isactive, createdat, updatedat
		) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8, $9, $10, NOW(), NOW())
	`
	_, err := repository.db.Exec(context, query,
		slot.ID, slot.SlotType, slot.SlotPosition, string(slot.ContentType), slot.ContentID,
		slot.MonthlyPrice, slot.StartDate, slot.EndDate, slot.RotationOrder, slot.IsActive,
	)
	return dberr.Wrap(err, "create_slot")
}

// Update overwrites the mutable fields of a slot row.
func (repository *PostgresRepository) Update(context context.Context, slot *Slot) error {
	query := `
		UPDATE ` + schema.HomeSlot.Table + `
		SET slottype = $2, slotposition = $3, contenttype = NULLIF($4, ''),
		    contentid = NULLIF($5, ''), monthlyprice = $6, startdate = $7,
		    enddate = $8, rotationorder = $9, isactive = $10, updatedat = NOW()
		WHERE id = $1
	`
	tag, err := repository.db.Exec(context, query,
		slot.ID, slot.SlotType, slot.SlotPosition, string(slot.ContentType), slot.ContentID,
		slot.MonthlyPrice, slot.StartDate, slot.EndDate, slot.RotationOrder, slot.IsActive,
	)
	if err != nil {
		return dberr.Wrap(err, "update_slot")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// SetActive toggles a slot in or out of the rotation pool.
func (repository *PostgresRepository) SetActive(context context.Context, id string, isActive bool) error {
	query := `UPDATE ` + schema.HomeSlot.Table + ` SET isactive = $2, updatedat = NOW() WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id, isActive)
	if err != nil {
		return dberr.Wrap(err, "set_slot_active")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// Delete removes a slot row permanently. Slots have no soft delete; explicit
// admin deletion is the only way a slot leaves the system.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := `DELETE FROM ` + schema.HomeSlot.Table + ` WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_slot")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
