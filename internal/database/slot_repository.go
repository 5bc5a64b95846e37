package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/bodyvault/bodyvault/internal/database/sqlc"
)

type SlotRepository struct {
	ctx *Context
}

func NewSlotRepository(dbCtx *Context) *SlotRepository {
	return &SlotRepository{ctx: dbCtx}
}

func (r *SlotRepository) List(ctx context.Context) ([]SlotRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("slot repository: missing database context")
	}

	rows, err := queries.ListSlots(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlotRows(rows), nil
}

// ListActive returns the ordered slots a capture session walks through.
func (r *SlotRepository) ListActive(ctx context.Context) ([]SlotRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("slot repository: missing database context")
	}

	rows, err := queries.ListActiveSlots(ctx)
	if err != nil {
		return nil, err
	}
	return mapSlotRows(rows), nil
}

func (r *SlotRepository) FindByID(ctx context.Context, id int64) (*SlotRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("slot repository: missing database context")
	}

	row, err := queries.FindSlotByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record := mapSlotRow(row)
	return &record, nil
}

// Create appends a new slot after the current highest display order.
func (r *SlotRepository) Create(ctx context.Context, name, icon string, isDefault bool) (int64, error) {
	if r.ctx == nil || r.ctx.DB == nil {
		return 0, fmt.Errorf("slot repository: missing database context")
	}

	tx, err := r.ctx.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	queries := queriesFromContext(r.ctx).WithTx(tx)

	maxOrder, err := queries.MaxSlotOrder(ctx)
	if err != nil {
		return 0, err
	}

	id, err := queries.InsertSlot(ctx, sqldb.InsertSlotParams{
		Name:         name,
		DisplayOrder: maxOrder + 1,
		Icon:         icon,
		IsDefault:    boolToInt64(isDefault),
		IsActive:     1,
	})
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SlotRepository) SetActive(ctx context.Context, id int64, active bool) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("slot repository: missing database context")
	}

	return queries.SetSlotActive(ctx, sqldb.SetSlotActiveParams{IsActive: boolToInt64(active), ID: id})
}

func (r *SlotRepository) Rename(ctx context.Context, id int64, name string) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("slot repository: missing database context")
	}

	return queries.RenameSlot(ctx, sqldb.RenameSlotParams{Name: name, ID: id})
}

func (r *SlotRepository) UpdateOrder(ctx context.Context, id, order int64) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("slot repository: missing database context")
	}

	return queries.UpdateSlotOrder(ctx, sqldb.UpdateSlotOrderParams{DisplayOrder: order, ID: id})
}

func (r *SlotRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("slot repository: missing database context")
	}

	affected, err := queries.DeleteSlotByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func mapSlotRows(rows []sqldb.Slot) []SlotRecord {
	result := make([]SlotRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapSlotRow(row))
	}
	return result
}
