package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/bodyvault/bodyvault/internal/database/sqlc"
)

type PhotoRepository struct {
	ctx *Context
}

func NewPhotoRepository(dbCtx *Context) *PhotoRepository {
	return &PhotoRepository{ctx: dbCtx}
}

func (r *PhotoRepository) Create(ctx context.Context, record PhotoRecord) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("photo repository: missing database context")
	}

	return queries.InsertPhoto(ctx, sqldb.InsertPhotoParams{
		SessionID:  record.SessionID,
		SlotID:     record.SlotID,
		BlobPath:   record.BlobPath,
		ThumbPath:  nullString(record.ThumbPath),
		CapturedAt: sql.NullTime{Time: record.CapturedAt, Valid: !record.CapturedAt.IsZero()},
		Notes:      nullString(record.Notes),
	})
}

func (r *PhotoRepository) FindByID(ctx context.Context, id int64) (*PhotoRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("photo repository: missing database context")
	}

	row, err := queries.FindPhotoByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record := mapPhotoRow(row)
	return &record, nil
}

func (r *PhotoRepository) ListBySession(ctx context.Context, sessionID int64) ([]PhotoRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("photo repository: missing database context")
	}

	rows, err := queries.ListPhotosBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return mapPhotoRows(rows), nil
}

func (r *PhotoRepository) ListBySlot(ctx context.Context, slotID int64) ([]PhotoRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("photo repository: missing database context")
	}

	rows, err := queries.ListPhotosBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	return mapPhotoRows(rows), nil
}

func (r *PhotoRepository) FindBySessionAndSlot(ctx context.Context, sessionID, slotID int64) (*PhotoRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("photo repository: missing database context")
	}

	row, err := queries.FindPhotoBySessionAndSlot(ctx, sqldb.FindPhotoBySessionAndSlotParams{SessionID: sessionID, SlotID: slotID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record := mapPhotoRow(row)
	return &record, nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("photo repository: missing database context")
	}

	affected, err := queries.DeletePhotoByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PhotoRepository) CountBySession(ctx context.Context, sessionID int64) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("photo repository: missing database context")
	}

	return queries.CountPhotosBySession(ctx, sessionID)
}

// AllBlobPaths returns every blob and thumbnail path referenced by a photo
// row, flattened. The reconciliation sweep treats any file outside this set as
// an orphan.
func (r *PhotoRepository) AllBlobPaths(ctx context.Context) ([]string, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("photo repository: missing database context")
	}

	rows, err := queries.ListAllBlobPaths(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(rows)*2)
	for _, row := range rows {
		result = append(result, row.BlobPath)
		if row.ThumbPath.Valid && row.ThumbPath.String != "" {
			result = append(result, row.ThumbPath.String)
		}
	}
	return result, nil
}

func mapPhotoRows(rows []sqldb.Photo) []PhotoRecord {
	result := make([]PhotoRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapPhotoRow(row))
	}
	return result
}
