package database

import (
	"context"
	"fmt"

	sqldb "github.com/bodyvault/bodyvault/internal/database/sqlc"
)

type MeasurementRepository struct {
	ctx *Context
}

func NewMeasurementRepository(dbCtx *Context) *MeasurementRepository {
	return &MeasurementRepository{ctx: dbCtx}
}

func (r *MeasurementRepository) Create(ctx context.Context, record MeasurementRecord) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("measurement repository: missing database context")
	}

	return queries.InsertMeasurement(ctx, sqldb.InsertMeasurementParams{
		SessionID: record.SessionID,
		Kind:      record.Kind,
		Value:     record.Value,
	})
}

func (r *MeasurementRepository) ListBySession(ctx context.Context, sessionID int64) ([]MeasurementRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("measurement repository: missing database context")
	}

	rows, err := queries.ListMeasurementsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := make([]MeasurementRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapMeasurementRow(row))
	}
	return result, nil
}

func (r *MeasurementRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("measurement repository: missing database context")
	}

	affected, err := queries.DeleteMeasurementByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
