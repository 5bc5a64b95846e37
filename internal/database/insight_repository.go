package database

import (
	"context"
	"fmt"

	sqldb "github.com/bodyvault/bodyvault/internal/database/sqlc"
)

type InsightRepository struct {
	ctx *Context
}

func NewInsightRepository(dbCtx *Context) *InsightRepository {
	return &InsightRepository{ctx: dbCtx}
}

func (r *InsightRepository) Create(ctx context.Context, record InsightRecord) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("insight repository: missing database context")
	}

	return queries.InsertInsight(ctx, sqldb.InsertInsightParams{
		SessionID:  record.SessionID,
		Category:   record.Category,
		Content:    record.Content,
		Confidence: record.Confidence,
	})
}

func (r *InsightRepository) ListBySession(ctx context.Context, sessionID int64) ([]InsightRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("insight repository: missing database context")
	}

	rows, err := queries.ListInsightsBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := make([]InsightRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapInsightRow(row))
	}
	return result, nil
}

func (r *InsightRepository) ListRecent(ctx context.Context, limit int64) ([]InsightRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("insight repository: missing database context")
	}

	rows, err := queries.ListRecentInsights(ctx, limit)
	if err != nil {
		return nil, err
	}

	result := make([]InsightRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapInsightRow(row))
	}
	return result, nil
}

func (r *InsightRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("insight repository: missing database context")
	}

	affected, err := queries.DeleteInsightByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
