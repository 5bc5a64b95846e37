package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sqldb "github.com/bodyvault/bodyvault/internal/database/sqlc"
)

type SessionRepository struct {
	ctx *Context
}

func NewSessionRepository(dbCtx *Context) *SessionRepository {
	return &SessionRepository{ctx: dbCtx}
}

func (r *SessionRepository) Create(ctx context.Context, notes string) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("session repository: missing database context")
	}

	res, err := queries.InsertSession(ctx, nullString(notes))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *SessionRepository) FindByID(ctx context.Context, id int64) (*SessionRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("session repository: missing database context")
	}

	row, err := queries.FindSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	record := mapSessionRow(row)
	return &record, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]SessionRecord, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return nil, fmt.Errorf("session repository: missing database context")
	}

	rows, err := queries.ListSessions(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]SessionRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, mapSessionRow(row))
	}
	return result, nil
}

func (r *SessionRepository) SetComplete(ctx context.Context, id int64, complete bool) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("session repository: missing database context")
	}

	return queries.SetSessionComplete(ctx, sqldb.SetSessionCompleteParams{IsComplete: boolToInt64(complete), ID: id})
}

func (r *SessionRepository) SetNotes(ctx context.Context, id int64, notes string) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("session repository: missing database context")
	}

	return queries.UpdateSessionNotes(ctx, sqldb.UpdateSessionNotesParams{Notes: nullString(notes), ID: id})
}

// PhotoCount is a live recount of the photo rows referencing the session, used
// to refresh the denormalised counter.
func (r *SessionRepository) PhotoCount(ctx context.Context, id int64) (int64, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return 0, fmt.Errorf("session repository: missing database context")
	}

	return queries.CountPhotosBySession(ctx, id)
}

func (r *SessionRepository) UpdatePhotoCount(ctx context.Context, id, count int64) error {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return fmt.Errorf("session repository: missing database context")
	}

	return queries.UpdateSessionPhotoCount(ctx, sqldb.UpdateSessionPhotoCountParams{PhotoCount: count, ID: id})
}

func (r *SessionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	queries := queriesFromContext(r.ctx)
	if queries == nil {
		return false, fmt.Errorf("session repository: missing database context")
	}

	affected, err := queries.DeleteSessionByID(ctx, id)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Detail reads the session and all of its child rows inside one transaction so
// the detail and compare views observe a consistent snapshot.
func (r *SessionRepository) Detail(ctx context.Context, id int64) (*SessionDetailRecord, error) {
	if r.ctx == nil || r.ctx.DB == nil {
		return nil, fmt.Errorf("session repository: missing database context")
	}

	tx, err := r.ctx.DB.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	queries := queriesFromContext(r.ctx).WithTx(tx)

	sessionRow, err := queries.FindSessionByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	photoRows, err := queries.ListPhotosBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	insightRows, err := queries.ListInsightsBySession(ctx, id)
	if err != nil {
		return nil, err
	}
	measurementRows, err := queries.ListMeasurementsBySession(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	detail := SessionDetailRecord{
		Session:      mapSessionRow(sessionRow),
		Photos:       make([]PhotoRecord, 0, len(photoRows)),
		Insights:     make([]InsightRecord, 0, len(insightRows)),
		Measurements: make([]MeasurementRecord, 0, len(measurementRows)),
	}
	for _, row := range photoRows {
		detail.Photos = append(detail.Photos, mapPhotoRow(row))
	}
	for _, row := range insightRows {
		detail.Insights = append(detail.Insights, mapInsightRow(row))
	}
	for _, row := range measurementRows {
		detail.Measurements = append(detail.Measurements, mapMeasurementRow(row))
	}
	return &detail, nil
}
