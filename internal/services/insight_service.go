package services

import (
	"context"
	"errors"
	"strings"

	"github.com/bodyvault/bodyvault/internal/database"
)

// ErrEmptyMeasurementKind is returned when a measurement is recorded without a kind.
var ErrEmptyMeasurementKind = errors.New("services: measurement kind must not be empty")

// InsightService persists analysis results and manual measurements against
// sessions.
type InsightService struct {
	sessions     *database.SessionRepository
	insights     *database.InsightRepository
	measurements *database.MeasurementRepository
}

func NewInsightService(dbCtx *database.Context) *InsightService {
	return &InsightService{
		sessions:     database.NewSessionRepository(dbCtx),
		insights:     database.NewInsightRepository(dbCtx),
		measurements: database.NewMeasurementRepository(dbCtx),
	}
}

// SaveInsight stores an analysis result. Confidence is clamped to [0, 1];
// upstream models occasionally report values just outside the range.
func (s *InsightService) SaveInsight(ctx context.Context, sessionID int64, category, content string, confidence float64) (int64, error) {
	if err := s.requireSession(ctx, sessionID); err != nil {
		return 0, err
	}

	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	return s.insights.Create(ctx, database.InsightRecord{
		SessionID:  sessionID,
		Category:   category,
		Content:    content,
		Confidence: confidence,
	})
}

// ListForSession returns all insights recorded against a session.
func (s *InsightService) ListForSession(ctx context.Context, sessionID int64) ([]database.InsightRecord, error) {
	return s.insights.ListBySession(ctx, sessionID)
}

// Recent returns the latest insights across all sessions.
func (s *InsightService) Recent(ctx context.Context, limit int64) ([]database.InsightRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.insights.ListRecent(ctx, limit)
}

// AddMeasurement records a manual body measurement for a session.
func (s *InsightService) AddMeasurement(ctx context.Context, sessionID int64, kind string, value float64) (int64, error) {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return 0, ErrEmptyMeasurementKind
	}
	if err := s.requireSession(ctx, sessionID); err != nil {
		return 0, err
	}

	return s.measurements.Create(ctx, database.MeasurementRecord{
		SessionID: sessionID,
		Kind:      kind,
		Value:     value,
	})
}

// MeasurementsForSession returns all measurements recorded against a session.
func (s *InsightService) MeasurementsForSession(ctx context.Context, sessionID int64) ([]database.MeasurementRecord, error) {
	return s.measurements.ListBySession(ctx, sessionID)
}

func (s *InsightService) requireSession(ctx context.Context, sessionID int64) error {
	record, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if record == nil {
		return database.ErrNotFound
	}
	return nil
}
