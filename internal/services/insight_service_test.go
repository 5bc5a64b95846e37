package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodyvault/bodyvault/internal/database"
)

func newSession(t *testing.T, env *testEnv) int64 {
	t.Helper()
	id, err := database.NewSessionRepository(env.dbCtx).Create(context.Background(), "")
	require.NoError(t, err)
	return id
}

func TestSaveInsightClampsConfidence(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewInsightService(env.dbCtx)
	sessionID := newSession(t, env)

	_, err := svc.SaveInsight(ctx, sessionID, "posture", "shoulders level", 1.4)
	require.NoError(t, err)
	_, err = svc.SaveInsight(ctx, sessionID, "posture", "hips tilted", -0.2)
	require.NoError(t, err)

	rows, err := svc.ListForSession(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.GreaterOrEqual(t, row.Confidence, 0.0)
		assert.LessOrEqual(t, row.Confidence, 1.0)
	}
}

func TestSaveInsightRequiresSession(t *testing.T) {
	env := setupEnv(t)
	svc := NewInsightService(env.dbCtx)

	_, err := svc.SaveInsight(context.Background(), 999, "posture", "x", 0.5)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRecentInsightsAcrossSessions(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewInsightService(env.dbCtx)

	first := newSession(t, env)
	second := newSession(t, env)

	_, err := svc.SaveInsight(ctx, first, "comparison", "a", 0.5)
	require.NoError(t, err)
	_, err = svc.SaveInsight(ctx, second, "comparison", "b", 0.5)
	require.NoError(t, err)
	_, err = svc.SaveInsight(ctx, second, "comparison", "c", 0.5)
	require.NoError(t, err)

	rows, err := svc.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = svc.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestMeasurements(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewInsightService(env.dbCtx)
	sessionID := newSession(t, env)

	_, err := svc.AddMeasurement(ctx, sessionID, " ", 80)
	assert.ErrorIs(t, err, ErrEmptyMeasurementKind)

	_, err = svc.AddMeasurement(ctx, 999, "waist", 80)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = svc.AddMeasurement(ctx, sessionID, "waist", 81.5)
	require.NoError(t, err)
	_, err = svc.AddMeasurement(ctx, sessionID, "weight", 74.2)
	require.NoError(t, err)

	rows, err := svc.MeasurementsForSession(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "waist", rows[0].Kind)
	assert.InDelta(t, 81.5, rows[0].Value, 0.001)
}
