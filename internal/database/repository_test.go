package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *Context {
	t.Helper()
	dbCtx, err := CreateDatabase(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, CloseDatabase(dbCtx))
	})

	return dbCtx
}

func TestMigrationsSeedDefaultSlots(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()

	slots, err := NewSlotRepository(dbCtx).List(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 5)

	assert.Equal(t, "Face", slots[0].Name)
	assert.Equal(t, "Right Side", slots[4].Name)
	for _, slot := range slots {
		assert.True(t, slot.IsDefault)
		assert.True(t, slot.IsActive)
	}
}

func TestSessionCreateFindList(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()
	sessions := NewSessionRepository(dbCtx)

	id, err := sessions.Create(ctx, "morning light")
	require.NoError(t, err)
	require.Positive(t, id)

	record, err := sessions.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "morning light", record.Notes)
	assert.False(t, record.IsComplete)
	assert.Zero(t, record.PhotoCount)

	missing, err := sessions.FindByID(ctx, id+999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	list, err := sessions.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSessionCompleteAndNotes(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()
	sessions := NewSessionRepository(dbCtx)

	id, err := sessions.Create(ctx, "")
	require.NoError(t, err)

	require.NoError(t, sessions.SetComplete(ctx, id, true))
	require.NoError(t, sessions.SetNotes(ctx, id, "done"))

	record, err := sessions.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, record.IsComplete)
	assert.Equal(t, "done", record.Notes)
}

func TestPhotoCountIsLiveRecount(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()
	sessions := NewSessionRepository(dbCtx)
	photos := NewPhotoRepository(dbCtx)

	sessionID, err := sessions.Create(ctx, "")
	require.NoError(t, err)

	slots, err := NewSlotRepository(dbCtx).ListActive(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i := 0; i < 3; i++ {
		_, err := photos.Create(ctx, PhotoRecord{
			SessionID: sessionID,
			SlotID:    slots[0].ID,
			BlobPath:  "/vault/photos/p" + string(rune('a'+i)),
		})
		require.NoError(t, err)
	}

	count, err := sessions.PhotoCount(ctx, sessionID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	list, err := photos.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	deleted, err := photos.Delete(ctx, list[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	count, err = sessions.PhotoCount(ctx, sessionID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestSessionDeleteCascades(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()
	sessions := NewSessionRepository(dbCtx)
	photos := NewPhotoRepository(dbCtx)
	insights := NewInsightRepository(dbCtx)
	measurements := NewMeasurementRepository(dbCtx)

	sessionID, err := sessions.Create(ctx, "")
	require.NoError(t, err)

	slots, err := NewSlotRepository(dbCtx).ListActive(ctx)
	require.NoError(t, err)

	_, err = photos.Create(ctx, PhotoRecord{SessionID: sessionID, SlotID: slots[0].ID, BlobPath: "/vault/photos/a"})
	require.NoError(t, err)
	_, err = photos.Create(ctx, PhotoRecord{SessionID: sessionID, SlotID: slots[1].ID, BlobPath: "/vault/photos/b"})
	require.NoError(t, err)
	_, err = insights.Create(ctx, InsightRecord{SessionID: sessionID, Category: "posture", Content: "text", Confidence: 0.7})
	require.NoError(t, err)
	_, err = measurements.Create(ctx, MeasurementRecord{SessionID: sessionID, Kind: "waist", Value: 81.5})
	require.NoError(t, err)

	deleted, err := sessions.Delete(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, deleted)

	remaining, err := photos.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	insightRows, err := insights.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, insightRows)

	measurementRows, err := measurements.ListBySession(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, measurementRows)
}

func TestSessionDetailSnapshot(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()
	sessions := NewSessionRepository(dbCtx)

	sessionID, err := sessions.Create(ctx, "snapshot")
	require.NoError(t, err)

	slots, err := NewSlotRepository(dbCtx).ListActive(ctx)
	require.NoError(t, err)

	photos := NewPhotoRepository(dbCtx)
	_, err = photos.Create(ctx, PhotoRecord{SessionID: sessionID, SlotID: slots[0].ID, BlobPath: "/vault/photos/a", ThumbPath: "/vault/thumbnails/a"})
	require.NoError(t, err)

	_, err = NewInsightRepository(dbCtx).Create(ctx, InsightRecord{SessionID: sessionID, Category: "comparison", Content: "steady progress", Confidence: 0.9})
	require.NoError(t, err)

	detail, err := sessions.Detail(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, "snapshot", detail.Session.Notes)
	assert.Len(t, detail.Photos, 1)
	assert.Equal(t, "/vault/thumbnails/a", detail.Photos[0].ThumbPath)
	assert.Len(t, detail.Insights, 1)
	assert.Empty(t, detail.Measurements)

	missing, err := sessions.Detail(ctx, sessionID+999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSlotCreateAppendsOrder(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()
	slots := NewSlotRepository(dbCtx)

	id, err := slots.Create(ctx, "Upper Back", "person", false)
	require.NoError(t, err)

	record, err := slots.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.EqualValues(t, 5, record.DisplayOrder)
	assert.False(t, record.IsDefault)
	assert.True(t, record.IsActive)
}

func TestSlotSetActiveFiltersActiveList(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()
	slots := NewSlotRepository(dbCtx)

	all, err := slots.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)

	require.NoError(t, slots.SetActive(ctx, all[0].ID, false))

	active, err := slots.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 4)
	for _, slot := range active {
		assert.NotEqual(t, all[0].ID, slot.ID)
	}
}

func TestClearDatabaseKeepsSlots(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()

	sessionID, err := NewSessionRepository(dbCtx).Create(ctx, "to be wiped")
	require.NoError(t, err)
	slots, err := NewSlotRepository(dbCtx).ListActive(ctx)
	require.NoError(t, err)
	_, err = NewPhotoRepository(dbCtx).Create(ctx, PhotoRecord{SessionID: sessionID, SlotID: slots[0].ID, BlobPath: "/p/a.enc"})
	require.NoError(t, err)

	require.NoError(t, ClearDatabase(dbCtx))

	sessions, err := NewSessionRepository(dbCtx).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	kept, err := NewSlotRepository(dbCtx).List(ctx)
	require.NoError(t, err)
	assert.Len(t, kept, 5)
}

func TestAllBlobPathsFlattensThumbnails(t *testing.T) {
	dbCtx := setupDB(t)
	ctx := context.Background()

	sessionID, err := NewSessionRepository(dbCtx).Create(ctx, "")
	require.NoError(t, err)
	slots, err := NewSlotRepository(dbCtx).ListActive(ctx)
	require.NoError(t, err)

	photos := NewPhotoRepository(dbCtx)
	_, err = photos.Create(ctx, PhotoRecord{SessionID: sessionID, SlotID: slots[0].ID, BlobPath: "/p/a.enc", ThumbPath: "/t/a.enc"})
	require.NoError(t, err)
	_, err = photos.Create(ctx, PhotoRecord{SessionID: sessionID, SlotID: slots[1].ID, BlobPath: "/p/b.enc"})
	require.NoError(t, err)

	paths, err := photos.AllBlobPaths(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/p/a.enc", "/t/a.enc", "/p/b.enc"}, paths)
}
