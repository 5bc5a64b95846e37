package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodyvault/bodyvault/internal/database"
)

func TestSlotAddRejectsBlankName(t *testing.T) {
	env := setupEnv(t)
	svc := NewSlotService(env.dbCtx)

	_, err := svc.Add(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrEmptySlotName)
}

func TestSlotAddAppendsAfterDefaults(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewSlotService(env.dbCtx)

	id, err := svc.Add(ctx, "Upper Back", "person")
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
	assert.Equal(t, id, all[5].ID)
	assert.Equal(t, "Upper Back", all[5].Name)
	assert.False(t, all[5].IsDefault)
}

func TestSlotRemoveProtectsDefaults(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewSlotService(env.dbCtx)

	all, err := svc.List(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Remove(ctx, all[0].ID), ErrDefaultSlot)

	id, err := svc.Add(ctx, "Custom", "")
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, id))
	assert.ErrorIs(t, svc.Remove(ctx, id), database.ErrNotFound)
}

func TestSlotDeactivateInsteadOfDelete(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewSlotService(env.dbCtx)

	all, err := svc.List(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, all[0].ID, false))

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 4)

	require.NoError(t, svc.SetActive(ctx, all[0].ID, true))
	active, err = svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 5)
}

func TestSlotRenameAndReorder(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()
	svc := NewSlotService(env.dbCtx)

	id, err := svc.Add(ctx, "Temp", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Rename(ctx, id, ""), ErrEmptySlotName)
	require.NoError(t, svc.Rename(ctx, id, "Left Arm"))
	require.NoError(t, svc.Reorder(ctx, id, 0))

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Left Arm", all[0].Name)

	assert.ErrorIs(t, svc.Rename(ctx, 999, "x"), database.ErrNotFound)
	assert.ErrorIs(t, svc.SetActive(ctx, 999, true), database.ErrNotFound)
	assert.ErrorIs(t, svc.Reorder(ctx, 999, 1), database.ErrNotFound)
}
