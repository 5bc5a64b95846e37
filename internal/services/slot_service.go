package services

import (
	"context"
	"errors"
	"strings"

	"github.com/bodyvault/bodyvault/internal/database"
)

// ErrDefaultSlot is returned when an operation would remove one of the seeded
// default slots. Defaults can be deactivated but never deleted, so that the
// standard capture walkthrough can always be restored.
var ErrDefaultSlot = errors.New("services: default slot cannot be removed")

// ErrEmptySlotName is returned when a slot is created or renamed with a blank name.
var ErrEmptySlotName = errors.New("services: slot name must not be empty")

// SlotService manages the configurable list of capture angles.
type SlotService struct {
	slots *database.SlotRepository
}

func NewSlotService(dbCtx *database.Context) *SlotService {
	return &SlotService{slots: database.NewSlotRepository(dbCtx)}
}

// Add creates a custom slot appended after the existing ones.
func (s *SlotService) Add(ctx context.Context, name, icon string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptySlotName
	}
	return s.slots.Create(ctx, name, icon, false)
}

// List returns every slot in display order, active or not.
func (s *SlotService) List(ctx context.Context) ([]database.SlotRecord, error) {
	return s.slots.List(ctx)
}

// ListActive returns the slots a new capture session walks through.
func (s *SlotService) ListActive(ctx context.Context) ([]database.SlotRecord, error) {
	return s.slots.ListActive(ctx)
}

// SetActive toggles whether the slot participates in new sessions.
func (s *SlotService) SetActive(ctx context.Context, id int64, active bool) error {
	record, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return database.ErrNotFound
	}
	return s.slots.SetActive(ctx, id, active)
}

// Rename changes a slot's display name.
func (s *SlotService) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptySlotName
	}
	record, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return database.ErrNotFound
	}
	return s.slots.Rename(ctx, id, name)
}

// Reorder moves the slot to the given display position.
func (s *SlotService) Reorder(ctx context.Context, id, order int64) error {
	record, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return database.ErrNotFound
	}
	return s.slots.UpdateOrder(ctx, id, order)
}

// Remove deletes a custom slot. Default slots are protected; deactivate them
// instead.
func (s *SlotService) Remove(ctx context.Context, id int64) error {
	record, err := s.slots.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if record == nil {
		return database.ErrNotFound
	}
	if record.IsDefault {
		return ErrDefaultSlot
	}

	deleted, err := s.slots.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return database.ErrNotFound
	}
	return nil
}
