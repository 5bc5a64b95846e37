// Package session drives the guided capture walkthrough: one cursor over the
// active slots, captured photos accumulating into a lazily created session.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/bodyvault/bodyvault/internal/database"
)

// StateKind is the phase of a capture walkthrough.
type StateKind int

const (
	StateIdle StateKind = iota
	StateLoading
	StateInProgress
	StateSaving
	StateComplete
	StateCancelled
	StateError
)

func (k StateKind) String() string {
	switch k {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateInProgress:
		return "in_progress"
	case StateSaving:
		return "saving"
	case StateComplete:
		return "complete"
	case StateCancelled:
		return "cancelled"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

var (
	// ErrNoActiveSlots is returned by Start when every slot is deactivated.
	ErrNoActiveSlots = errors.New("session: no active slots")

	// ErrCaptureInFlight is returned when an operation arrives while a save is
	// still running.
	ErrCaptureInFlight = errors.New("session: capture in flight")

	// ErrNotInProgress is returned when an operation needs a running
	// walkthrough and there is none.
	ErrNotInProgress = errors.New("session: no walkthrough in progress")

	// ErrSlotOutOfRange is returned by JumpTo for an invalid slot index.
	ErrSlotOutOfRange = errors.New("session: slot index out of range")
)

const defaultErrorRevert = 2 * time.Second

// Repository is the persistence surface the orchestrator drives.
type Repository interface {
	AddPhoto(ctx context.Context, sessionID *int64, slotID int64, raw []byte, orientationDegrees int) (int64, int64, error)
	CompleteSession(ctx context.Context, sessionID int64) error
	DeleteSession(ctx context.Context, sessionID int64) error
}

// SlotSource lists the slots a new walkthrough steps through.
type SlotSource interface {
	ListActive(ctx context.Context) ([]database.SlotRecord, error)
}

// State is a point-in-time copy of the orchestrator for rendering. SessionID
// is nil until the first capture lands.
type State struct {
	Kind          StateKind
	SessionID     *int64
	SlotIndex     int
	SlotCount     int
	CapturedCount int
	Err           error
}

// Orchestrator serializes the walkthrough under one mutex. During persistence
// the lock is released and the state reads Saving; concurrent captures are
// rejected rather than queued, and Cancel waits for the in-flight save to
// settle before tearing the session down.
type Orchestrator struct {
	repo        Repository
	slotSource  SlotSource
	log         zerolog.Logger
	errorRevert time.Duration

	mu        sync.Mutex
	kind      StateKind
	slots     []database.SlotRecord
	cursor    int
	captured  map[int64]bool
	sessionID *int64
	lastErr   error
	settled   chan struct{}
	errEpoch  int
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithErrorRevertDelay overrides how long a capture failure stays on screen
// before the walkthrough returns to InProgress. Zero disables the revert.
func WithErrorRevertDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.errorRevert = d
	}
}

// WithLogger attaches a logger.
func WithLogger(log zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// New returns an idle orchestrator.
func New(repo Repository, slotSource SlotSource, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		repo:        repo,
		slotSource:  slotSource,
		log:         zerolog.Nop(),
		errorRevert: defaultErrorRevert,
		kind:        StateIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start loads the active slots and begins a walkthrough at the first one. No
// session row exists yet; that waits for the first capture.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	if o.kind == StateSaving || o.kind == StateLoading {
		o.mu.Unlock()
		return ErrCaptureInFlight
	}
	o.kind = StateLoading
	o.mu.Unlock()

	slots, err := o.slotSource.ListActive(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.kind = StateError
		o.lastErr = err
		return err
	}
	if len(slots) == 0 {
		// Terminal until the slot configuration changes; no revert timer.
		o.kind = StateError
		o.lastErr = ErrNoActiveSlots
		return ErrNoActiveSlots
	}

	o.slots = slots
	o.cursor = 0
	o.captured = make(map[int64]bool)
	o.sessionID = nil
	o.lastErr = nil
	o.kind = StateInProgress
	return nil
}

// Capture stores a photo for the current slot and advances. Capturing the last
// slot completes the session. A failure parks the walkthrough in Error and,
// after the revert delay, returns it to InProgress on the same slot so the
// user can retry.
func (o *Orchestrator) Capture(ctx context.Context, raw []byte, orientationDegrees int) error {
	o.mu.Lock()
	if o.kind == StateSaving {
		o.mu.Unlock()
		return ErrCaptureInFlight
	}
	if o.kind != StateInProgress {
		o.mu.Unlock()
		return ErrNotInProgress
	}

	slot := o.slots[o.cursor]
	sid := o.sessionID
	settled := o.beginSaveLocked()
	o.mu.Unlock()

	sessionID, _, err := o.repo.AddPhoto(ctx, sid, slot.ID, raw, orientationDegrees)

	o.mu.Lock()
	if err != nil {
		o.failLocked(err)
		o.endSaveLocked(settled)
		return err
	}

	o.sessionID = &sessionID
	o.captured[slot.ID] = true
	o.log.Debug().Int64("session_id", sessionID).Int64("slot_id", slot.ID).Msg("photo captured")

	if o.cursor < len(o.slots)-1 {
		o.cursor++
		o.kind = StateInProgress
		o.endSaveLocked(settled)
		return nil
	}
	return o.finishLocked(ctx, settled)
}

// Skip advances past the current slot without capturing. Skipping the last
// slot completes the session, or cancels the walkthrough when nothing was
// captured at all.
func (o *Orchestrator) Skip(ctx context.Context) error {
	o.mu.Lock()
	if o.kind == StateSaving {
		o.mu.Unlock()
		return ErrCaptureInFlight
	}
	if o.kind != StateInProgress {
		o.mu.Unlock()
		return ErrNotInProgress
	}

	if o.cursor < len(o.slots)-1 {
		o.cursor++
		o.mu.Unlock()
		return nil
	}

	if o.sessionID == nil {
		o.kind = StateCancelled
		o.mu.Unlock()
		return nil
	}
	settled := o.beginSaveLocked()
	return o.finishLocked(ctx, settled)
}

// Complete ends the walkthrough early, marking the session complete with
// whatever was captured. With no captures there is nothing to persist and the
// walkthrough just cancels.
func (o *Orchestrator) Complete(ctx context.Context) error {
	o.mu.Lock()
	if o.kind == StateSaving {
		o.mu.Unlock()
		return ErrCaptureInFlight
	}
	if o.kind != StateInProgress {
		o.mu.Unlock()
		return ErrNotInProgress
	}

	if o.sessionID == nil {
		o.kind = StateCancelled
		o.mu.Unlock()
		return nil
	}
	settled := o.beginSaveLocked()
	return o.finishLocked(ctx, settled)
}

// Cancel abandons the walkthrough and deletes the session row and any blobs
// already captured. It waits for an in-flight save to settle first, so the
// delete cannot race a photo write.
func (o *Orchestrator) Cancel(ctx context.Context) error {
	o.mu.Lock()
	for o.kind == StateSaving {
		settled := o.settled
		o.mu.Unlock()
		if settled != nil {
			<-settled
		}
		o.mu.Lock()
	}

	if o.kind != StateInProgress && o.kind != StateError {
		o.mu.Unlock()
		return ErrNotInProgress
	}

	sid := o.sessionID
	o.sessionID = nil
	o.lastErr = nil
	o.kind = StateCancelled
	o.mu.Unlock()

	if sid == nil {
		return nil
	}
	if err := o.repo.DeleteSession(ctx, *sid); err != nil {
		o.log.Warn().Err(err).Int64("session_id", *sid).Msg("failed to delete cancelled session")
		return err
	}
	return nil
}

// Next moves the cursor forward without capturing or completing.
func (o *Orchestrator) Next() error {
	return o.move(1)
}

// Previous moves the cursor back so an earlier slot can be retaken.
func (o *Orchestrator) Previous() error {
	return o.move(-1)
}

// JumpTo moves the cursor to an arbitrary slot index.
func (o *Orchestrator) JumpTo(index int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.kind != StateInProgress {
		return ErrNotInProgress
	}
	if index < 0 || index >= len(o.slots) {
		return ErrSlotOutOfRange
	}
	o.cursor = index
	return nil
}

// Reset returns a finished walkthrough to Idle. It refuses while a save is in
// flight.
func (o *Orchestrator) Reset() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.kind == StateSaving || o.kind == StateLoading {
		return ErrCaptureInFlight
	}
	o.kind = StateIdle
	o.slots = nil
	o.cursor = 0
	o.captured = nil
	o.sessionID = nil
	o.lastErr = nil
	return nil
}

// Snapshot returns a copy of the current state.
func (o *Orchestrator) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := State{
		Kind:          o.kind,
		SlotIndex:     o.cursor,
		SlotCount:     len(o.slots),
		CapturedCount: len(o.captured),
		Err:           o.lastErr,
	}
	if o.sessionID != nil {
		id := *o.sessionID
		s.SessionID = &id
	}
	return s
}

// CurrentSlot returns the slot the cursor points at.
func (o *Orchestrator) CurrentSlot() (*database.SlotRecord, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.kind != StateInProgress && o.kind != StateSaving && o.kind != StateError {
		return nil, ErrNotInProgress
	}
	if o.cursor >= len(o.slots) {
		return nil, ErrNotInProgress
	}
	slot := o.slots[o.cursor]
	return &slot, nil
}

// Captured reports whether the slot already has a photo this walkthrough.
func (o *Orchestrator) Captured(slotID int64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.captured[slotID]
}

func (o *Orchestrator) move(delta int) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.kind != StateInProgress {
		return ErrNotInProgress
	}
	next := o.cursor + delta
	if next < 0 || next >= len(o.slots) {
		return ErrSlotOutOfRange
	}
	o.cursor = next
	return nil
}

// beginSaveLocked flips the state to Saving and arms the settle channel
// Cancel waits on.
func (o *Orchestrator) beginSaveLocked() chan struct{} {
	o.kind = StateSaving
	settled := make(chan struct{})
	o.settled = settled
	return settled
}

// endSaveLocked releases the lock and only then closes the settle channel, so
// a waiter resuming from the channel observes the post-save state.
func (o *Orchestrator) endSaveLocked(settled chan struct{}) {
	o.settled = nil
	o.mu.Unlock()
	close(settled)
}

// finishLocked persists session completion. Called with the lock held and
// state Saving; releases the lock around the write.
func (o *Orchestrator) finishLocked(ctx context.Context, settled chan struct{}) error {
	sid := *o.sessionID
	o.mu.Unlock()

	err := o.repo.CompleteSession(ctx, sid)

	o.mu.Lock()
	if err != nil {
		o.failLocked(err)
		o.endSaveLocked(settled)
		return err
	}
	o.kind = StateComplete
	o.log.Info().Int64("session_id", sid).Int("captured", len(o.captured)).Msg("session complete")
	o.endSaveLocked(settled)
	return nil
}

// failLocked parks the walkthrough in Error and arms the auto-revert timer.
// The epoch guard keeps a stale timer from reviving a walkthrough that has
// since moved on.
func (o *Orchestrator) failLocked(err error) {
	o.lastErr = err
	o.kind = StateError
	o.errEpoch++
	epoch := o.errEpoch
	o.log.Error().Err(err).Int("slot_index", o.cursor).Msg("capture failed")

	if o.errorRevert <= 0 {
		return
	}
	time.AfterFunc(o.errorRevert, func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.kind == StateError && o.errEpoch == epoch {
			o.kind = StateInProgress
			o.lastErr = nil
		}
	})
}
