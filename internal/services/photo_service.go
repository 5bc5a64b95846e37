// Package services exposes high-level operations mediating between the
// metadata store and the encrypted blob store.
package services

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"github.com/bodyvault/bodyvault/internal/blobstore"
	"github.com/bodyvault/bodyvault/internal/database"
	"github.com/bodyvault/bodyvault/internal/imaging"
)

// PhotoService owns the blob-plus-row lifecycle of a photo. Writes go blob
// first, row second, so a crash in between leaves an orphan blob rather than a
// row pointing at nothing. Deletes go the other way: blob cleanup is
// best-effort and never blocks metadata removal.
type PhotoService struct {
	sessions  *database.SessionRepository
	photos    *database.PhotoRepository
	blobs     *blobstore.Store
	thumbEdge int
	log       zerolog.Logger
}

// NewPhotoService creates a PhotoService.
func NewPhotoService(dbCtx *database.Context, blobs *blobstore.Store, thumbEdge int, log zerolog.Logger) *PhotoService {
	if thumbEdge <= 0 {
		thumbEdge = imaging.DefaultThumbnailEdge
	}
	return &PhotoService{
		sessions:  database.NewSessionRepository(dbCtx),
		photos:    database.NewPhotoRepository(dbCtx),
		blobs:     blobs,
		thumbEdge: thumbEdge,
		log:       log,
	}
}

// AddPhoto stores a captured photo for the given slot. When sessionID is nil a
// session row is materialized first; the session only ever exists in the
// database once a photo write has begun. Steps run sequentially with no
// automatic retry: a failure between the blob writes and the row insert
// orphans the blobs, which the reconciliation sweep cleans up later.
func (s *PhotoService) AddPhoto(ctx context.Context, sessionID *int64, slotID int64, raw []byte, orientationDegrees int) (int64, int64, error) {
	upright, err := imaging.Normalize(raw, orientationDegrees)
	if err != nil {
		return 0, 0, err
	}

	var sid int64
	if sessionID != nil {
		sid = *sessionID
	} else {
		sid, err = s.sessions.Create(ctx, "")
		if err != nil {
			return 0, 0, fmt.Errorf("create session: %w", err)
		}
	}

	now := time.Now()

	ref, err := s.blobs.Put(upright, blobstore.PhotoName(sid, slotID, now))
	if err != nil {
		return 0, 0, fmt.Errorf("write photo blob: %w", err)
	}

	thumb, err := imaging.Thumbnail(upright, s.thumbEdge)
	if err != nil {
		return 0, 0, fmt.Errorf("build thumbnail: %w", err)
	}
	thumbRef, err := s.blobs.PutThumbnail(thumb, blobstore.ThumbName(sid, slotID, now))
	if err != nil {
		return 0, 0, fmt.Errorf("write thumbnail blob: %w", err)
	}

	photoID, err := s.photos.Create(ctx, database.PhotoRecord{
		SessionID:  sid,
		SlotID:     slotID,
		BlobPath:   ref.Path,
		ThumbPath:  thumbRef.Path,
		CapturedAt: now,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("insert photo row: %w", err)
	}

	if err := s.recount(ctx, sid); err != nil {
		return 0, 0, err
	}

	return sid, photoID, nil
}

// DeletePhoto removes the photo row and its blobs. Blob deletion is
// best-effort: a missing or undeletable blob is logged and does not keep the
// row alive.
func (s *PhotoService) DeletePhoto(ctx context.Context, photoID int64) error {
	record, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return err
	}
	if record == nil {
		return database.ErrNotFound
	}

	s.deleteBlob(record.BlobPath, photoID)
	if record.ThumbPath != "" {
		s.deleteBlob(record.ThumbPath, photoID)
	}

	if _, err := s.photos.Delete(ctx, photoID); err != nil {
		return err
	}

	return s.recount(ctx, record.SessionID)
}

// DeleteSession removes a session, its child rows, and their blobs. Photo
// enumeration failure is logged but never blocks the session delete; the user
// can always remove a session even when it costs an orphan blob.
func (s *PhotoService) DeleteSession(ctx context.Context, sessionID int64) error {
	records, err := s.photos.ListBySession(ctx, sessionID)
	if err != nil {
		s.log.Warn().Err(err).Int64("session_id", sessionID).
			Msg("photo enumeration failed, deleting session anyway")
	}
	for _, record := range records {
		s.deleteBlob(record.BlobPath, record.ID)
		if record.ThumbPath != "" {
			s.deleteBlob(record.ThumbPath, record.ID)
		}
	}

	deleted, err := s.sessions.Delete(ctx, sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		return database.ErrNotFound
	}
	return nil
}

// CompleteSession marks the session as complete.
func (s *PhotoService) CompleteSession(ctx context.Context, sessionID int64) error {
	record, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if record == nil {
		return database.ErrNotFound
	}
	return s.sessions.SetComplete(ctx, sessionID, true)
}

// SetSessionNotes updates the free-text notes on a session.
func (s *PhotoService) SetSessionNotes(ctx context.Context, sessionID int64, notes string) error {
	record, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if record == nil {
		return database.ErrNotFound
	}
	return s.sessions.SetNotes(ctx, sessionID, notes)
}

// LoadPhoto resolves the photo row and returns its decrypted bytes. A missing
// row yields database.ErrNotFound; a row whose blob is gone yields
// blobstore.ErrNotFound so callers can tell corruption from absence.
func (s *PhotoService) LoadPhoto(ctx context.Context, photoID int64) ([]byte, error) {
	record, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, database.ErrNotFound
	}
	return s.blobs.Get(blobstore.BlobRef{Path: record.BlobPath})
}

// LoadThumbnail returns the decrypted thumbnail bytes for a photo.
func (s *PhotoService) LoadThumbnail(ctx context.Context, photoID int64) ([]byte, error) {
	record, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, database.ErrNotFound
	}
	if record.ThumbPath == "" {
		return nil, blobstore.ErrNotFound
	}
	return s.blobs.Get(blobstore.BlobRef{Path: record.ThumbPath})
}

// ListSessions returns all sessions, newest first.
func (s *PhotoService) ListSessions(ctx context.Context) ([]database.SessionRecord, error) {
	return s.sessions.List(ctx)
}

// SessionDetail returns a consistent snapshot of the session and its children.
func (s *PhotoService) SessionDetail(ctx context.Context, sessionID int64) (*database.SessionDetailRecord, error) {
	detail, err := s.sessions.Detail(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, database.ErrNotFound
	}
	return detail, nil
}

// StorageUsed reports the total bytes held by the blob store.
func (s *PhotoService) StorageUsed() (int64, error) {
	return s.blobs.TotalBytesUsed()
}

// SweepResult summarises one reconciliation pass.
type SweepResult struct {
	Scanned int
	Removed int
	Failed  []string
}

// Sweep removes blobs with zero referencing photo rows. Orphans are the
// expected debris of the write-blob-then-row ordering and of best-effort
// deletes; the sweep is the companion that keeps them bounded.
func (s *PhotoService) Sweep(ctx context.Context) (SweepResult, error) {
	paths, err := s.photos.AllBlobPaths(ctx)
	if err != nil {
		return SweepResult{}, err
	}
	referenced := make(map[string]bool, len(paths))
	for _, p := range paths {
		referenced[p] = true
	}

	var result SweepResult
	err = s.blobs.Walk(func(path string, _ fs.FileInfo) error {
		result.Scanned++
		if referenced[path] {
			return nil
		}
		if _, err := s.blobs.Delete(blobstore.BlobRef{Path: path}); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("failed to remove orphan blob")
			result.Failed = append(result.Failed, path)
			return nil
		}
		result.Removed++
		return nil
	})
	if err != nil {
		return result, err
	}

	s.log.Info().Int("scanned", result.Scanned).Int("removed", result.Removed).
		Int("failed", len(result.Failed)).Msg("orphan blob sweep finished")
	return result, nil
}

// DeleteAll wipes every session row and every stored blob. Slots survive.
func (s *PhotoService) DeleteAll(ctx context.Context, dbCtx *database.Context) error {
	if err := database.ClearDatabase(dbCtx); err != nil {
		return err
	}
	return s.blobs.Walk(func(path string, _ fs.FileInfo) error {
		if _, err := s.blobs.Delete(blobstore.BlobRef{Path: path}); err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("failed to remove blob during reset")
		}
		return nil
	})
}

func (s *PhotoService) deleteBlob(path string, photoID int64) {
	existed, err := s.blobs.Delete(blobstore.BlobRef{Path: path})
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Int64("photo_id", photoID).
			Msg("failed to delete blob")
		return
	}
	if !existed {
		s.log.Warn().Str("path", path).Int64("photo_id", photoID).
			Msg("blob already missing on delete")
	}
}

func (s *PhotoService) recount(ctx context.Context, sessionID int64) error {
	count, err := s.sessions.PhotoCount(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("recount photos: %w", err)
	}
	if err := s.sessions.UpdatePhotoCount(ctx, sessionID, count); err != nil {
		return fmt.Errorf("update photo count: %w", err)
	}
	return nil
}
