// Package blobstore stores encrypted photo and thumbnail payloads on disk.
//
// The store knows nothing about sessions or slots; callers hand it payload
// bytes and a deterministic logical name and get back an absolute path.
package blobstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/bodyvault/bodyvault/internal/keyring"
)

var (
	// ErrNotFound indicates the referenced blob file no longer exists. A photo
	// row pointing at a missing blob is data corruption, not a generic I/O
	// failure, and callers surface it distinctly.
	ErrNotFound = errors.New("blobstore: blob not found")

	// ErrLocked indicates the keyring has not been unlocked.
	ErrLocked = errors.New("blobstore: storage locked")
)

// BlobRef is a handle to one encrypted file.
type BlobRef struct {
	Path string
}

// Store writes and reads AES-GCM encrypted files in two flat directories, one
// for full photos and one for thumbnails.
type Store struct {
	photosDir string
	thumbsDir string
	keys      *keyring.Keyring
	log       zerolog.Logger
}

// New creates the photo and thumbnail directories and returns a store bound to
// the given keyring.
func New(photosDir, thumbsDir string, keys *keyring.Keyring, log zerolog.Logger) (*Store, error) {
	for _, dir := range []string{photosDir, thumbsDir} {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("blobstore: create %s: %w", dir, err)
		}
	}
	return &Store{
		photosDir: photosDir,
		thumbsDir: thumbsDir,
		keys:      keys,
		log:       log,
	}, nil
}

// PhotoName builds the deterministic file name for a full-resolution photo.
func PhotoName(sessionID, slotID int64, at time.Time) string {
	return fmt.Sprintf("photo_%d_%d_%d.enc", sessionID, slotID, at.UnixMilli())
}

// ThumbName builds the deterministic file name for a thumbnail.
func ThumbName(sessionID, slotID int64, at time.Time) string {
	return fmt.Sprintf("thumb_%d_%d_%d.enc", sessionID, slotID, at.UnixMilli())
}

// Put encrypts data and writes it into the photos directory under name.
func (s *Store) Put(data []byte, name string) (BlobRef, error) {
	return s.write(s.photosDir, name, data)
}

// PutThumbnail encrypts data and writes it into the thumbnails directory.
// Callers are expected to pass already-downscaled JPEG bytes.
func (s *Store) PutThumbnail(data []byte, name string) (BlobRef, error) {
	return s.write(s.thumbsDir, name, data)
}

// write seals the payload and lands it under its final name via a temp file
// rename, so a partially-written blob is never visible at the target path.
func (s *Store) write(dir, name string, data []byte) (BlobRef, error) {
	if !s.keys.Unlocked() {
		return BlobRef{}, ErrLocked
	}

	sealed, err := s.keys.Seal(data)
	if err != nil {
		return BlobRef{}, fmt.Errorf("blobstore: seal: %w", err)
	}

	final := filepath.Join(dir, name)
	tmp := final + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return BlobRef{}, fmt.Errorf("blobstore: write: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return BlobRef{}, fmt.Errorf("blobstore: rename: %w", err)
	}

	return BlobRef{Path: final}, nil
}

// Get decrypts and returns the blob's plaintext bytes.
func (s *Store) Get(ref BlobRef) ([]byte, error) {
	if !s.keys.Unlocked() {
		return nil, ErrLocked
	}

	sealed, err := os.ReadFile(ref.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("blobstore: read: %w", err)
	}

	plain, err := s.keys.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("blobstore: open %s: %w", filepath.Base(ref.Path), err)
	}
	return plain, nil
}

// Delete removes the blob file. Deleting a nonexistent blob is not an error
// and reports false.
func (s *Store) Delete(ref BlobRef) (bool, error) {
	if !s.keys.Unlocked() {
		return false, ErrLocked
	}

	if err := os.Remove(ref.Path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("blobstore: delete: %w", err)
	}
	return true, nil
}

// TotalBytesUsed sums file sizes across the photo and thumbnail directories.
// It walks the directories on every call; the storage view does not need low
// latency.
func (s *Store) TotalBytesUsed() (int64, error) {
	var total int64
	err := s.Walk(func(_ string, info fs.FileInfo) error {
		total += info.Size()
		return nil
	})
	return total, err
}

// Walk visits every stored blob file across both directories.
func (s *Store) Walk(fn func(path string, info fs.FileInfo) error) error {
	for _, dir := range []string{s.photosDir, s.thumbsDir} {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("blobstore: walk %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				return err
			}
			if err := fn(filepath.Join(dir, entry.Name()), info); err != nil {
				return err
			}
		}
	}
	return nil
}
