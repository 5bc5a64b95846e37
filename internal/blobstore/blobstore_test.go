package blobstore

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bodyvault/bodyvault/internal/keyring"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	salt, err := keyring.LoadOrCreateSalt(filepath.Join(t.TempDir(), "key.salt"))
	require.NoError(t, err)

	keys := keyring.New()
	require.NoError(t, keys.Unlock("test-passphrase", salt))

	base := t.TempDir()
	store, err := New(filepath.Join(base, "photos"), filepath.Join(base, "thumbnails"), keys, zerolog.Nop())
	require.NoError(t, err)
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	store := setupStore(t)
	plain := []byte("jpeg payload")

	ref, err := store.Put(plain, "photo_1_2_3.enc")
	require.NoError(t, err)
	require.FileExists(t, ref.Path)

	// Bytes on disk must not be the plaintext.
	onDisk, err := os.ReadFile(ref.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(onDisk), "jpeg payload")

	got, err := store.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, plain, got)
}

func TestPutLeavesNoTempFiles(t *testing.T) {
	store := setupStore(t)

	_, err := store.Put([]byte("one"), "photo_1_1_1.enc")
	require.NoError(t, err)
	_, err = store.PutThumbnail([]byte("two"), "thumb_1_1_1.enc")
	require.NoError(t, err)

	err = store.Walk(func(path string, _ fs.FileInfo) error {
		assert.False(t, strings.Contains(path, ".tmp-"), "temp file left behind: %s", path)
		return nil
	})
	require.NoError(t, err)
}

func TestGetMissingBlobIsNotFound(t *testing.T) {
	store := setupStore(t)

	_, err := store.Get(BlobRef{Path: filepath.Join(t.TempDir(), "gone.enc")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := setupStore(t)

	ref, err := store.Put([]byte("data"), "photo_9_9_9.enc")
	require.NoError(t, err)

	existed, err := store.Delete(ref)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = store.Delete(ref)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestTotalBytesUsed(t *testing.T) {
	store := setupStore(t)

	used, err := store.TotalBytesUsed()
	require.NoError(t, err)
	assert.Zero(t, used)

	_, err = store.Put([]byte("full resolution"), "photo_1_1_1.enc")
	require.NoError(t, err)
	_, err = store.PutThumbnail([]byte("thumb"), "thumb_1_1_1.enc")
	require.NoError(t, err)

	used, err = store.TotalBytesUsed()
	require.NoError(t, err)
	assert.Positive(t, used)
}

func TestLockedStoreRefusesBlobOperations(t *testing.T) {
	store := setupStore(t)
	ref, err := store.Put([]byte("data"), "photo_1_1_1.enc")
	require.NoError(t, err)

	store.keys.Lock()

	_, err = store.Put([]byte("data"), "photo_2_2_2.enc")
	assert.ErrorIs(t, err, ErrLocked)

	_, err = store.Get(ref)
	assert.ErrorIs(t, err, ErrLocked)

	_, err = store.Delete(ref)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestDeterministicNames(t *testing.T) {
	at := time.UnixMilli(1700000000000)
	assert.Equal(t, "photo_3_7_1700000000000.enc", PhotoName(3, 7, at))
	assert.Equal(t, "thumb_3_7_1700000000000.enc", ThumbName(3, 7, at))
}
