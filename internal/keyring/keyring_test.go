package keyring

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrCreateSalt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.salt")

	salt, err := LoadOrCreateSalt(path)
	require.NoError(t, err)
	require.Len(t, salt, saltLen)

	again, err := LoadOrCreateSalt(path)
	require.NoError(t, err)
	assert.Equal(t, salt, again)
}

func TestSealOpenRoundTrip(t *testing.T) {
	salt, err := LoadOrCreateSalt(filepath.Join(t.TempDir(), "key.salt"))
	require.NoError(t, err)

	k := New()
	require.NoError(t, k.Unlock("correct horse", salt))
	require.True(t, k.Unlocked())

	plain := []byte("upright jpeg bytes")
	sealed, err := k.Seal(plain)
	require.NoError(t, err)
	assert.NotEqual(t, plain, sealed)

	opened, err := k.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plain, opened)
}

func TestOpenWithWrongPassphraseFails(t *testing.T) {
	salt, err := LoadOrCreateSalt(filepath.Join(t.TempDir(), "key.salt"))
	require.NoError(t, err)

	k := New()
	require.NoError(t, k.Unlock("first", salt))
	sealed, err := k.Seal([]byte("secret"))
	require.NoError(t, err)

	other := New()
	require.NoError(t, other.Unlock("second", salt))
	_, err = other.Open(sealed)
	assert.Error(t, err)
}

func TestLockedKeyringRefusesOperations(t *testing.T) {
	k := New()

	_, err := k.Seal([]byte("data"))
	assert.ErrorIs(t, err, ErrLocked)

	_, err = k.Open([]byte("data"))
	assert.ErrorIs(t, err, ErrLocked)
}

func TestLockDropsKeyMaterial(t *testing.T) {
	salt, err := LoadOrCreateSalt(filepath.Join(t.TempDir(), "key.salt"))
	require.NoError(t, err)

	k := New()
	require.NoError(t, k.Unlock("pass", salt))
	require.True(t, k.Unlocked())

	k.Lock()
	assert.False(t, k.Unlocked())

	_, err = k.Seal([]byte("data"))
	assert.ErrorIs(t, err, ErrLocked)
}

func TestUnlockRejectsEmptyPassphrase(t *testing.T) {
	salt := make([]byte, saltLen)
	assert.Error(t, New().Unlock("", salt))
}
