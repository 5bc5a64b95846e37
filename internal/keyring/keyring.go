// Package keyring manages the vault master key derived from the user's passphrase.
//
// The key only ever lives in memory. Losing the passphrase makes every stored
// blob unrecoverable; there is no escrow.
package keyring

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
)

const (
	keyLen  = 32
	saltLen = 16

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// ErrLocked is returned when key material is required but the keyring has not
// been unlocked.
var ErrLocked = errors.New("keyring: locked")

// Keyring holds the derived master key between Unlock and Lock.
type Keyring struct {
	key []byte
}

// New returns a locked keyring.
func New() *Keyring {
	return &Keyring{}
}

// LoadOrCreateSalt reads the key-derivation salt from path, creating a new
// random one with restricted permissions on first use.
func LoadOrCreateSalt(path string) ([]byte, error) {
	if b, err := os.ReadFile(path); err == nil {
		if len(b) != saltLen {
			return nil, errors.New("keyring: invalid salt length")
		}
		return b, nil
	}

	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, salt, 0o600); err != nil {
		return nil, err
	}
	return salt, nil
}

// Unlock derives the master key from the passphrase and salt via argon2id.
func (k *Keyring) Unlock(passphrase string, salt []byte) error {
	if passphrase == "" {
		return errors.New("keyring: empty passphrase")
	}
	if len(salt) != saltLen {
		return errors.New("keyring: invalid salt length")
	}
	k.key = argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, keyLen)
	return nil
}

// Lock zeroes and drops the key material.
func (k *Keyring) Lock() {
	for i := range k.key {
		k.key[i] = 0
	}
	k.key = nil
}

// Unlocked reports whether key material is available.
func (k *Keyring) Unlocked() bool {
	return len(k.key) == keyLen
}

// Seal encrypts plain with AES-GCM under the master key. The nonce is
// prepended to the ciphertext.
func (k *Keyring) Seal(plain []byte) ([]byte, error) {
	gcm, err := k.gcm()
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

// Open decrypts a payload produced by Seal.
func (k *Keyring) Open(sealed []byte) ([]byte, error) {
	gcm, err := k.gcm()
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("keyring: ciphertext too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}

func (k *Keyring) gcm() (cipher.AEAD, error) {
	if !k.Unlocked() {
		return nil, ErrLocked
	}
	block, err := aes.NewCipher(k.key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
