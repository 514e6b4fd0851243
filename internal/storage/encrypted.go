package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"filippo.io/age/armor"

	"jobboard/internal/board"
)

// ErrLocked is returned when reading from an EncryptedStore that has no
// decryption context.
var ErrLocked = errors.New("store is locked: passphrase required")

// EncryptedStore encrypts every value before handing it to the wrapped store.
// Ciphertext is stored as ASCII armor so text-only backends can hold it.
// Writes only need the public key; reads need the DecryptionContext.
type EncryptedStore struct {
	inner     board.Store
	encryptor board.Encryptor
	dctx      board.DecryptionContext
}

// NewEncryptedStore wraps inner. dctx may be nil for a write-only store.
func NewEncryptedStore(inner board.Store, encryptor board.Encryptor, dctx board.DecryptionContext) *EncryptedStore {
	return &EncryptedStore{inner: inner, encryptor: encryptor, dctx: dctx}
}

func (s *EncryptedStore) Get(key string) (string, bool, error) {
	raw, found, err := s.inner.Get(key)
	if err != nil || !found {
		return "", found, err
	}
	if s.dctx == nil {
		return "", false, ErrLocked
	}

	var plain bytes.Buffer
	if err := s.dctx.Decrypt(armor.NewReader(strings.NewReader(raw)), &plain); err != nil {
		return "", false, fmt.Errorf("decrypting %s: %w", key, err)
	}
	return plain.String(), true, nil
}

func (s *EncryptedStore) Set(key, value string) error {
	var sealed bytes.Buffer
	w := armor.NewWriter(&sealed)
	if err := s.encryptor.Encrypt(strings.NewReader(value), w); err != nil {
		return fmt.Errorf("encrypting %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("armoring %s: %w", key, err)
	}
	return s.inner.Set(key, sealed.String())
}

func (s *EncryptedStore) Remove(key string) error {
	return s.inner.Remove(key)
}

func (s *EncryptedStore) Close() error {
	return s.inner.Close()
}

// Compile-time check that EncryptedStore implements board.Store interface
var _ board.Store = (*EncryptedStore)(nil)
