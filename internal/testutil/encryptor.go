package testutil

import (
	"jobboard/internal/board"
	"jobboard/internal/encryption"
)

// NewTestEncryptor creates a keyless encryptor for tests.
func NewTestEncryptor() board.Encryptor {
	return encryption.NewTestEncryptor()
}
