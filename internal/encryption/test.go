package encryption

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"jobboard/internal/board"
)

// testMagic marks entries written by TestEncryptor.
var testMagic = []byte("JBENC\x00\x00\x01")

// TestEncryptor is a deterministic stand-in for AgeEncryptor: it prefixes
// data with testMagic and XORs each byte with 0x5a, so ciphertext never
// equals plaintext but no keys are needed. After Setup, Unlock only accepts
// the same passphrase.
type TestEncryptor struct {
	mu         sync.Mutex
	passphrase string
	configured bool
}

var _ board.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.passphrase = passphrase
	e.configured = true
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(testMagic); err != nil {
		return fmt.Errorf("writing test header: %w", err)
	}
	if _, err := io.Copy(w, &xorReader{r: r}); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (board.DecryptionContext, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.configured && passphrase != e.passphrase {
		return nil, ErrWrongPassphrase
	}
	return &TestDecryptionContext{}, nil
}

// IsConfigured is always true: the test encryptor needs no key files.
func (e *TestEncryptor) IsConfigured() bool {
	return true
}

// TestDecryptionContext reverses TestEncryptor.Encrypt.
type TestDecryptionContext struct{}

var _ board.DecryptionContext = (*TestDecryptionContext)(nil)

func (c *TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	header := make([]byte, len(testMagic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("reading test header: %w", err)
	}
	if !bytes.Equal(header, testMagic) {
		return fmt.Errorf("invalid test encryption header")
	}
	if _, err := io.Copy(w, &xorReader{r: r}); err != nil {
		return fmt.Errorf("copying data: %w", err)
	}
	return nil
}

type xorReader struct {
	r io.Reader
}

func (x *xorReader) Read(p []byte) (int, error) {
	n, err := x.r.Read(p)
	for i := 0; i < n; i++ {
		p[i] ^= 0x5a
	}
	return n, err
}
