package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"jobboard/internal/board"
	"jobboard/internal/encryption"
)

// runStoreContract exercises the behaviour every board.Store must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) board.Store) {
	t.Run("missing key is not found", func(t *testing.T) {
		s := newStore(t)
		value, found, err := s.Get("jobs")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if found || value != "" {
			t.Errorf("Get() = (%q, %v), want (\"\", false)", value, found)
		}
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStore(t)
		tests := []struct {
			key   string
			value string
		}{
			{key: "jobs", value: `[{"id":"1","title":"Registered Nurse"}]`},
			{key: "users", value: `{}`},
			{key: "currentUser", value: `"jane@example.com"`},
			{key: "applications", value: ""},
			{key: "jobs", value: strings.Repeat("x", 10000)},
		}
		for _, tt := range tests {
			if err := s.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q) error = %v", tt.key, err)
			}
			got, found, err := s.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if !found {
				t.Fatalf("Get(%q) not found after Set", tt.key)
			}
			if got != tt.value {
				t.Errorf("Get(%q) = %d bytes, want %d bytes", tt.key, len(got), len(tt.value))
			}
		}
	})

	t.Run("remove", func(t *testing.T) {
		s := newStore(t)
		if err := s.Set("currentUser", `"a@b.co"`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		if err := s.Remove("currentUser"); err != nil {
			t.Fatalf("Remove() error = %v", err)
		}
		if _, found, _ := s.Get("currentUser"); found {
			t.Error("Get() found removed key")
		}
		if err := s.Remove("currentUser"); err != nil {
			t.Errorf("Remove() of missing key error = %v", err)
		}
	})

	t.Run("keys are independent", func(t *testing.T) {
		s := newStore(t)
		s.Set("jobs", "[1]")
		s.Set("applications", "[2]")
		s.Remove("jobs")

		got, found, err := s.Get("applications")
		if err != nil || !found || got != "[2]" {
			t.Errorf("Get(applications) = (%q, %v, %v), want ([2], true, nil)", got, found, err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) board.Store {
		return NewMemoryStore()
	})
}

func TestFileSystemStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) board.Store {
		s, err := NewFileSystemStore(filepath.Join(t.TempDir(), "store"))
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		return s
	})

	t.Run("one file per key", func(t *testing.T) {
		root := t.TempDir()
		s, err := NewFileSystemStore(root)
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		if err := s.Set("jobs", "[]"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		data, err := os.ReadFile(filepath.Join(root, "jobs.json"))
		if err != nil {
			t.Fatalf("reading jobs.json: %v", err)
		}
		if string(data) != "[]" {
			t.Errorf("jobs.json = %q, want []", data)
		}

		entries, _ := os.ReadDir(root)
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".tmp-") {
				t.Errorf("temp file left behind: %s", e.Name())
			}
		}
	})

	t.Run("rejects unsafe keys", func(t *testing.T) {
		s, err := NewFileSystemStore(t.TempDir())
		if err != nil {
			t.Fatalf("NewFileSystemStore() error = %v", err)
		}
		for _, key := range []string{"", "../etc/passwd", "a/b", "a.b"} {
			if err := s.Set(key, "x"); err == nil {
				t.Errorf("Set(%q) expected error", key)
			}
		}
	})
}

func TestEncryptedStore(t *testing.T) {
	enc := encryption.NewTestEncryptor()

	runStoreContract(t, func(t *testing.T) board.Store {
		dctx, err := enc.Unlock("")
		if err != nil {
			t.Fatalf("Unlock() error = %v", err)
		}
		return NewEncryptedStore(NewMemoryStore(), enc, dctx)
	})

	t.Run("inner store holds armored ciphertext", func(t *testing.T) {
		inner := NewMemoryStore()
		dctx, _ := enc.Unlock("")
		s := NewEncryptedStore(inner, enc, dctx)

		if err := s.Set("users", `{"a@b.co":{}}`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		raw, _, _ := inner.Get("users")
		if !strings.HasPrefix(raw, "-----BEGIN AGE ENCRYPTED FILE-----") {
			t.Errorf("inner value is not armored: %q", raw)
		}
		if strings.Contains(raw, "a@b.co") {
			t.Error("inner value contains plaintext")
		}
	})

	t.Run("locked store cannot read", func(t *testing.T) {
		inner := NewMemoryStore()
		s := NewEncryptedStore(inner, enc, nil)

		if err := s.Set("jobs", "[]"); err != nil {
			t.Fatalf("Set() on locked store error = %v", err)
		}
		if _, _, err := s.Get("jobs"); err != ErrLocked {
			t.Errorf("Get() error = %v, want ErrLocked", err)
		}
		// Missing keys do not need the key.
		if _, found, err := s.Get("users"); err != nil || found {
			t.Errorf("Get(missing) = (%v, %v), want (false, nil)", found, err)
		}
	})
}
