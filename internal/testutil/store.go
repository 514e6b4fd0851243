package testutil

import (
	"errors"
	"sync"
	"testing"

	"jobboard/internal/board"
	"jobboard/internal/storage"
)

// ErrStoreUnavailable is returned by a FailingStore once it starts failing.
var ErrStoreUnavailable = errors.New("store unavailable")

// NewTestStore creates an empty in-memory store that is closed when the
// test completes.
func NewTestStore(t *testing.T) *storage.MemoryStore {
	t.Helper()
	store := storage.NewMemoryStore()
	t.Cleanup(func() { store.Close() })
	return store
}

// FailingStore wraps a store and counts writes. Once FailWrites is called,
// every Set and Remove fails with ErrStoreUnavailable without reaching the
// inner store.
type FailingStore struct {
	inner board.Store

	mu      sync.Mutex
	failing bool
	writes  int
}

var _ board.Store = (*FailingStore)(nil)

func NewFailingStore(inner board.Store) *FailingStore {
	return &FailingStore{inner: inner}
}

// FailWrites makes subsequent writes fail.
func (s *FailingStore) FailWrites() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = true
}

// Recover lets writes through again.
func (s *FailingStore) Recover() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing = false
}

// Writes returns the number of Set and Remove calls that reached the inner store.
func (s *FailingStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *FailingStore) Get(key string) (string, bool, error) {
	return s.inner.Get(key)
}

func (s *FailingStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrStoreUnavailable
	}
	s.writes++
	return s.inner.Set(key, value)
}

func (s *FailingStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing {
		return ErrStoreUnavailable
	}
	s.writes++
	return s.inner.Remove(key)
}

func (s *FailingStore) Close() error {
	return s.inner.Close()
}
