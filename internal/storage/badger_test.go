package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard/internal/board"
)

func TestBadgerStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T) board.Store {
		s, err := NewInMemoryBadgerStore()
		require.NoError(t, err)
		t.Cleanup(func() { s.Close() })
		return s
	})
}

func TestBadgerStore_Reopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewBadgerStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set("users", `{"a@b.co":{"email":"a@b.co"}}`))
	require.NoError(t, s.Close())

	reopened, err := NewBadgerStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	value, found, err := reopened.Get("users")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"a@b.co":{"email":"a@b.co"}}`, value)
}
