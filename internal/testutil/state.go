package testutil

import (
	"testing"

	"jobboard/internal/board"
)

// NewTestState creates an initialized State over store with a fixed clock and
// sequential ids. source may be nil.
func NewTestState(t *testing.T, store board.Store, source board.JobSource) *board.State {
	t.Helper()
	return NewTestStateWithClock(t, store, source, FixedClock())
}

// NewTestStateWithClock is NewTestState driven by clock.
func NewTestStateWithClock(t *testing.T, store board.Store, source board.JobSource, clock board.Clock) *board.State {
	t.Helper()
	state := board.NewState(store, source, board.NewNopLogger(), clock, NewStubIDGenerator())
	if err := state.Initialize(); err != nil {
		t.Fatalf("failed to initialize state: %v", err)
	}
	return state
}
