package testutil

import (
	"strconv"
	"sync"
	"time"

	"jobboard/internal/board"
)

// SeedTime is the instant test boards are created at.
var SeedTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// StubClock is a board.Clock that only moves when told to.
type StubClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ board.Clock = (*StubClock)(nil)

func NewStubClock(t time.Time) *StubClock {
	return &StubClock{now: t}
}

// FixedClock returns a StubClock at SeedTime.
func FixedClock() *StubClock {
	return NewStubClock(SeedTime)
}

func (c *StubClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d, e.g. past a submission delay.
func (c *StubClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// StubIDGenerator hands out job and application ids "id-1", "id-2", ...
type StubIDGenerator struct {
	mu   sync.Mutex
	next int
}

var _ board.IDGenerator = (*StubIDGenerator)(nil)

func NewStubIDGenerator() *StubIDGenerator {
	return &StubIDGenerator{}
}

func (g *StubIDGenerator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return "id-" + strconv.Itoa(g.next)
}
