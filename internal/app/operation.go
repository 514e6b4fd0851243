package app

import "time"

// Run tracks one CLI command from start to finish so its outcome can be
// logged with its duration.
type Run struct {
	ID      string
	Command string
	Started time.Time
	Status  string // "success" or "error"
}

// NewRun creates a run for command that started at now. The ID doubles as
// the log correlation id.
func NewRun(command string, now time.Time) *Run {
	return &Run{
		ID:      now.UTC().Format("20060102T150405Z"),
		Command: command,
		Started: now,
		Status:  "success",
	}
}

// Fail marks the run as failed.
func (r *Run) Fail() {
	r.Status = "error"
}

// Elapsed returns the time since the run started.
func (r *Run) Elapsed(now time.Time) time.Duration {
	return now.Sub(r.Started)
}
