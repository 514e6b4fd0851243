package app

import (
	"testing"
	"time"
)

func TestNewRun(t *testing.T) {
	start := time.Date(2024, 6, 15, 14, 30, 45, 0, time.UTC)
	run := NewRun("apply", start)

	if run.ID != "20240615T143045Z" {
		t.Errorf("ID = %q, want %q", run.ID, "20240615T143045Z")
	}
	if run.Command != "apply" {
		t.Errorf("Command = %q, want %q", run.Command, "apply")
	}
	if run.Status != "success" {
		t.Errorf("Status = %q, want %q", run.Status, "success")
	}
	if got := run.Elapsed(start.Add(2 * time.Second)); got != 2*time.Second {
		t.Errorf("Elapsed() = %v, want 2s", got)
	}

	run.Fail()
	if run.Status != "error" {
		t.Errorf("Status after Fail() = %q, want %q", run.Status, "error")
	}
}
