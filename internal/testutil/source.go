package testutil

import (
	"context"
	"sync"

	"jobboard/internal/board"
	"jobboard/internal/model"
)

// FakeJobSource returns canned jobs, or Err when set. It records each query.
type FakeJobSource struct {
	mu      sync.Mutex
	Jobs    []model.Job
	Err     error
	queries []FetchCall
}

// FetchCall is one recorded FetchJobs call.
type FetchCall struct {
	Query    string
	Location string
}

var _ board.JobSource = (*FakeJobSource)(nil)

func (f *FakeJobSource) FetchJobs(ctx context.Context, query, location string) ([]model.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, FetchCall{Query: query, Location: location})
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]model.Job, len(f.Jobs))
	copy(out, f.Jobs)
	return out, nil
}

// Calls returns the recorded FetchJobs calls.
func (f *FakeJobSource) Calls() []FetchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FetchCall, len(f.queries))
	copy(out, f.queries)
	return out
}

// ExternalJob builds a fetched job with the given id and title.
func ExternalJob(id, title string) model.Job {
	return model.Job{
		ID:          id,
		Title:       title,
		Company:     "Remote Co",
		Location:    "Remote",
		Type:        "FULLTIME",
		Description: "Fetched listing.",
		PostedDate:  FixedClock().Now(),
		IsExternal:  true,
		ApplyLink:   "https://example.com/" + id,
	}
}
