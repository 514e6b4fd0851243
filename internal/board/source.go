package board

import (
	"context"

	"jobboard/internal/model"
)

// JobSource fetches job listings from a remote search service.
// Returned jobs are already normalized: IsExternal is set and ApplyLink populated.
type JobSource interface {
	FetchJobs(ctx context.Context, query, location string) ([]model.Job, error)
}
