// Package filter computes filtered and paginated views over a job collection.
// Every function is pure: the same inputs always produce the same outputs.
package filter

import (
	"strings"

	"jobboard/internal/model"
)

// PageSize is the fixed number of jobs shown per page.
const PageSize = 5

// Jobs returns the subsequence of jobs matching all three predicates in c,
// preserving the original order. An empty predicate matches every job.
//   - Search matches title, company or location (case-insensitive substring).
//   - Location matches location (case-insensitive substring).
//   - Type matches type exactly, ignoring case.
func Jobs(jobs []model.Job, c model.Criteria) []model.Job {
	search := strings.ToLower(c.Search)
	location := strings.ToLower(c.Location)
	jobType := strings.ToLower(c.Type)

	out := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if Matches(job, search, location, jobType) {
			out = append(out, job)
		}
	}
	return out
}

// Matches reports whether a job satisfies the lower-cased predicates.
func Matches(job model.Job, search, location, jobType string) bool {
	if search != "" &&
		!strings.Contains(strings.ToLower(job.Title), search) &&
		!strings.Contains(strings.ToLower(job.Company), search) &&
		!strings.Contains(strings.ToLower(job.Location), search) {
		return false
	}
	if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
		return false
	}
	if jobType != "" && strings.ToLower(job.Type) != jobType {
		return false
	}
	return true
}

// Page returns the jobs on the given 1-based page. A page outside the range
// yields an empty slice, never an error.
func Page(jobs []model.Job, page, size int) []model.Job {
	if page < 1 || size < 1 {
		return []model.Job{}
	}
	start := (page - 1) * size
	if start >= len(jobs) {
		return []model.Job{}
	}
	end := min(start+size, len(jobs))
	out := make([]model.Job, end-start)
	copy(out, jobs[start:end])
	return out
}

// TotalPages returns ceil(count/size), which is 0 for an empty view.
func TotalPages(count, size int) int {
	if count <= 0 || size < 1 {
		return 0
	}
	return (count + size - 1) / size
}
