package board

import (
	"context"
	"errors"
	"slices"
	"strings"

	"jobboard/internal/filter"
	"jobboard/internal/model"
)

var errNoSource = errors.New("no external job source configured")

// FilterJobs recomputes the filtered view from the full job collection and
// returns to page 1. The criteria are remembered for Refilter.
func (s *State) FilterJobs(c model.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filterLocked(c)
}

// Refilter reapplies the last criteria without changing the current page.
func (s *State) Refilter() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtered = filter.Jobs(s.jobs, s.criteria)
}

func (s *State) filterLocked(c model.Criteria) {
	s.criteria = c
	s.filtered = filter.Jobs(s.jobs, c)
	s.currentPage = 1
}

// Criteria returns the criteria of the last filter.
func (s *State) Criteria() model.Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// FilteredJobs returns a copy of the current filtered view.
func (s *State) FilteredJobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.filtered)
}

// PaginatedJobs returns the jobs on the current page. A page past the end of
// the filtered view is empty.
func (s *State) PaginatedJobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.Page(s.filtered, s.currentPage, filter.PageSize)
}

// TotalPages returns the page count of the filtered view, 0 when it is empty.
func (s *State) TotalPages() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filter.TotalPages(len(s.filtered), filter.PageSize)
}

func (s *State) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage
}

// SetPage moves to page n. Pages past the last one are accepted and render
// empty; the page is not clamped to the filtered view.
func (s *State) SetPage(n int) error {
	if n < 1 {
		return newError(CodeValidation, MsgInvalidPage)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentPage = n
	return nil
}

// NextPage advances one page if there is a later page. It reports whether the
// page changed.
func (s *State) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage >= filter.TotalPages(len(s.filtered), filter.PageSize) {
		return false
	}
	s.currentPage++
	return true
}

// PrevPage goes back one page unless already on page 1. It reports whether
// the page changed.
func (s *State) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentPage <= 1 {
		return false
	}
	s.currentPage--
	return true
}

// PostJob validates the posting and prepends a new local job posted by the
// signed-in user, if any. The filtered view is not recomputed; callers
// refilter to make the job visible.
func (s *State) PostJob(p model.JobPosting) (model.Job, error) {
	p = model.JobPosting{
		Title:       strings.TrimSpace(p.Title),
		Company:     strings.TrimSpace(p.Company),
		Location:    strings.TrimSpace(p.Location),
		Type:        strings.TrimSpace(p.Type),
		Description: strings.TrimSpace(p.Description),
	}
	if err := s.validator.Posting(p); err != nil {
		return model.Job{}, wrapError(CodeValidation, MsgFillAllFields, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var postedBy *string
	if s.currentUser != "" {
		postedBy = strPtr(s.currentUser)
	}
	job := model.Job{
		ID:          s.idgen.New(),
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		Type:        p.Type,
		Description: p.Description,
		PostedBy:    postedBy,
		PostedDate:  s.clock.Now().UTC(),
		IsExternal:  false,
	}

	snap := s.snapshot()
	s.jobs = append([]model.Job{job}, s.jobs...)
	if err := s.commit(snap); err != nil {
		return model.Job{}, err
	}

	s.logger.Info("job posted", "id", job.ID, "title", job.Title, "company", job.Company)
	return job, nil
}

// FetchExternalJobs replaces every previously fetched external job with a
// fresh batch from the job source, placed before the local jobs, then resets
// the filter. On failure the collections are left untouched and the error
// carries CodeExternalSource.
func (s *State) FetchExternalJobs(ctx context.Context, query, location string) (int, error) {
	if s.source == nil {
		return 0, wrapError(CodeExternalSource, MsgFetchFailed, errNoSource)
	}

	fetched, err := s.source.FetchJobs(ctx, query, location)
	if err != nil {
		s.logger.Warn("external fetch failed", "query", query, "location", location, "error", err)
		return 0, wrapError(CodeExternalSource, MsgFetchFailed, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]model.Job, 0, len(fetched)+len(s.jobs))
	for _, job := range fetched {
		job.IsExternal = true
		merged = append(merged, job)
	}
	for _, job := range s.jobs {
		if !job.IsExternal {
			merged = append(merged, job)
		}
	}

	snap := s.snapshot()
	s.jobs = merged
	s.filterLocked(model.Criteria{})
	if err := s.commit(snap); err != nil {
		s.logger.Warn("external merge not saved", "error", err)
		return 0, wrapError(CodeExternalSource, MsgFetchFailed, err)
	}

	s.logger.Info("external jobs merged", "query", query, "location", location, "count", len(fetched))
	return len(fetched), nil
}

// HasSource reports whether an external job source is configured.
func (s *State) HasSource() bool {
	return s.source != nil
}
