package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"jobboard/internal/model"
	"jobboard/internal/validation"
)

// State is the single source of truth for the board: it owns the jobs,
// applications, users and session collections plus the derived filtered view.
// Every mutation is persisted to the Store before it returns.
//
// A State is safe for concurrent use, although the board itself is driven by
// one caller at a time.
type State struct {
	mu        sync.Mutex
	store     Store
	source    JobSource
	validator *validation.Validator
	logger    Logger
	clock     Clock
	idgen     IDGenerator

	jobs         []model.Job
	applications []model.Application
	users        map[string]model.User
	currentUser  string

	criteria    model.Criteria
	filtered    []model.Job
	currentPage int
}

// NewState creates a State with the provided dependencies.
// source may be nil when no external job source is configured.
// Call Initialize before using it.
func NewState(store Store, source JobSource, logger Logger, clock Clock, idgen IDGenerator) *State {
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}
	return &State{
		store:        store,
		source:       source,
		validator:    validation.New(),
		logger:       logger,
		clock:        clock,
		idgen:        idgen,
		jobs:         []model.Job{},
		applications: []model.Application{},
		users:        map[string]model.User{},
		filtered:     []model.Job{},
		currentPage:  1,
	}
}

// Initialize loads all collections from the store, seeds sample data into a
// fresh board, resets the view to the full job list and persists.
// Calling it again on a populated store reloads identical state.
func (s *State) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}

	now := s.clock.Now().UTC()
	if len(s.jobs) == 0 {
		s.jobs = sampleJobs(now)
		s.logger.Info("seeded sample jobs", "count", len(s.jobs))
	}
	if len(s.applications) == 0 && s.currentUser != "" {
		s.applications = sampleApplications(s.currentUser, now)
		s.logger.Info("seeded sample application", "user", s.currentUser)
	}

	s.criteria = model.Criteria{}
	s.filtered = slices.Clone(s.jobs)
	s.currentPage = 1

	if err := s.persist(); err != nil {
		return err
	}
	s.logger.Debug("board initialized", "jobs", len(s.jobs), "applications", len(s.applications), "users", len(s.users))
	return nil
}

// Persist writes all four collections to the store. It is safe to call
// redundantly.
func (s *State) Persist() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist()
}

// Reset removes every persisted entry and clears the in-memory collections.
func (s *State) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{model.KeyJobs, model.KeyApplications, model.KeyUsers, model.KeyCurrentUser} {
		if err := s.store.Remove(key); err != nil {
			return fmt.Errorf("removing %s: %w", key, err)
		}
	}

	s.jobs = []model.Job{}
	s.applications = []model.Application{}
	s.users = map[string]model.User{}
	s.currentUser = ""
	s.criteria = model.Criteria{}
	s.filtered = []model.Job{}
	s.currentPage = 1

	s.logger.Info("board reset")
	return nil
}

// Jobs returns a copy of the full jobs collection, newest first.
func (s *State) Jobs() []model.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.jobs)
}

// Job returns the job with the given id.
func (s *State) Job(id string) (model.Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.findJob(id)
	if !ok {
		return model.Job{}, newError(CodeNotFound, MsgJobNotFound)
	}
	return job, nil
}

// Applications returns a copy of every application, newest first.
func (s *State) Applications() []model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.applications)
}

// MyApplications returns the applications submitted with the session email.
// It is empty when no one is signed in.
func (s *State) MyApplications() []model.Application {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []model.Application{}
	if s.currentUser == "" {
		return out
	}
	for _, app := range s.applications {
		if app.ApplicantEmail == s.currentUser {
			out = append(out, app)
		}
	}
	return out
}

// Application returns the application with the given id.
func (s *State) Application(id string) (model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, app := range s.applications {
		if app.ID == id {
			return app, nil
		}
	}
	return model.Application{}, newError(CodeNotFound, MsgApplicationMissing)
}

func (s *State) findJob(id string) (model.Job, bool) {
	for _, job := range s.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return model.Job{}, false
}

// load replaces the in-memory collections with the stored ones.
// Missing entries load as empty collections.
func (s *State) load() error {
	jobs := []model.Job{}
	if err := s.loadJSON(model.KeyJobs, &jobs); err != nil {
		return err
	}
	applications := []model.Application{}
	if err := s.loadJSON(model.KeyApplications, &applications); err != nil {
		return err
	}
	users := map[string]model.User{}
	if err := s.loadJSON(model.KeyUsers, &users); err != nil {
		return err
	}

	raw, found, err := s.store.Get(model.KeyCurrentUser)
	if err != nil {
		return fmt.Errorf("loading %s: %w", model.KeyCurrentUser, err)
	}
	currentUser := ""
	if found {
		// Older boards stored the bare email rather than a JSON string.
		if err := json.Unmarshal([]byte(raw), &currentUser); err != nil {
			currentUser = raw
		}
	}

	// A JSON null decodes to a nil slice or map.
	if jobs == nil {
		jobs = []model.Job{}
	}
	if applications == nil {
		applications = []model.Application{}
	}
	if users == nil {
		users = map[string]model.User{}
	}

	s.jobs = jobs
	s.applications = applications
	s.users = users
	s.currentUser = currentUser
	return nil
}

func (s *State) loadJSON(key string, v any) error {
	raw, found, err := s.store.Get(key)
	if err != nil {
		return fmt.Errorf("loading %s: %w", key, err)
	}
	if !found || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

// persist writes each collection as its own entry. The session entry is
// removed rather than written when no one is signed in.
func (s *State) persist() error {
	entries := []struct {
		key   string
		value any
	}{
		{model.KeyJobs, s.jobs},
		{model.KeyApplications, s.applications},
		{model.KeyUsers, s.users},
	}
	for _, e := range entries {
		data, err := json.Marshal(e.value)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", e.key, err)
		}
		if err := s.store.Set(e.key, string(data)); err != nil {
			return fmt.Errorf("saving %s: %w", e.key, err)
		}
	}

	if s.currentUser == "" {
		if err := s.store.Remove(model.KeyCurrentUser); err != nil {
			return fmt.Errorf("removing %s: %w", model.KeyCurrentUser, err)
		}
		return nil
	}
	data, err := json.Marshal(s.currentUser)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", model.KeyCurrentUser, err)
	}
	if err := s.store.Set(model.KeyCurrentUser, string(data)); err != nil {
		return fmt.Errorf("saving %s: %w", model.KeyCurrentUser, err)
	}
	return nil
}

// snapshot captures the mutable state so a failed persist can be undone.
type snapshot struct {
	jobs         []model.Job
	applications []model.Application
	users        map[string]model.User
	currentUser  string
	criteria     model.Criteria
	filtered     []model.Job
	currentPage  int
}

func (s *State) snapshot() snapshot {
	users := make(map[string]model.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	return snapshot{
		jobs:         slices.Clone(s.jobs),
		applications: slices.Clone(s.applications),
		users:        users,
		currentUser:  s.currentUser,
		criteria:     s.criteria,
		filtered:     slices.Clone(s.filtered),
		currentPage:  s.currentPage,
	}
}

func (s *State) restore(snap snapshot) {
	s.jobs = snap.jobs
	s.applications = snap.applications
	s.users = snap.users
	s.currentUser = snap.currentUser
	s.criteria = snap.criteria
	s.filtered = snap.filtered
	s.currentPage = snap.currentPage
}

// commit persists after a mutation and rolls the mutation back when the
// write fails, so the store and memory never disagree.
func (s *State) commit(snap snapshot) error {
	if err := s.persist(); err != nil {
		s.restore(snap)
		if rerr := s.persist(); rerr != nil {
			return errors.Join(err, fmt.Errorf("restoring previous state: %w", rerr))
		}
		return err
	}
	return nil
}
