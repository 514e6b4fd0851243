package board

import (
	"strings"

	"jobboard/internal/model"
)

// Login starts a session for an existing user.
// Email and password are trimmed before checking.
func (s *State) Login(email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if err := s.checkCredentials(email, password); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[email]
	if !ok || user.PasswordHash != HashPassword(password) {
		s.logger.Warn("login rejected", "email", email)
		return model.User{}, newError(CodeInvalidCredentials, MsgInvalidCredentials)
	}

	snap := s.snapshot()
	s.currentUser = email
	if err := s.commit(snap); err != nil {
		return model.User{}, err
	}

	s.logger.Info("user logged in", "email", email)
	return user, nil
}

// Signup registers a new user named after the local part of the email and
// starts a session for them. An existing user is never overwritten.
func (s *State) Signup(email, password string) (model.User, error) {
	email = strings.TrimSpace(email)
	password = strings.TrimSpace(password)
	if err := s.checkCredentials(email, password); err != nil {
		return model.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[email]; exists {
		return model.User{}, newError(CodeAlreadyExists, MsgEmailRegistered)
	}

	user := model.User{
		Email:        email,
		PasswordHash: HashPassword(password),
		Name:         localPart(email),
	}

	snap := s.snapshot()
	s.users[email] = user
	s.currentUser = email
	if err := s.commit(snap); err != nil {
		return model.User{}, err
	}

	s.logger.Info("user signed up", "email", email)
	return user, nil
}

// Logout ends the session. Confirming with the user is the caller's job.
func (s *State) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.currentUser
	snap := s.snapshot()
	s.currentUser = ""
	if err := s.commit(snap); err != nil {
		return err
	}

	if previous != "" {
		s.logger.Info("user logged out", "email", previous)
	}
	return nil
}

// CurrentUser returns the session email and whether anyone is signed in.
func (s *State) CurrentUser() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentUser, s.currentUser != ""
}

// User returns the registered user for email.
func (s *State) User(email string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[email]
	return user, ok
}

// DisplayName returns the signed-in user's name, falling back to the local
// part of the session email. It is empty without a session.
func (s *State) DisplayName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayNameLocked()
}

func (s *State) displayNameLocked() string {
	if s.currentUser == "" {
		return ""
	}
	if user, ok := s.users[s.currentUser]; ok && user.Name != "" {
		return user.Name
	}
	return localPart(s.currentUser)
}

// RequireSession fails with CodeUnauthorized when no one is signed in.
func (s *State) RequireSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentUser == "" {
		return newError(CodeUnauthorized, MsgLoginRequired)
	}
	return nil
}

// ApplyDefaults pre-fills the applicant name and email for jobID from the
// signed-in user. Both stay empty when the session has no registered user.
func (s *State) ApplyDefaults(jobID string) model.ApplicationForm {
	s.mu.Lock()
	defer s.mu.Unlock()

	form := model.ApplicationForm{JobID: jobID}
	if _, ok := s.users[s.currentUser]; ok {
		form.Name = s.displayNameLocked()
		form.Email = s.currentUser
	}
	return form
}

func (s *State) checkCredentials(email, password string) error {
	if !s.validator.IsEmail(email) {
		return newError(CodeValidation, MsgInvalidEmail)
	}
	if !s.validator.IsPassword(password) {
		return newError(CodeValidation, MsgShortPassword)
	}
	return nil
}
