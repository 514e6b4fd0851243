package board

import (
	"context"
	"strings"
	"time"

	"jobboard/internal/model"
)

// Apply validates the form and records a new application for the job.
// Checks run in order: required fields, email format, resume type, resume
// size, and finally the job lookup. The first failure is returned and
// nothing is changed.
func (s *State) Apply(form model.ApplicationForm) (model.Application, error) {
	form, err := s.validateApplication(form)
	if err != nil {
		return model.Application{}, err
	}
	return s.createApplication(form)
}

// Submission is an in-flight application created by SubmitApplication.
type Submission struct {
	done chan struct{}
	app  model.Application
	err  error
}

// Done is closed once the submission has finished.
func (sub *Submission) Done() <-chan struct{} { return sub.done }

// Wait blocks until the submission finishes or ctx is done.
func (sub *Submission) Wait(ctx context.Context) (model.Application, error) {
	select {
	case <-sub.done:
		return sub.app, sub.err
	case <-ctx.Done():
		return model.Application{}, ctx.Err()
	}
}

// SubmitApplication validates the form immediately and then records the
// application in the background after delay. Validation errors are returned
// directly; a missing job or a cancelled ctx is reported through the handle.
// Concurrent submissions are not deduplicated.
func (s *State) SubmitApplication(ctx context.Context, form model.ApplicationForm, delay time.Duration) (*Submission, error) {
	form, err := s.validateApplication(form)
	if err != nil {
		return nil, err
	}

	sub := &Submission{done: make(chan struct{})}
	go func() {
		defer close(sub.done)

		if delay > 0 {
			timer := time.NewTimer(delay)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				sub.err = ctx.Err()
				return
			}
		}
		sub.app, sub.err = s.createApplication(form)
	}()
	return sub, nil
}

func (s *State) validateApplication(form model.ApplicationForm) (model.ApplicationForm, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	form.CoverLetter = strings.TrimSpace(form.CoverLetter)

	if err := s.validator.ApplicationFields(form); err != nil {
		return form, wrapError(CodeValidation, MsgFillRequired, err)
	}
	if !s.validator.IsEmail(form.Email) {
		return form, newError(CodeValidation, MsgInvalidEmail)
	}
	if !s.validator.IsResumeType(form.Resume.MimeType) {
		return form, newError(CodeValidation, MsgInvalidResumeType)
	}
	if !s.validator.IsResumeSize(form.Resume.Size) {
		return form, newError(CodeValidation, MsgResumeTooLarge)
	}
	return form, nil
}

func (s *State) createApplication(form model.ApplicationForm) (model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.findJob(form.JobID)
	if !ok {
		return model.Application{}, newError(CodeNotFound, MsgJobNotFound)
	}

	app := model.Application{
		ID:             s.idgen.New(),
		JobID:          job.ID,
		JobTitle:       job.Title,
		Company:        job.Company,
		ApplicantName:  form.Name,
		ApplicantEmail: form.Email,
		ResumeFileName: form.Resume.FileName,
		CoverLetter:    form.CoverLetter,
		Status:         model.StatusUnderReview,
		Date:           s.clock.Now().UTC(),
	}

	snap := s.snapshot()
	s.applications = append([]model.Application{app}, s.applications...)
	if err := s.commit(snap); err != nil {
		return model.Application{}, err
	}

	s.logger.Info("application submitted", "id", app.ID, "job", job.ID, "email", app.ApplicantEmail)
	return app, nil
}
