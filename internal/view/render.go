// Package view renders the board as text and drives the interactive browser.
// It reads through the Board interface and never touches the store.
package view

import (
	"fmt"
	"io"
	"strings"

	"jobboard/internal/model"
)

const (
	externalExcerptLength    = 200
	applicationExcerptLength = 100
	dateLayout               = "Jan 2, 2006"
)

// Board is the read side of board.State the renderer needs.
type Board interface {
	PaginatedJobs() []model.Job
	CurrentPage() int
	TotalPages() int
	MyApplications() []model.Application
	Job(id string) (model.Job, error)
}

// Renderer writes board views as plain text.
type Renderer struct {
	w io.Writer
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{w: w}
}

// JobPage renders the current page of the filtered jobs followed by the
// pagination controls.
func (r *Renderer) JobPage(b Board) {
	jobs := b.PaginatedJobs()
	if len(jobs) == 0 {
		fmt.Fprintln(r.w, "No jobs found matching your criteria.")
		return
	}
	for i, job := range jobs {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		r.Job(job)
	}
	if controls := r.paginationLine(b.CurrentPage(), b.TotalPages()); controls != "" {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, controls)
	}
}

// Job renders one job card. External jobs link out to the employer; local
// jobs point at the apply command.
func (r *Renderer) Job(job model.Job) {
	fmt.Fprintf(r.w, "%s\n", job.Title)
	fmt.Fprintf(r.w, "  %s • %s • %s\n", job.Company, job.Location, job.Type)

	if job.IsExternal {
		fmt.Fprintf(r.w, "  %s\n", Excerpt(job.Description, externalExcerptLength, false))
		fmt.Fprintf(r.w, "  Posted: %s\n", job.PostedDate.Format(dateLayout))
		fmt.Fprintf(r.w, "  Apply on %s: %s\n", job.Company, job.ApplyLink)
		return
	}
	fmt.Fprintf(r.w, "  %s\n", job.Description)
	fmt.Fprintf(r.w, "  Posted on: %s\n", job.PostedDate.Format(dateLayout))
	fmt.Fprintf(r.w, "  Apply Now: jobboard apply %s\n", job.ID)
}

// Pagination renders the page buttons for the given position. Nothing is
// written when there is at most one page.
func (r *Renderer) Pagination(current, total int) {
	if line := r.paginationLine(current, total); line != "" {
		fmt.Fprintln(r.w, line)
	}
}

func (r *Renderer) paginationLine(current, total int) string {
	if total <= 1 {
		return ""
	}
	buttons := Controls(current, total)
	labels := make([]string, len(buttons))
	for i, btn := range buttons {
		labels[i] = btn.String()
	}
	return strings.Join(labels, " ")
}

// Applications renders the signed-in user's applications, newest first.
func (r *Renderer) Applications(b Board) {
	apps := b.MyApplications()
	if len(apps) == 0 {
		fmt.Fprintln(r.w, "No applications submitted yet.")
		return
	}
	for i, app := range apps {
		if i > 0 {
			fmt.Fprintln(r.w)
		}
		fmt.Fprintf(r.w, "%s\n", app.JobTitle)
		fmt.Fprintf(r.w, "  %s\n", app.Company)
		fmt.Fprintf(r.w, "  Applied: %s  Status: %s\n", app.Date.Format(dateLayout), Badge(app.Status))
		if job, err := b.Job(app.JobID); err == nil && job.Description != "" {
			fmt.Fprintf(r.w, "  %s\n", Excerpt(job.Description, applicationExcerptLength, true))
		}
		fmt.Fprintf(r.w, "  View Details: jobboard applications show %s\n", app.ID)
	}
}

// ApplicationDetail renders one application with its cover letter and the
// current description of the job, if the job still exists.
func (r *Renderer) ApplicationDetail(b Board, app model.Application) {
	fmt.Fprintln(r.w, "Application Details")
	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "%s\n", app.JobTitle)
	fmt.Fprintf(r.w, "  %s\n", app.Company)
	fmt.Fprintf(r.w, "  Status: %s\n", Badge(app.Status))
	fmt.Fprintf(r.w, "  Applied on: %s\n", app.Date.Format(dateLayout))
	if app.ResumeFileName != "" {
		fmt.Fprintf(r.w, "  Resume: %s\n", app.ResumeFileName)
	}

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, "Your Cover Letter:")
	fmt.Fprintln(r.w, indent(app.CoverLetter))

	if job, err := b.Job(app.JobID); err == nil && job.Description != "" {
		fmt.Fprintln(r.w)
		fmt.Fprintln(r.w, "Job Description:")
		fmt.Fprintln(r.w, indent(job.Description))
	}
}

// Badge renders an application status as a text badge.
func Badge(status model.ApplicationStatus) string {
	switch status {
	case model.StatusAccepted, model.StatusRejected:
		return "[" + string(status) + "]"
	default:
		return "[" + string(model.StatusUnderReview) + "]"
	}
}

// Excerpt returns the first n characters of s. The ellipsis is appended when
// s was cut, or always when forceEllipsis is set.
func Excerpt(s string, n int, forceEllipsis bool) string {
	runes := []rune(s)
	if len(runes) <= n {
		if forceEllipsis {
			return s + "..."
		}
		return s
	}
	return string(runes[:n]) + "..."
}

func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
