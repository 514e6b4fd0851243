package model

import "time"

// Storage keys for the four persisted collections.
const (
	KeyJobs         = "jobs"
	KeyApplications = "applications"
	KeyUsers        = "users"
	KeyCurrentUser  = "currentUser"
)

// Job represents a job posting, either posted locally or fetched from an external source.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	PostedBy    *string   `json:"postedBy"` // email of the poster, null for external jobs
	PostedDate  time.Time `json:"postedDate"`
	IsExternal  bool      `json:"isExternal"`
	ApplyLink   string    `json:"applyLink,omitempty"` // only set for external jobs
}

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	StatusUnderReview ApplicationStatus = "Under Review"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
)

// Application represents a submitted job application.
// JobTitle and Company are snapshots of the job at apply time.
type Application struct {
	ID             string            `json:"id"`
	JobID          string            `json:"jobId"` // not enforced; the job may no longer exist
	JobTitle       string            `json:"jobTitle"`
	Company        string            `json:"company"`
	ApplicantName  string            `json:"applicantName"`
	ApplicantEmail string            `json:"applicantEmail"`
	ResumeFileName string            `json:"resumeFileName,omitempty"`
	CoverLetter    string            `json:"coverLetter"`
	Status         ApplicationStatus `json:"status"`
	Date           time.Time         `json:"date"`
}

// User is a registered account, keyed by email in the users collection.
type User struct {
	Email        string `json:"email"`
	PasswordHash string `json:"passwordHash"`
	Name         string `json:"name"`
}

// JobPosting holds the employer-supplied fields for a new local job.
type JobPosting struct {
	Title       string `validate:"required"`
	Company     string `validate:"required"`
	Location    string `validate:"required"`
	Type        string `validate:"required"`
	Description string `validate:"required"`
}

// ResumeMeta describes an uploaded resume. Only FileName is retained on the application.
type ResumeMeta struct {
	FileName string
	MimeType string
	Size     int64
}

// ApplicationForm holds the applicant-supplied fields for an application.
type ApplicationForm struct {
	JobID       string
	Name        string
	Email       string
	Resume      *ResumeMeta
	CoverLetter string
}

// Criteria is the search/location/type predicate triple used to filter jobs.
// Empty fields match everything.
type Criteria struct {
	Search   string
	Location string
	Type     string
}
