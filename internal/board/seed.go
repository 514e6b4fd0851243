package board

import (
	"strings"
	"time"

	"jobboard/internal/model"
)

const day = 24 * time.Hour

func strPtr(s string) *string { return &s }

// sampleJobs returns the postings a fresh board starts with, newest first.
func sampleJobs(now time.Time) []model.Job {
	return []model.Job{
		{
			ID:          "1",
			Title:       "Registered Nurse",
			Company:     "HealthCare Plus",
			Location:    "Los Angeles, CA",
			Type:        "Full-time",
			Description: "Provide patient care, administer medications, and collaborate with healthcare teams to ensure quality treatment.",
			PostedBy:    strPtr("hr@healthcareplus.com"),
			PostedDate:  now,
		},
		{
			ID:          "2",
			Title:       "Software Engineer",
			Company:     "Innovatech Solutions",
			Location:    "San Francisco, CA",
			Type:        "Full-time",
			Description: "Develop and maintain web applications, collaborate with cross-functional teams, and implement new features.",
			PostedBy:    strPtr("jobs@innovatech.com"),
			PostedDate:  now.Add(-2 * day),
		},
		{
			ID:          "3",
			Title:       "Logistics Coordinator",
			Company:     "Global Freight",
			Location:    "Chicago, IL",
			Type:        "Full-time",
			Description: "Manage shipping schedules, coordinate with carriers, and ensure timely delivery of goods.",
			PostedBy:    strPtr("contact@globalfreight.com"),
			PostedDate:  now.Add(-5 * day),
		},
		{
			ID:          "4",
			Title:       "Marketing Specialist",
			Company:     "Bright Ideas Agency",
			Location:    "New York, NY",
			Type:        "Part-time",
			Description: "Plan and execute marketing campaigns, analyze market trends, and create engaging content.",
			PostedBy:    strPtr("marketing@brightideas.com"),
			PostedDate:  now.Add(-7 * day),
		},
		{
			ID:          "5",
			Title:       "Manufacturing Technician",
			Company:     "Precision Manufacturing",
			Location:    "Detroit, MI",
			Type:        "Full-time",
			Description: "Operate machinery, perform quality checks, and maintain production schedules.",
			PostedBy:    strPtr("hr@precisionmfg.com"),
			PostedDate:  now.Add(-10 * day),
		},
	}
}

// sampleApplications returns the example application shown to a signed-in
// user whose board has no applications yet.
func sampleApplications(email string, now time.Time) []model.Application {
	return []model.Application{
		{
			ID:             "1",
			JobID:          "1",
			JobTitle:       "Campus Ambassador",
			Company:        "TechStart Inc.",
			ApplicantName:  localPart(email),
			ApplicantEmail: email,
			CoverLetter:    "I would love to represent TechStart on campus as I have experience with event organization and social media marketing.",
			Status:         model.StatusUnderReview,
			Date:           now.Add(-3 * day),
		},
	}
}

// localPart returns the part of an email before the first "@".
func localPart(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
