package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"jobboard/internal/model"
)

// Placeholders used when a listing omits a field.
const (
	DefaultTitle       = "No title available"
	DefaultCompany     = "Company not specified"
	DefaultLocation    = "Location not specified"
	DefaultType        = "Not specified"
	DefaultDescription = "No description available"
	DefaultApplyLink   = "#"
)

// Synthesized ids are "api-" followed by 9 base-36 characters.
const (
	syntheticIDPrefix   = "api-"
	syntheticIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	syntheticIDLength   = 9
)

// RawJob is one listing as returned by JSearch. Every field is optional.
type RawJob struct {
	JobID          OptString `json:"job_id"`
	Title          OptString `json:"job_title"`
	EmployerName   OptString `json:"employer_name"`
	City           OptString `json:"job_city"`
	Country        OptString `json:"job_country"`
	EmploymentType OptString `json:"job_employment_type"`
	Description    OptString `json:"job_description"`
	PostedAtUnix   OptInt    `json:"job_posted_at_timestamp"`
	ApplyLink      OptString `json:"job_apply_link"`
}

// OptString accepts a JSON string or number. null, booleans, objects and
// arrays leave it unset. The empty string counts as unset.
type OptString struct {
	Value string
	Set   bool
}

func (o *OptString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch {
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		o.Value, o.Set = s, s != ""
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		o.Value, o.Set = string(data), true
	}
	return nil
}

// Or returns the value, or def when unset.
func (o OptString) Or(def string) string {
	if !o.Set {
		return def
	}
	return o.Value
}

// OptInt accepts a JSON number or numeric string. Zero counts as unset.
type OptInt struct {
	Value int64
	Set   bool
}

func (o *OptInt) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if f, err := strconv.ParseFloat(text, 64); err == nil && f != 0 {
		o.Value, o.Set = int64(f), true
	}
	return nil
}

// ParseRawJob decodes one element of the response's data array. An element
// that is not a JSON object yields an empty RawJob.
func ParseRawJob(data json.RawMessage) RawJob {
	var raw RawJob
	if err := json.Unmarshal(data, &raw); err != nil {
		return RawJob{}
	}
	return raw
}

// Normalize maps a raw listing onto a Job, substituting the named defaults
// for anything missing. The result is always external.
func Normalize(raw RawJob, now time.Time) model.Job {
	id := raw.JobID.Value
	if !raw.JobID.Set {
		id = syntheticID()
	}
	posted := now.UTC()
	if raw.PostedAtUnix.Set {
		// Stored dates must fit RFC 3339, so years outside 0-9999 count as missing.
		if t := time.Unix(raw.PostedAtUnix.Value, 0).UTC(); t.Year() >= 0 && t.Year() <= 9999 {
			posted = t
		}
	}

	return model.Job{
		ID:          id,
		Title:       raw.Title.Or(DefaultTitle),
		Company:     raw.EmployerName.Or(DefaultCompany),
		Location:    joinLocation(raw.City.Or(""), raw.Country.Or("")),
		Type:        raw.EmploymentType.Or(DefaultType),
		Description: raw.Description.Or(DefaultDescription),
		PostedDate:  posted,
		IsExternal:  true,
		ApplyLink:   raw.ApplyLink.Or(DefaultApplyLink),
	}
}

func joinLocation(city, country string) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{city, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return DefaultLocation
	}
	return strings.Join(parts, ", ")
}

func syntheticID() string {
	id, err := gonanoid.Generate(syntheticIDAlphabet, syntheticIDLength)
	if err != nil {
		// Only fails when the system has no entropy.
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return syntheticIDPrefix + id
}
