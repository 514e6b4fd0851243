// Package validation checks user-supplied board input using the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"

	"jobboard/internal/model"
)

// MaxResumeSize is the largest accepted resume upload in bytes (2 MiB).
const MaxResumeSize = 2 * 1024 * 1024

// MinPasswordLength is the minimum password length in UTF-16 code units.
const MinPasswordLength = 6

// AllowedResumeTypes are the accepted resume MIME types.
var AllowedResumeTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// emailPattern is ^[^\s@]+@[^\s@]+\.[^\s@]+$ with the wider whitespace class
// browsers use for \s.
var emailPattern = regexp.MustCompile(`^[^@\s\v\p{Z}\x{FEFF}]+@[^@\s\v\p{Z}\x{FEFF}]+\.[^@\s\v\p{Z}\x{FEFF}]+$`)

// FieldErrors maps a field name to a human-readable problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	names := fe.Fields()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name + " " + fe[name]
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Fields returns the failing field names in sorted order.
func (fe FieldErrors) Fields() []string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validator wraps go-playground/validator with the board's rules registered.
type Validator struct {
	v *validator.Validate
}

// applicationFields are the fields an application must carry before any
// format checks run.
type applicationFields struct {
	Name        string            `validate:"required"`
	Email       string            `validate:"required"`
	CoverLetter string            `validate:"required"`
	Resume      *model.ResumeMeta `validate:"required"`
}

// New creates a validator with the board_email and resume_type tags registered.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("board_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("resume_type", func(fl validator.FieldLevel) bool {
		mime := fl.Field().String()
		for _, allowed := range AllowedResumeTypes {
			if mime == allowed {
				return true
			}
		}
		return false
	})

	return &Validator{v: v}
}

// Posting checks that every job posting field is present.
// Callers trim the fields first.
func (v *Validator) Posting(p model.JobPosting) error {
	return v.structErrors(p)
}

// ApplicationFields checks that name, email, cover letter and resume are present.
// Callers trim the text fields first.
func (v *Validator) ApplicationFields(form model.ApplicationForm) error {
	return v.structErrors(applicationFields{
		Name:        form.Name,
		Email:       form.Email,
		CoverLetter: form.CoverLetter,
		Resume:      form.Resume,
	})
}

// IsEmail reports whether s looks like an email address.
func (v *Validator) IsEmail(s string) bool {
	return v.v.Var(s, "board_email") == nil
}

// IsPassword reports whether s is long enough to be a password.
func (v *Validator) IsPassword(s string) bool {
	return len(utf16.Encode([]rune(s))) >= MinPasswordLength
}

// IsResumeType reports whether mime is an accepted resume type.
func (v *Validator) IsResumeType(mime string) bool {
	return v.v.Var(mime, "resume_type") == nil
}

// IsResumeSize reports whether size is within the upload limit.
func (v *Validator) IsResumeSize(size int64) bool {
	return v.v.Var(size, fmt.Sprintf("gte=0,lte=%d", MaxResumeSize)) == nil
}

func (v *Validator) structErrors(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(FieldErrors, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = friendlyMessage(e)
	}
	return fieldErrors
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "board_email":
		return "must be a valid email address"
	case "resume_type":
		return "must be a PDF or Word document"
	case "lte":
		return "must be at most " + e.Param()
	default:
		return "is invalid"
	}
}
