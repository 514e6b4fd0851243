package board

import (
	"errors"
	"fmt"
)

// Code classifies a board error.
type Code string

const (
	CodeValidation         Code = "VALIDATION"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
	CodeUnauthorized       Code = "UNAUTHORIZED"
	CodeExternalSource     Code = "EXTERNAL_SOURCE"
)

// User-facing messages.
const (
	MsgFillAllFields      = "Please fill in all fields"
	MsgFillRequired       = "Please fill all required fields"
	MsgInvalidEmail       = "Please enter a valid email address"
	MsgInvalidResumeType  = "Please upload a PDF or Word document"
	MsgResumeTooLarge     = "File size should be less than 2MB"
	MsgShortPassword      = "Password must be at least 6 characters"
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailRegistered    = "Email already registered. Please login instead."
	MsgLoginRequired      = "Please login to apply for jobs."
	MsgJobNotFound        = "Job not found"
	MsgApplicationMissing = "Application not found"
	MsgFetchFailed        = "Failed to fetch jobs from API. Showing local listings instead."
	MsgInvalidPage        = "Page must be at least 1"
)

// Sentinels for errors.Is matching by code.
var (
	ErrValidation         = &Error{Code: CodeValidation}
	ErrNotFound           = &Error{Code: CodeNotFound}
	ErrAlreadyExists      = &Error{Code: CodeAlreadyExists}
	ErrInvalidCredentials = &Error{Code: CodeInvalidCredentials}
	ErrUnauthorized       = &Error{Code: CodeUnauthorized}
	ErrExternalSource     = &Error{Code: CodeExternalSource}
)

// Error is a board error with a code and a message meant for the user.
// No mutation has been performed when a board operation returns one.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func newError(code Code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

func wrapError(code Code, msg string, cause error) *Error {
	return &Error{Code: code, Message: msg, cause: cause}
}

// UserMessage returns the user-facing message for err: the board message when
// err carries one, otherwise err.Error().
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
