// Package errors defines the machine-readable codes service and model
// errors are tagged with, so callers branch on codes instead of matching
// message strings.
package errors

import "errors"

// General error codes.
const (
	ErrInternalServer = "ERR_INTERNAL_SERVER"
	ErrInvalidParam   = "ERR_INVALID_PARAM"
)

// User and auth error codes.
const (
	ErrEmptyID            = "ERR_EMPTY_ID"
	ErrUserNotFound       = "ERR_USER_NOT_FOUND"
	ErrEmptyCredentials   = "ERR_EMPTY_CREDENTIALS"
	ErrInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrUserDisabled       = "ERR_USER_DISABLED"
	ErrEmailTaken         = "ERR_EMAIL_TAKEN"
	ErrAuthRequired       = "ERR_AUTH_REQUIRED"
)

// Case submission error codes.
const (
	ErrCaseNotFound       = "ERR_CASE_NOT_FOUND"
	ErrCaseFieldsRequired = "ERR_CASE_FIELDS_REQUIRED"
	ErrSubmissionInFlight = "ERR_SUBMISSION_IN_FLIGHT"
	ErrSubmissionFailed   = "ERR_SUBMISSION_FAILED"
	ErrUploadTooLarge     = "ERR_UPLOAD_TOO_LARGE"
)

// Contact relay error codes.
const (
	ErrContactRelayFailed   = "ERR_CONTACT_RELAY_FAILED"
	ErrContactRelayDisabled = "ERR_CONTACT_RELAY_DISABLED"
)

// CodedError couples a user-facing message with a stable code.
type CodedError struct {
	Code string
	Msg  string
	Err  error
}

func (e *CodedError) Error() string {
	return e.Msg
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// New builds a coded error from scratch.
func New(code string, msg string) *CodedError {
	return &CodedError{Code: code, Msg: msg}
}

// Wrap tags an existing error with a code, keeping it for Unwrap.
func Wrap(err error, code string, msg string) *CodedError {
	return &CodedError{Code: code, Msg: msg, Err: err}
}

// IsCode reports whether err carries the given code anywhere in its chain.
func IsCode(err error, code string) bool {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code == code
	}
	return false
}

// Code extracts the code from err, or ErrInternalServer for untagged
// errors.
func Code(err error) string {
	var coded *CodedError
	if errors.As(err, &coded) {
		return coded.Code
	}
	return ErrInternalServer
}
