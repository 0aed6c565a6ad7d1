package errors

import "errors"

// Code identifies a structured error type used across the application.
type Code string

const (
	CodeUnknown Code = "unknown"

	// Lookup errors
	CodeTransport        Code = "transport_failed"
	CodeBadStatus        Code = "bad_status"
	CodeMalformedPayload Code = "malformed_payload"
	CodeDatabase         Code = "database_failed"

	// Startup errors
	CodeUnknownBackend     Code = "unknown_backend"
	CodeConfigurationError Code = "configuration_error"
)

// Error represents a structured error with a machine-readable code plus message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Code)
}

// Unwrap returns the wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// New wraps an error with a code/message.
func New(code Code, msg string, err error) Error {
	return Error{Code: code, Message: msg, Err: err}
}

// CodeOf walks the error chain and returns the first structured code found.
func CodeOf(err error) Code {
	var structured Error
	if errors.As(err, &structured) {
		return structured.Code
	}
	return CodeUnknown
}

// IsCode reports whether the error (or its unwrap chain) matches the provided code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Retryable reports whether a fresh attempt could plausibly succeed. Payload
// and configuration problems will not fix themselves on the next keystroke.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeTransport, CodeBadStatus, CodeDatabase:
		return true
	default:
		return false
	}
}
