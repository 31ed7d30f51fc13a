package errors

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors used with Mark to classify failures. Callers match with
// errors.Is via the helpers below rather than comparing directly.
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrPermissionDenied = errors.New("permission denied")
	ErrHTTPClient       = errors.New("http client error")
	ErrInternal         = errors.New("internal error")
)

// InternalError is the concrete error type carried through the service. It
// keeps a user-facing hint and structured details separate from the internal
// message so handlers can decide what to expose.
type InternalError struct {
	cause             error
	mark              error
	message           string
	hint              string
	reportableDetails map[string]interface{}
}

func (e *InternalError) Error() string {
	if e.message != "" {
		return e.message
	}
	if e.cause != nil {
		return e.cause.Error()
	}
	return "unknown error"
}

func (e *InternalError) Unwrap() error {
	if e.cause != nil {
		return e.cause
	}
	return e.mark
}

// Is lets errors.Is match against the sentinel the error was marked with.
func (e *InternalError) Is(target error) bool {
	if e.mark != nil && errors.Is(e.mark, target) {
		return true
	}
	if e.cause != nil && errors.Is(e.cause, target) {
		return true
	}
	return false
}

// Hint returns the user-facing hint, if any.
func (e *InternalError) Hint() string {
	return e.hint
}

// ReportableDetails returns structured details safe to surface to callers.
func (e *InternalError) ReportableDetails() map[string]interface{} {
	return e.reportableDetails
}

// NewError starts building a new error with the given internal message.
func NewError(message string) *InternalError {
	return &InternalError{message: message}
}

// NewErrorf starts building a new error with a formatted internal message.
func NewErrorf(format string, args ...interface{}) *InternalError {
	return &InternalError{message: errors.Newf(format, args...).Error()}
}

// WithError starts building an error wrapping an existing cause.
func WithError(err error) *InternalError {
	if ie, ok := err.(*InternalError); ok {
		// Preserve hint and details already attached upstream.
		return &InternalError{
			cause:             ie,
			mark:              ie.mark,
			hint:              ie.hint,
			reportableDetails: ie.reportableDetails,
		}
	}
	return &InternalError{cause: err}
}

// WithHint attaches a user-facing hint.
func (e *InternalError) WithHint(hint string) *InternalError {
	e.hint = hint
	return e
}

// WithHintf attaches a formatted user-facing hint.
func (e *InternalError) WithHintf(format string, args ...interface{}) *InternalError {
	e.hint = errors.Newf(format, args...).Error()
	return e
}

// WithReportableDetails attaches structured details safe to return to callers.
func (e *InternalError) WithReportableDetails(details map[string]interface{}) *InternalError {
	e.reportableDetails = details
	return e
}

// Mark classifies the error with one of the package sentinels and finishes
// the builder chain.
func (e *InternalError) Mark(mark error) error {
	e.mark = mark
	return e
}

// IsNotFound returns true for errors marked ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true for errors marked ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsAlreadyExists returns true for errors marked ErrAlreadyExists.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsInvalidOperation returns true for errors marked ErrInvalidOperation.
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

// IsPermissionDenied returns true for errors marked ErrPermissionDenied.
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
