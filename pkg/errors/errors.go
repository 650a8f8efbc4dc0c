package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors, always raised before any remote or destructive action
	ErrSchemeRejected  ErrorCode = "SCHEME_REJECTED"
	ErrPathTraversal   ErrorCode = "PATH_TRAVERSAL"
	ErrFolderMissing   ErrorCode = "FOLDER_MISSING"
	ErrManifestMissing ErrorCode = "MANIFEST_MISSING"
	ErrManifestInvalid ErrorCode = "MANIFEST_INVALID"

	// Network errors
	ErrReleaseLookup ErrorCode = "RELEASE_LOOKUP"
	ErrRateLimited   ErrorCode = "RATE_LIMITED"
	ErrDownload      ErrorCode = "DOWNLOAD"
	ErrExtract       ErrorCode = "EXTRACT"

	// User refused the remote trust gate, or the input stream closed
	ErrCancelled ErrorCode = "CANCELLED"

	// Step execution errors
	ErrStepExecute ErrorCode = "STEP_EXECUTE"

	// Config errors
	ErrConfigWrite ErrorCode = "CONFIG_WRITE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// AiddError represents a structured error with code and details
type AiddError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AiddError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AiddError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AiddError) Is(target error) bool {
	var targetErr *AiddError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AiddError with the given code and message
func New(code ErrorCode, message string) *AiddError {
	return &AiddError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AiddError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AiddError {
	return &AiddError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AiddError
func Wrap(err error, code ErrorCode, message string) *AiddError {
	if err == nil {
		return nil
	}
	return &AiddError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AiddError {
	if err == nil {
		return nil
	}
	return &AiddError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AiddError) WithDetail(key string, value interface{}) *AiddError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var aiddErr *AiddError
	if errors.As(err, &aiddErr) {
		return aiddErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AiddError
func GetErrorCode(err error) ErrorCode {
	var aiddErr *AiddError
	if errors.As(err, &aiddErr) {
		return aiddErr.Code
	}
	return ErrUnknown
}

// IsCancelled reports whether err is the user declining the remote trust
// gate, as opposed to a network or validation failure.
func IsCancelled(err error) bool {
	return IsErrorCode(err, ErrCancelled)
}
