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
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors: invalid input, rejected before any
	// filesystem access
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"

	// Conflict errors: a path exists but has the wrong type for the
	// requested role
	ErrConflict ErrorCode = "CONFLICT"

	// Filesystem errors: OS-level failures during create/delete/symlink
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
	ErrDirRemove     ErrorCode = "DIR_REMOVE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
)

// ReleasedirError represents a structured error with code and details
type ReleasedirError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ReleasedirError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReleasedirError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ReleasedirError) Is(target error) bool {
	var targetErr *ReleasedirError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ReleasedirError with the given code and message
func New(code ErrorCode, message string) *ReleasedirError {
	return &ReleasedirError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ReleasedirError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ReleasedirError {
	return &ReleasedirError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ReleasedirError
func Wrap(err error, code ErrorCode, message string) *ReleasedirError {
	if err == nil {
		return nil
	}
	return &ReleasedirError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ReleasedirError {
	if err == nil {
		return nil
	}
	return &ReleasedirError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ReleasedirError) WithDetail(key string, value interface{}) *ReleasedirError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var rdErr *ReleasedirError
	if errors.As(err, &rdErr) {
		return rdErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ReleasedirError
func GetErrorCode(err error) ErrorCode {
	var rdErr *ReleasedirError
	if errors.As(err, &rdErr) {
		return rdErr.Code
	}
	return ErrUnknown
}

// IsConfiguration reports whether err is a configuration error:
// invalid input rejected before any filesystem access.
func IsConfiguration(err error) bool {
	switch GetErrorCode(err) {
	case ErrConfigInvalid, ErrConfigLoad:
		return true
	}
	return false
}

// IsConflict reports whether err is a conflict error: a filesystem path
// exists but has the wrong type for the requested role.
func IsConflict(err error) bool {
	return IsErrorCode(err, ErrConflict)
}

// IsFilesystem reports whether err is an OS-level filesystem failure
// (permissions, disk full, I/O) during create/delete/symlink.
func IsFilesystem(err error) bool {
	switch GetErrorCode(err) {
	case ErrFileAccess, ErrDirCreate, ErrDirRemove, ErrSymlinkCreate:
		return true
	}
	return false
}
