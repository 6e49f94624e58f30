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
	ErrCanceled     ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// FileSystem errors
	ErrDirRead   ErrorCode = "DIR_READ"
	ErrDirCreate ErrorCode = "DIR_CREATE"
	ErrFileRead  ErrorCode = "FILE_READ"
	ErrFileWrite ErrorCode = "FILE_WRITE"

	// Audit log errors
	ErrAuditOpen  ErrorCode = "AUDIT_OPEN"
	ErrAuditWrite ErrorCode = "AUDIT_WRITE"

	// GitHub errors
	ErrGitHubAPI    ErrorCode = "GITHUB_API"
	ErrGitHubBranch ErrorCode = "GITHUB_BRANCH"
	ErrGitHubCommit ErrorCode = "GITHUB_COMMIT"
	ErrGitHubPR     ErrorCode = "GITHUB_PR"
)

// OwnerswapError represents a structured error with code and details
type OwnerswapError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OwnerswapError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OwnerswapError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *OwnerswapError) Is(target error) bool {
	var targetErr *OwnerswapError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OwnerswapError with the given code and message
func New(code ErrorCode, message string) *OwnerswapError {
	return &OwnerswapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OwnerswapError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OwnerswapError {
	return &OwnerswapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an OwnerswapError
func Wrap(err error, code ErrorCode, message string) *OwnerswapError {
	if err == nil {
		return nil
	}
	return &OwnerswapError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OwnerswapError {
	if err == nil {
		return nil
	}
	return &OwnerswapError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *OwnerswapError) WithDetail(key string, value interface{}) *OwnerswapError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var ownerErr *OwnerswapError
	if errors.As(err, &ownerErr) {
		return ownerErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an OwnerswapError
func GetErrorCode(err error) ErrorCode {
	var ownerErr *OwnerswapError
	if errors.As(err, &ownerErr) {
		return ownerErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an OwnerswapError
func GetErrorDetails(err error) map[string]interface{} {
	var ownerErr *OwnerswapError
	if errors.As(err, &ownerErr) {
		return ownerErr.Details
	}
	return nil
}
