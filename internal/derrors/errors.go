// Package derrors provides custom error types for cardmanage.
// Every error carries a stable code so callers can tell usage mistakes
// apart from card or filesystem failures.
package derrors

import (
	"fmt"
	"strings"
)

// CardError is the base interface for all cardmanage errors
type CardError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all cardmanage errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// UsageError represents a command line flag combination that cannot be honored
type UsageError struct {
	baseError
	Flag string
}

// NewUsageError creates a new usage error
func NewUsageError(flag string, message string) *UsageError {
	return &UsageError{
		baseError: baseError{
			code:    "USAGE_ERROR",
			message: message,
		},
		Flag: flag,
	}
}

// PreconditionError represents an input file that must exist but does not
type PreconditionError struct {
	baseError
	Path string
}

// NewPreconditionError creates a new precondition error
func NewPreconditionError(path string, message string, cause error) *PreconditionError {
	return &PreconditionError{
		baseError: baseError{
			code:    "MISSING_FILE",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ParseError represents a malformed data card
type ParseError struct {
	baseError
	Path string
}

// NewParseError creates a new parse error
func NewParseError(path string, message string, cause error) *ParseError {
	return &ParseError{
		baseError: baseError{
			code:    "PARSE_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// WriteError represents a failure while writing a card to disk
type WriteError struct {
	baseError
	Path string
}

// NewWriteError creates a new write error
func NewWriteError(path string, message string, cause error) *WriteError {
	return &WriteError{
		baseError: baseError{
			code:    "WRITE_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// WorkspaceError represents workspace files that could not be copied
type WorkspaceError struct {
	baseError
	Path    string
	Missing []string
}

// NewWorkspaceError creates a new workspace error.
// Missing lists referenced files that do not exist, if any.
func NewWorkspaceError(path string, missing []string, cause error) *WorkspaceError {
	message := "failed to copy workspace files"
	if len(missing) > 0 {
		message = fmt.Sprintf("missing workspace files: %s", strings.Join(missing, ", "))
	}
	return &WorkspaceError{
		baseError: baseError{
			code:    "WORKSPACE_ERROR",
			message: message,
			cause:   cause,
		},
		Path:    path,
		Missing: missing,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    "CONFIG_ERROR",
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    "NOT_FOUND",
			message: message,
		},
		Resource: resource,
	}
}
