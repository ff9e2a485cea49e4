package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is one of the four error kinds a command can fail with.
type ErrorCode string

const (
	// CodeUnknownCommand means no registry entry matched the input.
	CodeUnknownCommand ErrorCode = "UNKNOWN_COMMAND"
	// CodeInvalidArgument means the caller passed malformed flags,
	// options or sub-command strings.
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// CodeNotImplemented is reserved for command handlers.
	CodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"
	// CodeInternal means a programming defect or an unexpected failure.
	CodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Valid reports whether c belongs to the fixed taxonomy.
func (c ErrorCode) Valid() bool {
	switch c {
	case CodeUnknownCommand, CodeInvalidArgument, CodeNotImplemented, CodeInternal:
		return true
	}
	return false
}

// DomainError is an error carrying one of the fixed error codes plus an
// optional hint shown to the user on the line after the message.
type DomainError struct {
	Code    ErrorCode // Error code (e.g., INVALID_ARGUMENT)
	Message string    // Human-readable message
	Details string    // Optional additional details
	Hint    string    // Optional remediation hint
	Cause   error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
// Two DomainErrors match when code and message match.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithHint returns a copy of the error with a remediation hint.
func (e *DomainError) WithHint(hint string) *DomainError {
	c := *e
	c.Hint = hint
	return &c
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// Wrap wraps an error with this domain error as the cause.
func (e *DomainError) Wrap(cause error) *DomainError {
	return e.WithCause(cause)
}

// UserMessage is the message rendered to the user: the message followed
// by the details, if any.
func (e *DomainError) UserMessage() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code ErrorCode) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Generic errors, one per code.
var (
	ErrUnknownCommand  = NewDomainError(CodeUnknownCommand, "unknown command")
	ErrInvalidArgument = NewDomainError(CodeInvalidArgument, "invalid argument")
	ErrNotImplemented  = NewDomainError(CodeNotImplemented, "not implemented")
	ErrInternal        = NewDomainError(CodeInternal, "internal error")
)

// Argument errors.
var (
	// ErrMissingArgument indicates a required positional argument is missing.
	ErrMissingArgument = NewDomainError(CodeInvalidArgument, "missing required argument")

	// ErrConflictingTokenFlags indicates --xoxp and --xoxb were both given.
	ErrConflictingTokenFlags = NewDomainError(CodeInvalidArgument, "--xoxp and --xoxb are mutually exclusive")

	// ErrTokenTypeRequired indicates the command needs an explicit token type.
	ErrTokenTypeRequired = NewDomainError(CodeInvalidArgument, "command requires an explicit token type")

	// ErrTokenTypeNotAllowed indicates the forced token type is rejected by the command.
	ErrTokenTypeNotAllowed = NewDomainError(CodeInvalidArgument, "token type not allowed for this command")
)

// Credential and Web API errors.
var (
	// ErrMissingToken indicates no credential could be resolved.
	ErrMissingToken = NewDomainError(CodeInvalidArgument, "no slack token available")

	// ErrSlackAPI indicates the Web API answered with ok=false.
	ErrSlackAPI = NewDomainError(CodeInvalidArgument, "slack api error")

	// ErrTransport indicates the Web API could not be reached.
	ErrTransport = NewDomainError(CodeInternal, "slack api request failed")
)

// Registry errors. These are programming defects, not user errors.
var (
	// ErrStrategyMissing indicates a built-in strategy (help, version) is not registered.
	ErrStrategyMissing = NewDomainError(CodeInternal, "required command strategy not registered")

	// ErrRunnerMissing indicates a command that re-enters the router was
	// invoked without a sub-command runner.
	ErrRunnerMissing = NewDomainError(CodeInternal, "sub-command runner not available")
)
