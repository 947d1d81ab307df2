package errors

import (
	"errors"
	"fmt"
)

// ToolInvocationError indicates the wrapped package manager command failed.
//
// This covers every way an external invocation can go wrong: the tool exits
// nonzero, the invocation times out, or the tool binary cannot be found.
//
// Fields:
//   - Command: The command line that was invoked
//   - ExitCode: Exit code reported by the tool (-1 when unknown)
//   - Stderr: Captured stderr text, trimmed
//   - TimedOut: Whether the invocation was killed by the timeout
//   - Err: Underlying execution error, may be nil
//
// Example:
//
//	return &ToolInvocationError{
//	    Command:  "pip list --outdated --format=json",
//	    ExitCode: 1,
//	    Stderr:   stderr,
//	    Err:      err,
//	}
type ToolInvocationError struct {
	// Command is the command line that was invoked.
	Command string

	// ExitCode is the exit code reported by the tool, or -1 when unknown.
	ExitCode int

	// Stderr holds the captured stderr text.
	Stderr string

	// TimedOut reports whether the invocation hit its timeout.
	TimedOut bool

	// Err is the underlying execution error.
	Err error
}

// Error implements the error interface.
//
// Prefers stderr text when available since the tool's own message is usually
// the most actionable. Timeouts are reported explicitly.
//
// Returns:
//   - string: Formatted error message
func (e *ToolInvocationError) Error() string {
	if e.TimedOut {
		return fmt.Sprintf("tool invocation timed out: %s", e.Command)
	}
	if e.Stderr != "" {
		return fmt.Sprintf("tool invocation failed (exit %d): %s", e.ExitCode, e.Stderr)
	}
	if e.Err != nil {
		return fmt.Sprintf("tool invocation failed: %s", e.Err.Error())
	}
	return fmt.Sprintf("tool invocation failed (exit %d): %s", e.ExitCode, e.Command)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ToolInvocationError) Unwrap() error {
	return e.Err
}

// NewToolInvocationError creates a ToolInvocationError for a failed command.
//
// Parameters:
//   - command: The command line that was invoked
//   - exitCode: Exit code reported by the tool (-1 when unknown)
//   - stderr: Captured stderr text
//   - err: Underlying execution error, may be nil
//
// Returns:
//   - *ToolInvocationError: New tool invocation error
func NewToolInvocationError(command string, exitCode int, stderr string, err error) *ToolInvocationError {
	return &ToolInvocationError{
		Command:  command,
		ExitCode: exitCode,
		Stderr:   stderr,
		Err:      err,
	}
}

// IsToolInvocationError checks if err is a ToolInvocationError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ToolInvocationError: The ToolInvocationError if err is one, nil otherwise
//   - bool: true if err is a ToolInvocationError
func IsToolInvocationError(err error) (*ToolInvocationError, bool) {
	var te *ToolInvocationError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// ParseError indicates structured output from the tool could not be parsed.
//
// Fields:
//   - Source: What was being parsed (e.g. "outdated report", "manifest")
//   - Detail: Description of the malformation
//   - Err: Underlying decode error, may be nil
//
// Example:
//
//	return &ParseError{
//	    Source: "outdated report",
//	    Detail: "expected JSON array",
//	    Err:    err,
//	}
type ParseError struct {
	// Source names the input that failed to parse.
	Source string

	// Detail describes what is malformed.
	Detail string

	// Err is the underlying decode error.
	Err error
}

// Error implements the error interface.
//
// Returns:
//   - string: Formatted error message with source and detail
func (e *ParseError) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("failed to parse %s: %s: %s", e.Source, e.Detail, e.Err.Error())
	case e.Detail != "":
		return fmt.Sprintf("failed to parse %s: %s", e.Source, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("failed to parse %s: %s", e.Source, e.Err.Error())
	default:
		return fmt.Sprintf("failed to parse %s", e.Source)
	}
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a ParseError for malformed structured output.
//
// Parameters:
//   - source: What was being parsed
//   - detail: Description of the malformation, may be empty
//   - err: Underlying decode error, may be nil
//
// Returns:
//   - *ParseError: New parse error
func NewParseError(source, detail string, err error) *ParseError {
	return &ParseError{Source: source, Detail: detail, Err: err}
}

// IsParseError checks if err is a ParseError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ParseError: The ParseError if err is one, nil otherwise
//   - bool: true if err is a ParseError
func IsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// PersistenceError indicates a manifest or journal file operation failed.
//
// This covers write failures (permissions, disk full), read failures, and a
// manifest that is missing when a restore needs it.
//
// Fields:
//   - Op: The failed operation ("read", "write", "list")
//   - Path: The file path involved
//   - Err: Underlying filesystem error, may be nil
//
// Example:
//
//	return &PersistenceError{
//	    Op:   "write",
//	    Path: manifestPath,
//	    Err:  err,
//	}
type PersistenceError struct {
	// Op is the failed operation ("read", "write", "list").
	Op string

	// Path is the file path involved.
	Path string

	// Err is the underlying filesystem error.
	Err error
}

// Error implements the error interface.
//
// Returns:
//   - string: Formatted error message with operation and path
func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("manifest %s failed for %s: %s", e.Op, e.Path, e.Err.Error())
	}
	return fmt.Sprintf("manifest %s failed for %s", e.Op, e.Path)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// NewPersistenceError creates a PersistenceError for a failed file operation.
//
// Parameters:
//   - op: The failed operation ("read", "write", "list")
//   - path: The file path involved
//   - err: Underlying filesystem error, may be nil
//
// Returns:
//   - *PersistenceError: New persistence error
func NewPersistenceError(op, path string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Path: path, Err: err}
}

// IsPersistenceError checks if err is a PersistenceError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *PersistenceError: The PersistenceError if err is one, nil otherwise
//   - bool: true if err is a PersistenceError
func IsPersistenceError(err error) (*PersistenceError, bool) {
	var pe *PersistenceError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
