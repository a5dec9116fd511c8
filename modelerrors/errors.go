package modelerrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrConsistency indicates an internal invariant of the read pass was violated.
	ErrConsistency = errors.New("consistency error")

	// ErrCyclicBranch indicates a branch whose references form a cycle.
	ErrCyclicBranch = errors.New("cyclic branch")

	// ErrDuplicateID indicates two different models share one id.
	ErrDuplicateID = errors.New("duplicate model id")

	// ErrSource indicates a collaborator (model source, context provider) failed.
	ErrSource = errors.New("source error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")
)

// ConsistencyError reports a dangling or unregistered model reference found
// while merging or finalizing names. It means a model source or the merge
// phase produced a broken link.
type ConsistencyError struct {
	// Group is the resource group of the model holding the reference
	Group string
	// ModelID is the id of the model holding the reference
	ModelID string
	// Property is the property holding the reference (empty for subtypes)
	Property string
	// RefID is the id that could not be resolved
	RefID string
	// Message describes the violation
	Message string
}

// Error returns a human-readable error message.
func (e *ConsistencyError) Error() string {
	msg := "consistency error"
	if e.ModelID != "" {
		msg += " in model " + e.ModelID
		if e.Property != "" {
			msg += "." + e.Property
		}
	}
	if e.Group != "" {
		msg += " (group " + e.Group + ")"
	}
	if e.RefID != "" {
		msg += ": reference " + e.RefID
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ConsistencyError) Is(target error) bool {
	return target == ErrConsistency
}

// CycleError reports a branch whose remaining models all reference each
// other, so no further model can be peeled.
type CycleError struct {
	// Group is the resource group being processed
	Group string
	// Operation is the operation whose root context produced the branch
	Operation string
	// IDs are the ids still stuck in the branch, in branch order
	IDs []string
	// Passes is the number of completed peel passes before the stall
	Passes int
}

// Error returns a human-readable error message.
func (e *CycleError) Error() string {
	msg := "cyclic branch"
	if e.Operation != "" {
		msg += " for operation " + e.Operation
	}
	if e.Group != "" {
		msg += " (group " + e.Group + ")"
	}
	msg += fmt.Sprintf(" after %d passes", e.Passes)
	if len(e.IDs) > 0 {
		msg += ": unresolved models " + strings.Join(e.IDs, ", ")
	}
	return msg
}

// Is reports whether target matches this error type.
// CycleError is also a consistency error.
func (e *CycleError) Is(target error) bool {
	return target == ErrCyclicBranch || target == ErrConsistency
}

// DuplicateIDError reports two different models produced under the same id.
type DuplicateIDError struct {
	// ID is the colliding model id
	ID string
	// Group is the resource group being processed
	Group string
	// Existing and Incoming are the display names of the two models
	Existing string
	Incoming string
}

// Error returns a human-readable error message.
func (e *DuplicateIDError) Error() string {
	msg := "duplicate model id " + e.ID
	if e.Group != "" {
		msg += " (group " + e.Group + ")"
	}
	if e.Existing != "" || e.Incoming != "" {
		msg += fmt.Sprintf(": %q collides with %q", e.Incoming, e.Existing)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *DuplicateIDError) Is(target error) bool {
	return target == ErrDuplicateID || target == ErrConsistency
}

// SourceError wraps a failure returned by a collaborator.
type SourceError struct {
	// Collaborator names the failing component, e.g. "model source"
	Collaborator string
	// Type is the signature of the type being processed, if any
	Type string
	// Cause is the underlying error
	Cause error
}

// Error returns a human-readable error message.
func (e *SourceError) Error() string {
	msg := "source error"
	if e.Collaborator != "" {
		msg = e.Collaborator + " error"
	}
	if e.Type != "" {
		msg += " for " + e.Type
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SourceError) Is(target error) bool {
	return target == ErrSource
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// ParseError represents a failure to parse a manifest or type expression.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
