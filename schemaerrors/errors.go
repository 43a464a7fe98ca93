// Package schemaerrors provides structured error types for json-validator.
//
// These error types cover integrity and configuration failures only: a
// document that cannot be parsed, a schema that is not a schema, a $ref that
// cannot be resolved, an invalid regular expression. An instance that does
// not conform to its schema is never an error; it is reported as data by
// the validator package.
//
// # Error Categories
//
//   - ParseError: JSON/YAML text that cannot be decoded into a value
//   - SchemaError: a schema document or keyword with an invalid shape
//   - ReferenceError: $ref or URI resolution failures, bad JSON Pointers
//   - PatternError: pattern/patternProperties regular expressions that do not compile
//   - ResourceLimitError: size or count limits exceeded while loading documents
//   - ConfigError: invalid options
//
// # Usage with errors.As
//
//	if err := v.AddSchema(doc, "http://example.com/root.json"); err != nil {
//	    var refErr *schemaerrors.ReferenceError
//	    if errors.As(err, &refErr) {
//	        // refErr.Ref could not be resolved against refErr.Base
//	    }
//	}
package schemaerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrParse indicates a document could not be decoded.
	ErrParse = errors.New("parse error")

	// ErrSchema indicates a malformed schema.
	ErrSchema = errors.New("schema error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrPointer indicates a JSON Pointer could not be navigated.
	ErrPointer = errors.New("invalid json pointer")

	// ErrPattern indicates a regular expression failed to compile.
	ErrPattern = errors.New("pattern error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// ParseError represents a failure to decode a JSON or YAML document.
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

// SchemaError represents a schema document, or a keyword inside one, whose
// shape is not legal (for instance a schema that is a number, or a
// "properties" keyword whose value is not an object).
type SchemaError struct {
	// URI is the base URI in effect where the problem was found
	URI string
	// Location is the JSON Pointer of the offending node within its document
	Location string
	// Keyword is the offending keyword, if any
	Keyword string
	// Message describes the problem
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *SchemaError) Error() string {
	msg := "schema error"
	if e.URI != "" {
		msg += " in " + e.URI
	}
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Keyword != "" {
		msg += " (" + e.Keyword + ")"
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
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// ReferenceError represents a failure to resolve a $ref or schema URI.
type ReferenceError struct {
	// Ref is the reference string (or absolute URI) that failed to resolve
	Ref string
	// Base is the base URI the reference was resolved against, if any
	Base string
	// IsPointer is true when the document was found but its fragment
	// pointer could not be navigated
	IsPointer bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsPointer {
		msg = "invalid json pointer"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Base != "" {
		msg += " (base " + e.Base + ")"
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
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrPointer when IsPointer is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrPointer && e.IsPointer
}

// PatternError represents a regular expression in "pattern" or
// "patternProperties" that does not compile.
type PatternError struct {
	// Pattern is the source text of the expression
	Pattern string
	// Location is the schema location of the keyword
	Location string
	// Cause is the compilation error
	Cause error
}

// Error returns a human-readable error message.
func (e *PatternError) Error() string {
	msg := fmt.Sprintf("pattern error: %q", e.Pattern)
	if e.Location != "" {
		msg += " at " + e.Location
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PatternError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PatternError) Is(target error) bool {
	return target == ErrPattern
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded
	// Common values: "file_size", "documents"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration option.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
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
	return msg
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
