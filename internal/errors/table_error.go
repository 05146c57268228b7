// Package errors provides standardized error types for table operations.
// This package defines TableError for consistent error handling across
// all public APIs, with an error kind taxonomy, operation context and
// error wrapping support.
package errors

import (
	"fmt"
	"strings"
)

// Kind classifies a TableError. Every engine failure maps to exactly one kind
// so callers can branch on the class of failure without parsing messages.
type Kind int

const (
	// KindUnknown is the zero value and never produced by constructors.
	KindUnknown Kind = iota
	// KindNotFound indicates the input source for parsing does not exist.
	KindNotFound
	// KindSchema indicates a parsed row's field count does not match the header.
	KindSchema
	// KindColumnNotFound indicates a referenced column name does not exist.
	KindColumnNotFound
	// KindShapeMismatch indicates a boolean mask length differs from the row count.
	KindShapeMismatch
	// KindInvalidInput indicates an unsupported argument shape or value.
	KindInvalidInput
	// KindUnsupportedJoinType indicates a join kind other than inner was requested.
	KindUnsupportedJoinType
	// KindUnsupportedAggregation indicates an aggregation rule names an unknown function.
	KindUnsupportedAggregation
)

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindSchema:
		return "schema"
	case KindColumnNotFound:
		return "column not found"
	case KindShapeMismatch:
		return "shape mismatch"
	case KindInvalidInput:
		return "invalid input"
	case KindUnsupportedJoinType:
		return "unsupported join type"
	case KindUnsupportedAggregation:
		return "unsupported aggregation"
	default:
		return "unknown"
	}
}

// TableError represents standardized errors across all table operations
type TableError struct {
	Kind    Kind   // Error classification
	Op      string // Operation name (e.g., "Filter", "GroupBy", "Join")
	Column  string // Column name(s) if applicable
	Message string // Human-readable error description
	Cause   error  // Underlying error cause
}

// Error implements the error interface
func (e *TableError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s operation failed on column '%s': %s", e.Op, e.Column, e.Message)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying cause for error wrapping support
func (e *TableError) Unwrap() error {
	return e.Cause
}

// Is implements error equality checking for errors.Is()
func (e *TableError) Is(target error) bool {
	if te, ok := target.(*TableError); ok {
		return e.Kind == te.Kind && e.Op == te.Op && e.Column == te.Column && e.Message == te.Message
	}
	return false
}

// KindOf returns the kind of err if it is (or wraps) a TableError,
// and KindUnknown otherwise.
func KindOf(err error) Kind {
	for err != nil {
		if te, ok := err.(*TableError); ok {
			return te.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return KindUnknown
		}
		err = u.Unwrap()
	}
	return KindUnknown
}

// Common error constructors for consistent error creation

// NewNotFoundError creates an error for a missing input source.
func NewNotFoundError(op, path string, cause error) *TableError {
	return &TableError{
		Kind:    KindNotFound,
		Op:      op,
		Message: fmt.Sprintf("source %q does not exist", path),
		Cause:   cause,
	}
}

// NewSchemaError creates an error for a row whose field count does not match
// the header. Line is the 1-based physical line number of the offending row,
// counted with the header as line 1.
func NewSchemaError(op string, line, expected, found int) *TableError {
	return &TableError{
		Kind:    KindSchema,
		Op:      op,
		Message: fmt.Sprintf("row %d: expected %d columns, found %d", line, expected, found),
	}
}

// NewColumnNotFoundError creates an error for operations on a non-existent column
func NewColumnNotFoundError(op, column string) *TableError {
	return &TableError{
		Kind:    KindColumnNotFound,
		Op:      op,
		Column:  column,
		Message: "column does not exist",
	}
}

// NewColumnsNotFoundError creates an error reporting every missing column of a
// multi-column request at once.
func NewColumnsNotFoundError(op string, columns []string) *TableError {
	return &TableError{
		Kind:    KindColumnNotFound,
		Op:      op,
		Column:  strings.Join(columns, ", "),
		Message: "columns do not exist",
	}
}

// NewShapeMismatchError creates an error for a boolean mask whose length
// differs from the target table's row count.
func NewShapeMismatchError(op string, maskLen, rowCount int) *TableError {
	return &TableError{
		Kind:    KindShapeMismatch,
		Op:      op,
		Message: fmt.Sprintf("boolean mask length %d does not match row count %d", maskLen, rowCount),
	}
}

// NewInvalidInputError creates an error for invalid operation inputs
func NewInvalidInputError(op, message string) *TableError {
	return &TableError{
		Kind:    KindInvalidInput,
		Op:      op,
		Message: message,
	}
}

// NewUnsupportedJoinTypeError creates an error for join kinds other than inner.
func NewUnsupportedJoinTypeError(op, kind string) *TableError {
	return &TableError{
		Kind:    KindUnsupportedJoinType,
		Op:      op,
		Message: fmt.Sprintf("join type %q is not supported, only \"inner\" is available", kind),
	}
}

// NewUnsupportedAggregationError creates an error for unknown aggregation functions.
func NewUnsupportedAggregationError(op, fn string) *TableError {
	return &TableError{
		Kind:    KindUnsupportedAggregation,
		Op:      op,
		Message: fmt.Sprintf("aggregation function %q is not supported (want max, min, mean or count)", fn),
	}
}
