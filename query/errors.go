package query

import (
	"errors"
	"fmt"
)

// Error types for query compilation and argument binding.
var (
	// ErrMisplacedOperator is returned when a logical operator opens or
	// closes a condition sequence, or follows another logical operator.
	ErrMisplacedOperator = errors.New("misplaced logical operator")

	// ErrAdjacentConditions is returned when two field conditions appear
	// in a WHERE sequence without a logical operator between them.
	ErrAdjacentConditions = errors.New("adjacent field conditions without logical operator")

	// ErrOperatorInValues is returned when a logical operator appears in a
	// sequence used as an insert value list.
	ErrOperatorInValues = errors.New("logical operator not allowed in value list")

	// ErrColumnRefNotAllowed is returned when a column reference appears in
	// an insert or update value list, where it cannot be bound.
	ErrColumnRefNotAllowed = errors.New("column reference not allowed in value list")

	// ErrUnsupportedOperator is returned for comparison operator tokens
	// outside = != < <= > >=.
	ErrUnsupportedOperator = errors.New("unsupported comparison operator")
)

// CompileError reports a malformed condition sequence. It is surfaced
// immediately and never retried.
type CompileError struct {
	Field string
	Cause error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("compile %s: %v", e.Field, e.Cause)
	}
	return fmt.Sprintf("compile: %v", e.Cause)
}

// Unwrap returns the underlying error.
func (e *CompileError) Unwrap() error {
	return e.Cause
}

// newCompileError creates a CompileError for a field.
func newCompileError(field string, cause error) *CompileError {
	return &CompileError{Field: field, Cause: cause}
}

// IsCompileError checks if an error is a condition compilation error.
func IsCompileError(err error) bool {
	var ce *CompileError
	return errors.As(err, &ce)
}

// CoercionError reports a serialized value that does not parse under its
// declared type at bind time. It is fatal for the query that carries it.
type CoercionError struct {
	Raw   string
	Type  ValueType
	Cause error
}

// Error implements the error interface.
func (e *CoercionError) Error() string {
	return fmt.Sprintf("bind %q as %s: %v", e.Raw, e.Type, e.Cause)
}

// Unwrap returns the underlying error.
func (e *CoercionError) Unwrap() error {
	return e.Cause
}

// IsCoercionError checks if an error is a bind-time type coercion error.
func IsCoercionError(err error) bool {
	var ce *CoercionError
	return errors.As(err, &ce)
}
