package runtime

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a query that requires a row matches none.
var ErrNotFound = errors.New("record not found")

// QueryError wraps a driver error with the operation and table it came from.
// The cause passes through verbatim; nothing is retried or swallowed.
type QueryError struct {
	Operation string
	Table     string
	Cause     error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("%s on %s: %v", e.Operation, e.Table, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target.
func (e *QueryError) Is(target error) bool {
	return errors.Is(e.Cause, target)
}

// NewQueryError creates a new QueryError.
func NewQueryError(op, table string, cause error) *QueryError {
	return &QueryError{Operation: op, Table: table, Cause: cause}
}

// NotFoundError is returned when FetchOne matches zero rows.
type NotFoundError struct {
	Table string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s row found", e.Table)
}

// Is checks if the error is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
