package store

import "fmt"

// ValidationError reports caller-supplied data that fails a precondition.
// The operation aborts with the snapshot unchanged; the error is meant to be
// surfaced to the user, not treated as fatal.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ConflictError reports an operation that would violate an invariant, such as
// deleting a category that expenses still reference.
type ConflictError struct {
	CategoryID string
	Name       string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("category %q (%s) is in use by existing expenses", e.Name, e.CategoryID)
}

// NotFoundError reports an operation against an id that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}
