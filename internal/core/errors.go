package core

import "fmt"

// NotFoundError reports that an entity could not be resolved. Kind names the
// entity ("user", "expense", "category") and ID carries the identifier the
// caller asked for, never storage internals.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// NewNotFound builds a NotFoundError for the given entity kind and identifier.
func NewNotFound(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// OwnershipError reports that a resolved entity does not belong to the acting
// user. Terminal for the operation that raised it.
type OwnershipError struct {
	Kind string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("user does not own this %s", e.Kind)
}
