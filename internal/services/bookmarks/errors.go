package bookmarks

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrBookmarkNotFound  = errors.New("bookmark not found")
	ErrNameRequired      = errors.New("name is required")
	ErrInvalidInput      = errors.New("invalid input")
	ErrReorderIncomplete = errors.New("reorder incomplete")
)

// ValidationError represents a rejected form field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ReorderError reports a sequential reorder that stopped part way.
// The first Updated records carry their new weight; the rest do not.
type ReorderError struct {
	Updated int
	Total   int
	Err     error
}

func (e ReorderError) Error() string {
	return fmt.Sprintf("reorder stopped after %d of %d updates: %v", e.Updated, e.Total, e.Err)
}

func (e ReorderError) Is(target error) bool {
	return target == ErrReorderIncomplete
}

func (e ReorderError) Unwrap() error {
	return e.Err
}
