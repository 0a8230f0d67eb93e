package apperrors

import "fmt"

// DuplicateShowMessage is the user-facing message for a rejected duplicate add.
const DuplicateShowMessage = "This show already exists in your catalogue"

// ErrNotFound represents an error when a requested resource is not found.
type ErrNotFound struct {
	Resource string
	ID       interface{}
}

// Error implements the error interface.
func (e *ErrNotFound) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%s with ID %v not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is allows for error checking with errors.Is().
func (e *ErrNotFound) Is(target error) bool {
	_, ok := target.(*ErrNotFound)
	return ok
}

// NewNotFoundError creates a new ErrNotFound.
func NewNotFoundError(resource string, id interface{}) *ErrNotFound {
	return &ErrNotFound{
		Resource: resource,
		ID:       id,
	}
}

// NewShowNotFoundError creates a specific error for when a show title is not in the library.
func NewShowNotFoundError(title string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "show",
		ID:       title,
	}
}

// ErrDuplicateShow is returned when a show with the same title is already in the library.
type ErrDuplicateShow struct {
	Title string
}

// Error implements the error interface.
func (e *ErrDuplicateShow) Error() string {
	return DuplicateShowMessage
}

// Is allows for error checking with errors.Is().
func (e *ErrDuplicateShow) Is(target error) bool {
	_, ok := target.(*ErrDuplicateShow)
	return ok
}

// NewDuplicateShowError creates a new ErrDuplicateShow.
func NewDuplicateShowError(title string) *ErrDuplicateShow {
	return &ErrDuplicateShow{Title: title}
}

// ErrInvalidEpisodeCount is returned when an episode count is not a non-negative integer.
type ErrInvalidEpisodeCount struct {
	Value string
}

// Error implements the error interface.
func (e *ErrInvalidEpisodeCount) Error() string {
	return fmt.Sprintf("invalid episode count %q: must be a non-negative integer", e.Value)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidEpisodeCount) Is(target error) bool {
	_, ok := target.(*ErrInvalidEpisodeCount)
	return ok
}
