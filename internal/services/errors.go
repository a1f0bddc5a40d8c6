package services

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrUserNotFound    = errors.New("user not found")

	// ErrNotAuthorized is returned when the caller does not own the post or
	// comment it tries to remove.
	ErrNotAuthorized = errors.New("user not authorized")

	ErrAlreadyLiked = errors.New("post already liked")
	ErrNotLiked     = errors.New("post has not yet been liked")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
