package models

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthRequired is returned when a mutating comment action has no signed-in user
	ErrAuthRequired = errors.New("sign in required")

	// ErrCommentNotFound is returned when a comment id matches nothing in the view
	ErrCommentNotFound = errors.New("comment not found")

	// ErrReplyDepth is returned when a reply targets a reply instead of a top-level comment
	ErrReplyDepth = errors.New("replies can only target top-level comments")

	// ErrSubmissionInFlight is returned when the same form is submitted again before the first call resolves
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrArticleNotFound is returned when an operation needs an article that does not exist
	ErrArticleNotFound = errors.New("article not found")

	// ErrViewNotFound is returned when a view id is unknown or expired
	ErrViewNotFound = errors.New("view not found")

	// ErrTooManyViews is returned when the view limit is reached
	ErrTooManyViews = errors.New("too many open views")
)

// ContentSourceError reports that the article store is unreadable or corrupt
type ContentSourceError struct {
	Path string
	Err  error
}

func (e *ContentSourceError) Error() string {
	return fmt.Sprintf("content source %s: %v", e.Path, e.Err)
}

func (e *ContentSourceError) Unwrap() error {
	return e.Err
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
