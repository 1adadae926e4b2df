package domain

import "errors"

var (
	// ErrTaskNotFound is returned when a task cannot be found in the database
	ErrTaskNotFound = errors.New("task not found")

	// ErrTaskAlreadyClaimed is returned when attempting to claim a task that's already claimed
	ErrTaskAlreadyClaimed = errors.New("task already claimed or not in PENDING status")

	// ErrInvalidPayload is returned when task payload JSON is malformed
	ErrInvalidPayload = errors.New("invalid task payload")

	// ErrUnknownTaskType is returned when no executor handles the task type
	ErrUnknownTaskType = errors.New("unknown task type")

	// ErrMaxRetriesExceeded is returned when a task has exceeded its retry limit
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)

// RetryableError wraps transient errors that should trigger a requeue
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
