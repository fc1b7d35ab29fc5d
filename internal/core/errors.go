package core

import "fmt"

// ValidationError represents a structural validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// GenerationError represents a failed generative service operation. Batch
// chunks merged before the failure are retained.
type GenerationError struct {
	Operation string
	Message   string
	Err       error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %s: %s", e.Operation, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// StorageError represents a study store failure. The in-memory dataset is
// left unchanged when one occurs.
type StorageError struct {
	Operation string
	Message   string
	Err       error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %s", e.Operation, e.Message)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// LockError represents a file locking error.
type LockError struct {
	Operation string
	Message   string
	Err       error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("lock %s: %s", e.Operation, e.Message)
}

func (e *LockError) Unwrap() error {
	return e.Err
}
