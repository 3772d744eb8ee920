package service

import (
	"errors"
	"fmt"

	"github.com/todo-microservices/task-service/internal/store"
)

// Sentinel errors returned by TaskService. Callers check them with errors.Is.
var (
	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrUserNotFound indicates that the user service does not know the user,
	// or could not be asked.
	ErrUserNotFound = errors.New("user not found")
)

// TaskServiceError wraps unexpected failures with the operation that hit them.
type TaskServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError wraps err for operation. Known sentinel errors are
// returned directly, with store not-found errors translated to ErrTaskNotFound.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, store.ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, ErrUserNotFound):
		return ErrUserNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
