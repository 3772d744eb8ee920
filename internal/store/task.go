package store

import (
	"context"
	"time"

	"github.com/todo-microservices/task-service/internal/domain"
)

// TaskFilter narrows a task listing. A nil field means "no constraint".
type TaskFilter struct {
	UserID *int64
}

// ForUser returns a filter matching the tasks owned by userID.
func ForUser(userID int64) TaskFilter {
	return TaskFilter{UserID: &userID}
}

// TaskStore defines the interface for task persistence.
type TaskStore interface {
	// Create validates and inserts a new task, assigning its ID.
	// The passed task is updated in place with the stored values.
	// Returns a domain.ValidationError if the task is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Task, error)

	// List returns the tasks matching filter in insertion order.
	// Returns an empty slice when nothing matches.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Update applies the set fields of update to the task and refreshes
	// its UpdatedAt timestamp.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error)

	// Delete permanently removes a task.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error

	// ListDueBetween returns incomplete tasks whose due date lies within
	// [from, to], ordered by due date.
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error)
}
