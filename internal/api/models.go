package api

import (
	"time"

	"github.com/todo-microservices/task-service/internal/domain"
	"github.com/todo-microservices/task-service/internal/service"
)

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title       string     `json:"title"       validate:"required"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	UserID      int64      `json:"userId"      validate:"required,gt=0"`
}

// toParams converts the request into service parameters.
func (r CreateTaskRequest) toParams() service.CreateTaskParams {
	return service.CreateTaskParams{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		UserID:      r.UserID,
	}
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Completed   bool       `json:"completed"`
	UserID      int64      `json:"userId"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// taskToResponse converts a domain.Task to a TaskResponse
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Completed:   task.Completed,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// tasksToResponse converts tasks, always yielding a non-nil slice so an
// empty result encodes as [] rather than null.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
