package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/todo-microservices/task-service/internal/domain"
	"github.com/todo-microservices/task-service/internal/platform/logger"
	"github.com/todo-microservices/task-service/internal/store"
)

// Bounds on the due-soon look-ahead, in days.
const (
	MinDueSoonDays = 1
	MaxDueSoonDays = 365
)

// UserChecker reports whether a user exists in the user service.
// Implementations never fail: an unreachable service means "does not exist".
type UserChecker interface {
	Exists(ctx context.Context, userID int64) bool
}

// CreateTaskParams carries the fields accepted when creating a task.
type CreateTaskParams struct {
	Title       string
	Description *string
	DueDate     *time.Time
	UserID      int64
}

// TaskService provides task operations.
type TaskService interface {
	// CreateTask validates the fields, checks that the owner exists and
	// stores the task. Returns ErrUserNotFound if the owner is unknown.
	CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error)

	// GetTask returns ErrTaskNotFound if the task does not exist.
	GetTask(ctx context.Context, id int64) (*domain.Task, error)

	// ListTasks returns every task, or only those owned by userID when it is non-nil.
	ListTasks(ctx context.Context, userID *int64) ([]*domain.Task, error)

	// UpdateTask applies a partial update. Returns ErrTaskNotFound if the
	// task does not exist.
	UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask returns ErrTaskNotFound if the task does not exist.
	DeleteTask(ctx context.Context, id int64) error

	// ListUserTasks checks that the user exists and returns their tasks.
	ListUserTasks(ctx context.Context, userID int64) ([]*domain.Task, error)

	// ListTasksDueSoon returns incomplete tasks due within the next days days.
	ListTasksDueSoon(ctx context.Context, days int) ([]*domain.Task, error)
}

type taskServiceImpl struct {
	tasks  store.TaskStore
	users  UserChecker
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(tasks store.TaskStore, users UserChecker, logger *slog.Logger) (TaskService, error) {
	if tasks == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "task store cannot be nil"}
	}
	if users == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "user checker cannot be nil"}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		tasks:  tasks,
		users:  users,
		logger: logger.With(slog.String("component", "task_service")),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(params.Title, params.Description, params.DueDate, params.UserID)
	if err != nil {
		log.Debug("rejected invalid task", slog.String("error", err.Error()))
		return nil, err
	}

	if !s.users.Exists(ctx, params.UserID) {
		log.Info("task owner not found", slog.Int64("user_id", params.UserID))
		return nil, ErrUserNotFound
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, userID *int64) ([]*domain.Task, error) {
	tasks, err := s.tasks.List(ctx, store.TaskFilter{UserID: userID})
	if err != nil {
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject before touching the store so an invalid update never takes a row lock.
	if err := update.Validate(); err != nil {
		log.Debug("rejected invalid task update",
			slog.Int64("task_id", id),
			slog.String("error", err.Error()))
		return nil, err
	}
	// An empty update still refreshes updatedAt.
	if update.IsEmpty() {
		log.Debug("task update carries no fields", slog.Int64("task_id", id))
	}

	task, err := s.tasks.Update(ctx, id, update)
	if err != nil {
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return nil, err
		}
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}
	return nil
}

func (s *taskServiceImpl) ListUserTasks(ctx context.Context, userID int64) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID <= 0 {
		return nil, domain.NewValidationError("userId", "must be a positive integer", domain.ErrInvalidID)
	}

	if !s.users.Exists(ctx, userID) {
		log.Info("user not found for task listing", slog.Int64("user_id", userID))
		return nil, ErrUserNotFound
	}

	tasks, err := s.tasks.List(ctx, store.ForUser(userID))
	if err != nil {
		return nil, NewTaskServiceError("list_user_tasks", "failed to list user tasks", err)
	}
	return tasks, nil
}

func (s *taskServiceImpl) ListTasksDueSoon(ctx context.Context, days int) ([]*domain.Task, error) {
	if days < MinDueSoonDays || days > MaxDueSoonDays {
		return nil, domain.NewValidationError("days", "must be between 1 and 365", domain.ErrInvalidFormat)
	}

	from := s.now()
	to := from.Add(time.Duration(days) * 24 * time.Hour)

	tasks, err := s.tasks.ListDueBetween(ctx, from, to)
	if err != nil {
		return nil, NewTaskServiceError("list_tasks_due_soon", "failed to list tasks due soon", err)
	}
	return tasks, nil
}
