package mocks

import (
	"context"
	"sync"

	"github.com/todo-microservices/task-service/internal/domain"
	"github.com/todo-microservices/task-service/internal/service"
)

// MockTaskService implements service.TaskService for testing.
// Each method calls its Fn field when set and otherwise returns Task, Tasks
// and Err.
type MockTaskService struct {
	CreateTaskFn       func(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error)
	GetTaskFn          func(ctx context.Context, id int64) (*domain.Task, error)
	ListTasksFn        func(ctx context.Context, userID *int64) ([]*domain.Task, error)
	UpdateTaskFn       func(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error)
	DeleteTaskFn       func(ctx context.Context, id int64) error
	ListUserTasksFn    func(ctx context.Context, userID int64) ([]*domain.Task, error)
	ListTasksDueSoonFn func(ctx context.Context, days int) ([]*domain.Task, error)

	// Default response values
	Task  *domain.Task
	Tasks []*domain.Task
	Err   error

	mu    sync.Mutex
	calls map[string]int
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockTaskService) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockTaskService) CreateTask(ctx context.Context, params service.CreateTaskParams) (*domain.Task, error) {
	m.record("CreateTask")
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, params)
	}
	return m.Task, m.Err
}

func (m *MockTaskService) GetTask(ctx context.Context, id int64) (*domain.Task, error) {
	m.record("GetTask")
	if m.GetTaskFn != nil {
		return m.GetTaskFn(ctx, id)
	}
	return m.Task, m.Err
}

func (m *MockTaskService) ListTasks(ctx context.Context, userID *int64) ([]*domain.Task, error) {
	m.record("ListTasks")
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx, userID)
	}
	return m.Tasks, m.Err
}

func (m *MockTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	m.record("UpdateTask")
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, update)
	}
	return m.Task, m.Err
}

func (m *MockTaskService) DeleteTask(ctx context.Context, id int64) error {
	m.record("DeleteTask")
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return m.Err
}

func (m *MockTaskService) ListUserTasks(ctx context.Context, userID int64) ([]*domain.Task, error) {
	m.record("ListUserTasks")
	if m.ListUserTasksFn != nil {
		return m.ListUserTasksFn(ctx, userID)
	}
	return m.Tasks, m.Err
}

func (m *MockTaskService) ListTasksDueSoon(ctx context.Context, days int) ([]*domain.Task, error) {
	m.record("ListTasksDueSoon")
	if m.ListTasksDueSoonFn != nil {
		return m.ListTasksDueSoonFn(ctx, days)
	}
	return m.Tasks, m.Err
}
