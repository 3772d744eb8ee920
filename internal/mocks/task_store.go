package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/todo-microservices/task-service/internal/domain"
	"github.com/todo-microservices/task-service/internal/store"
)

// MockTaskStore is a mock of store.TaskStore for use with testify/mock.
type MockTaskStore struct {
	mock.Mock
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// Create is a mock implementation of store.TaskStore.Create.
// A configured Run func may assign task.ID to imitate the database.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

// GetByID is a mock implementation of store.TaskStore.GetByID.
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.TaskStore.List.
func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	args := m.Called(ctx, filter)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.TaskStore.Update.
func (m *MockTaskStore) Update(ctx context.Context, id int64, update domain.TaskUpdate) (*domain.Task, error) {
	args := m.Called(ctx, id, update)
	if task, ok := args.Get(0).(*domain.Task); ok {
		return task, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.TaskStore.Delete.
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ListDueBetween is a mock implementation of store.TaskStore.ListDueBetween.
func (m *MockTaskStore) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	args := m.Called(ctx, from, to)
	if tasks, ok := args.Get(0).([]*domain.Task); ok {
		return tasks, args.Error(1)
	}
	return nil, args.Error(1)
}
