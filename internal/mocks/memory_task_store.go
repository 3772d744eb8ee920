package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/todo-microservices/task-service/internal/domain"
	"github.com/todo-microservices/task-service/internal/store"
)

// MemoryTaskStore is a map-backed store.TaskStore for tests that need real
// persistence behavior without a database. IDs start at 1 and are never
// reused. Returned tasks are copies, so callers cannot mutate stored state.
type MemoryTaskStore struct {
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]domain.Task
}

var _ store.TaskStore = (*MemoryTaskStore)(nil)

// NewMemoryTaskStore creates an empty MemoryTaskStore.
func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: make(map[int64]domain.Task)}
}

func (s *MemoryTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	task.ID = s.nextID
	s.tasks[task.ID] = *task
	return nil
}

func (s *MemoryTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &task, nil
}

func (s *MemoryTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Task, 0, len(s.tasks))
	for _, task := range s.tasks {
		if filter.UserID != nil && task.UserID != *filter.UserID {
			continue
		}
		t := task
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryTaskStore) Update(
	ctx context.Context,
	id int64,
	update domain.TaskUpdate,
) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	if err := task.Apply(update); err != nil {
		return nil, err
	}
	s.tasks[id] = task
	return &task, nil
}

func (s *MemoryTaskStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s *MemoryTaskStore) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Task, 0)
	for _, task := range s.tasks {
		if task.IsDueBetween(from, to) {
			t := task
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(*out[j].DueDate) {
			return out[i].DueDate.Before(*out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
