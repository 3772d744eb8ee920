package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/todo-microservices/task-service/internal/domain"
	"github.com/todo-microservices/task-service/internal/mocks"
	"github.com/todo-microservices/task-service/internal/platform/logger"
	"github.com/todo-microservices/task-service/internal/service"
	"github.com/todo-microservices/task-service/internal/store"
)

func newTestService(t *testing.T) (service.TaskService, *mocks.MockTaskStore, *mocks.MockUserChecker) {
	t.Helper()

	tasks := &mocks.MockTaskStore{}
	users := &mocks.MockUserChecker{}
	t.Cleanup(func() {
		tasks.AssertExpectations(t)
		users.AssertExpectations(t)
	})

	svc, err := service.NewTaskService(tasks, users, nil)
	require.NoError(t, err)
	return svc, tasks, users
}

func TestNewTaskService(t *testing.T) {
	_, err := service.NewTaskService(nil, &mocks.MockUserChecker{}, nil)
	assert.Error(t, err)

	_, err = service.NewTaskService(&mocks.MockTaskStore{}, nil, nil)
	assert.Error(t, err)

	svc, err := service.NewTaskService(&mocks.MockTaskStore{}, &mocks.MockUserChecker{}, nil)
	assert.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("creates task for existing user", func(t *testing.T) {
		svc, tasks, users := newTestService(t)

		users.On("Exists", ctx, int64(3)).Return(true).Once()
		tasks.On("Create", ctx, mock.AnythingOfType("*domain.Task")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Task).ID = 1
			}).
			Return(nil).Once()

		due := time.Date(2030, 1, 1, 9, 0, 0, 0, time.FixedZone("EST", -5*3600))
		task, err := svc.CreateTask(ctx, service.CreateTaskParams{
			Title:   "  Buy milk ",
			DueDate: &due,
			UserID:  3,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), task.ID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.False(t, task.Completed)
		assert.Nil(t, task.Description)
		assert.Equal(t, time.UTC, task.DueDate.Location())
		assert.True(t, due.Equal(*task.DueDate))
		assert.Equal(t, task.CreatedAt, task.UpdatedAt)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _, users := newTestService(t)

		users.On("Exists", ctx, int64(999)).Return(false).Once()

		task, err := svc.CreateTask(ctx, service.CreateTaskParams{Title: "X", UserID: 999})
		assert.Nil(t, task)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("missing title is rejected before any lookup", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateTask(ctx, service.CreateTaskParams{Title: "   ", UserID: 3})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing user id is rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateTask(ctx, service.CreateTaskParams{Title: "X"})
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		svc, tasks, users := newTestService(t)

		cause := errors.New("connection reset")
		users.On("Exists", ctx, int64(3)).Return(true).Once()
		tasks.On("Create", ctx, mock.Anything).Return(cause).Once()

		_, err := svc.CreateTask(ctx, service.CreateTaskParams{Title: "X", UserID: 3})
		var svcErr *service.TaskServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.ErrorIs(t, err, cause)
	})
}

func TestTaskService_GetTask(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		want := &domain.Task{ID: 1, Title: "Write report", UserID: 3}
		tasks.On("GetByID", ctx, int64(1)).Return(want, nil).Once()

		got, err := svc.GetTask(ctx, 1)
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		tasks.On("GetByID", ctx, int64(42)).Return(nil, store.ErrTaskNotFound).Once()

		_, err := svc.GetTask(ctx, 42)
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()
	all := []*domain.Task{{ID: 1, UserID: 3}, {ID: 2, UserID: 4}}

	t.Run("unfiltered", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		tasks.On("List", ctx, store.TaskFilter{}).Return(all, nil).Once()

		got, err := svc.ListTasks(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("by user", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		tasks.On("List", ctx, mock.MatchedBy(func(f store.TaskFilter) bool {
			return f.UserID != nil && *f.UserID == 4
		})).Return(all[1:], nil).Once()

		userID := int64(4)
		got, err := svc.ListTasks(ctx, &userID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(2), got[0].ID)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("passes partial update through", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)

		update := domain.TaskUpdate{Completed: domain.Some(true)}
		want := &domain.Task{ID: 1, Title: "Write report", Completed: true, UserID: 3}
		tasks.On("Update", ctx, int64(1), update).Return(want, nil).Once()

		got, err := svc.UpdateTask(ctx, 1, update)
		require.NoError(t, err)
		assert.True(t, got.Completed)
	})

	t.Run("empty title never reaches the store", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.UpdateTask(ctx, 1, domain.TaskUpdate{Title: domain.Some("")})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("not found", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		tasks.On("Update", ctx, int64(42), mock.Anything).Return(nil, store.ErrTaskNotFound).Once()

		_, err := svc.UpdateTask(ctx, 42, domain.TaskUpdate{Completed: domain.Some(true)})
		assert.ErrorIs(t, err, service.ErrTaskNotFound)
	})

	t.Run("store validation error is returned unwrapped", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		validationErr := domain.NewValidationError("title", "cannot be empty", domain.ErrValidation)
		tasks.On("Update", ctx, int64(1), mock.Anything).Return(nil, validationErr).Once()

		_, err := svc.UpdateTask(ctx, 1, domain.TaskUpdate{})
		assert.Same(t, validationErr, err)
	})
}

func TestTaskService_UpdateTask_EmptyUpdate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		update  domain.TaskUpdate
		wantLog bool
	}{
		{name: "no fields still reaches the store", update: domain.TaskUpdate{}, wantLog: true},
		{name: "set field is not reported", update: domain.TaskUpdate{Completed: domain.Some(false)}, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logBuf, log := logger.SetupTestLogger(t)
			tasks := &mocks.MockTaskStore{}
			svc, err := service.NewTaskService(tasks, &mocks.MockUserChecker{}, log)
			require.NoError(t, err)

			want := &domain.Task{ID: 5, Title: "Write report", UserID: 3}
			tasks.On("Update", ctx, int64(5), tt.update).Return(want, nil).Once()

			got, err := svc.UpdateTask(ctx, 5, tt.update)
			require.NoError(t, err)
			assert.Same(t, want, got)
			tasks.AssertExpectations(t)

			if tt.wantLog {
				assert.Contains(t, logBuf.String(), "task update carries no fields")
			} else {
				assert.NotContains(t, logBuf.String(), "task update carries no fields")
			}
		})
	}
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		tasks.On("Delete", ctx, int64(1)).Return(nil).Once()

		assert.NoError(t, svc.DeleteTask(ctx, 1))
	})

	t.Run("not found", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		tasks.On("Delete", ctx, int64(2)).Return(store.ErrTaskNotFound).Once()

		assert.ErrorIs(t, svc.DeleteTask(ctx, 2), service.ErrTaskNotFound)
	})
}

func TestTaskService_ListUserTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("existing user", func(t *testing.T) {
		svc, tasks, users := newTestService(t)

		users.On("Exists", ctx, int64(3)).Return(true).Once()
		tasks.On("List", ctx, store.ForUser(3)).Return([]*domain.Task{}, nil).Once()

		got, err := svc.ListUserTasks(ctx, 3)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("unknown user skips the store", func(t *testing.T) {
		svc, _, users := newTestService(t)
		users.On("Exists", ctx, int64(999)).Return(false).Once()

		_, err := svc.ListUserTasks(ctx, 999)
		assert.ErrorIs(t, err, service.ErrUserNotFound)
	})

	t.Run("non-positive user id", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.ListUserTasks(ctx, 0)
		assert.ErrorIs(t, err, domain.ErrInvalidID)
	})
}

func TestTaskService_ListTasksDueSoon(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2030, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("window spans the requested days", func(t *testing.T) {
		svc, tasks, _ := newTestService(t)
		service.SetClock(svc, func() time.Time { return now })

		due := now.Add(time.Hour)
		tasks.On("ListDueBetween", ctx, now, now.Add(48*time.Hour)).
			Return([]*domain.Task{{ID: 9, DueDate: &due}}, nil).Once()

		got, err := svc.ListTasksDueSoon(ctx, 2)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, int64(9), got[0].ID)
	})

	for _, days := range []int{0, -1, 366} {
		t.Run("rejects out of range days", func(t *testing.T) {
			svc, _, _ := newTestService(t)

			_, err := svc.ListTasksDueSoon(ctx, days)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}
