package service_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/todo-microservices/task-service/internal/service"
	"github.com/todo-microservices/task-service/internal/store"
)

func TestNewTaskServiceError(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name      string
		err       error
		wantSame  error
		wantCause error
	}{
		{name: "nil", err: nil},
		{name: "store not found", err: store.ErrTaskNotFound, wantSame: service.ErrTaskNotFound},
		{
			name:     "wrapped store not found",
			err:      store.NewStoreError("task", "get", "no rows", store.ErrTaskNotFound),
			wantSame: service.ErrTaskNotFound,
		},
		{name: "user not found", err: fmt.Errorf("lookup: %w", service.ErrUserNotFound), wantSame: service.ErrUserNotFound},
		{name: "unexpected", err: cause, wantCause: cause},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := service.NewTaskServiceError("get_task", "failed to retrieve task", tc.err)

			switch {
			case tc.err == nil:
				assert.NoError(t, got)
			case tc.wantSame != nil:
				assert.Same(t, tc.wantSame, got)
			default:
				var svcErr *service.TaskServiceError
				if assert.ErrorAs(t, got, &svcErr) {
					assert.Equal(t, "get_task", svcErr.Operation)
				}
				assert.ErrorIs(t, got, tc.wantCause)
				assert.Equal(t, "task service get_task failed: failed to retrieve task: connection refused", got.Error())
			}
		})
	}
}
