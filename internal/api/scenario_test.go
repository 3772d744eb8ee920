package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/todo-microservices/task-service/internal/mocks"
	"github.com/todo-microservices/task-service/internal/platform/logger"
	"github.com/todo-microservices/task-service/internal/service"
	"github.com/todo-microservices/task-service/internal/store"
)

// newScenarioRouter wires the handler to a real TaskService backed by an
// in-memory store, with users 1 and 2 known to the user service.
func newScenarioRouter(t *testing.T) (http.Handler, *mocks.MemoryTaskStore) {
	t.Helper()
	_, log := logger.SetupTestLogger(t)

	tasks := mocks.NewMemoryTaskStore()
	svc, err := service.NewTaskService(tasks, mocks.StaticUserChecker{1: true, 2: true}, log)
	require.NoError(t, err)

	r := chi.NewRouter()
	NewTaskHandler(svc, log).RegisterRoutes(r)
	return r, tasks
}

func createTask(t *testing.T, h http.Handler, body string) TaskResponse {
	t.Helper()
	w := doRequest(t, h, http.MethodPost, "/api/tasks", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestScenario_CreateForExistingUser(t *testing.T) {
	h, _ := newScenarioRouter(t)

	task := createTask(t, h, `{"title":"Buy milk","userId":1}`)

	assert.Equal(t, int64(1), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, int64(1), task.UserID)
	assert.False(t, task.Completed)
	assert.Nil(t, task.Description)
	assert.Nil(t, task.DueDate)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestScenario_CreateForUnknownUser(t *testing.T) {
	h, tasks := newScenarioRouter(t)

	w := doRequest(t, h, http.MethodPost, "/api/tasks", `{"title":"Buy milk","userId":999}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeError(t, w).Error)

	stored, err := tasks.List(context.Background(), store.TaskFilter{})
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestScenario_UpdateCompletedOnly(t *testing.T) {
	h, _ := newScenarioRouter(t)

	var created TaskResponse
	for i := 0; i < 5; i++ {
		created = createTask(t, h, `{"title":"Task","description":"keep me","userId":1}`)
	}
	require.Equal(t, int64(5), created.ID)

	w := doRequest(t, h, http.MethodPut, "/api/tasks/5", `{"completed":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	assert.True(t, updated.Completed)
	assert.Equal(t, created.Title, updated.Title)
	require.NotNil(t, updated.Description)
	assert.Equal(t, "keep me", *updated.Description)
	assert.Equal(t, created.UserID, updated.UserID)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestScenario_DeleteThenAccess(t *testing.T) {
	h, _ := newScenarioRouter(t)

	for i := 0; i < 5; i++ {
		createTask(t, h, `{"title":"Task","userId":2}`)
	}

	w := doRequest(t, h, http.MethodDelete, "/api/tasks/5", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(t, h, http.MethodGet, "/api/tasks/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decodeError(t, w).Error)

	w = doRequest(t, h, http.MethodPut, "/api/tasks/5", `{"completed":true}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, h, http.MethodDelete, "/api/tasks/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScenario_ListFiltersByUser(t *testing.T) {
	h, _ := newScenarioRouter(t)

	createTask(t, h, `{"title":"one","userId":1}`)
	createTask(t, h, `{"title":"two","userId":2}`)
	createTask(t, h, `{"title":"three","userId":1}`)

	var all []TaskResponse
	w := doRequest(t, h, http.MethodGet, "/api/tasks", "")
	require.NoError(t, json.NewDecoder(w.Body).Decode(&all))
	assert.Len(t, all, 3)

	for _, target := range []string{"/api/tasks?userId=1", "/api/users/1/tasks"} {
		var mine []TaskResponse
		w = doRequest(t, h, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code, target)
		require.NoError(t, json.NewDecoder(w.Body).Decode(&mine))
		require.Len(t, mine, 2, target)
		for _, task := range mine {
			assert.Equal(t, int64(1), task.UserID)
		}
	}

	w = doRequest(t, h, http.MethodGet, "/api/users/999/tasks", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestScenario_EmptyDescriptionRoundTrips(t *testing.T) {
	h, _ := newScenarioRouter(t)

	created := createTask(t, h, `{"title":"a","description":"","userId":1}`)
	require.NotNil(t, created.Description)
	assert.Equal(t, "", *created.Description)

	w := doRequest(t, h, http.MethodPut, "/api/tasks/1", `{"description":"set"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, h, http.MethodPut, "/api/tasks/1", `{"description":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&updated))
	require.NotNil(t, updated.Description)
	assert.Equal(t, "", *updated.Description)

	w = doRequest(t, h, http.MethodGet, "/api/tasks/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fetched))
	require.NotNil(t, fetched.Description)
	assert.Equal(t, "", *fetched.Description)

	w = doRequest(t, h, http.MethodPut, "/api/tasks/1", `{"description":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	var cleared TaskResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&cleared))
	assert.Nil(t, cleared.Description)
}
