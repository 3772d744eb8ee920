package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrTaskNotFound", err: ErrTaskNotFound, expected: true},
		{
			name:     "wrapped ErrTaskNotFound",
			err:      fmt.Errorf("failed to load task: %w", ErrTaskNotFound),
			expected: true,
		},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError("task", "delete", "no rows", ErrTaskNotFound),
			expected: true,
		},
		{name: "ErrInvalidEntity", err: ErrInvalidEntity, expected: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsNotFoundError(tc.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	withCause := NewStoreError("task", "update", "failed to update task", cause)
	assert.Equal(t, "update operation on task failed: failed to update task: connection reset", withCause.Error())
	assert.ErrorIs(t, withCause, cause)

	withoutCause := NewStoreError("task", "list", "scan failed", nil)
	assert.Equal(t, "list operation on task failed: scan failed", withoutCause.Error())
	assert.Nil(t, withoutCause.Unwrap())
}

func TestForUser(t *testing.T) {
	filter := ForUser(42)
	if assert.NotNil(t, filter.UserID) {
		assert.Equal(t, int64(42), *filter.UserID)
	}
	assert.Nil(t, TaskFilter{}.UserID)
}
