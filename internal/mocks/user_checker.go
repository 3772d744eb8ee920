package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockUserChecker is a mock of service.UserChecker for use with testify/mock.
type MockUserChecker struct {
	mock.Mock
}

// Exists is a mock implementation of service.UserChecker.Exists.
func (m *MockUserChecker) Exists(ctx context.Context, userID int64) bool {
	args := m.Called(ctx, userID)
	return args.Bool(0)
}

// StaticUserChecker answers every lookup from a fixed set of known users.
type StaticUserChecker map[int64]bool

// Exists reports whether userID is in the set.
func (s StaticUserChecker) Exists(_ context.Context, userID int64) bool {
	return s[userID]
}
