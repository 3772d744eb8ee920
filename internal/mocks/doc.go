// Package mocks provides shared mock implementations for tests.
//
// Store and user-service mocks are built on testify/mock; set expectations
// with On and verify them with AssertExpectations. The service mock uses
// function fields instead, so handler tests can script a response inline:
//
//	svc := &mocks.MockTaskService{
//	    GetTaskFn: func(ctx context.Context, id int64) (*domain.Task, error) {
//	        return nil, service.ErrTaskNotFound
//	    },
//	}
package mocks
