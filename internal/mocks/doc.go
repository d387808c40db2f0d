// Package mocks provides centralized mock implementations for testing.
//
// Mocks follow one pattern: a struct with a function field per interface
// method, call tracking guarded by a mutex, and default return values used
// when no function is set. InMemoryTaskStore is a working fake rather than a
// mock and is meant for tests that exercise several operations in sequence.
//
//	tasks := &mocks.MockTaskStore{
//	    GetByIDFn: func(ctx context.Context, id int64) (*domain.Task, error) {
//	        return nil, store.ErrTaskNotFound
//	    },
//	}
package mocks
