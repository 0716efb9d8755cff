// Package mocks provides centralized mock implementations for testing.
//
// UserStore is a testify/mock based double of store.UserStore, used where a
// test wants to assert call expectations. MockUserService follows the
// function-field style: set only the Fn fields a test needs.
//
//	svc := &mocks.MockUserService{
//	    GetUserFn: func(ctx context.Context, id string) (*domain.User, error) {
//	        return nil, store.ErrUserNotFound
//	    },
//	}
package mocks
