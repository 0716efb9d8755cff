package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/user-api/internal/domain"
)

// MockUserService implements service.UserService for testing.
// Unset Fn fields return zero values.
type MockUserService struct {
	ListUsersFn  func(ctx context.Context) ([]*domain.User, error)
	GetUserFn    func(ctx context.Context, id string) (*domain.User, error)
	CreateUserFn func(ctx context.Context, name, email string, age int) (*domain.User, error)
	UpdateUserFn func(ctx context.Context, id, name, email string, age int) (*domain.User, error)
	DeleteUserFn func(ctx context.Context, id string) (*domain.User, error)
	PingFn       func(ctx context.Context) error

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockUserService) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

// Calls returns how many times method was invoked.
func (m *MockUserService) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of invocations across all methods.
func (m *MockUserService) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

// ListUsers implements service.UserService
func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	m.record("ListUsers")
	if m.ListUsersFn != nil {
		return m.ListUsersFn(ctx)
	}
	return []*domain.User{}, nil
}

// GetUser implements service.UserService
func (m *MockUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	m.record("GetUser")
	if m.GetUserFn != nil {
		return m.GetUserFn(ctx, id)
	}
	return nil, nil
}

// CreateUser implements service.UserService
func (m *MockUserService) CreateUser(ctx context.Context, name, email string, age int) (*domain.User, error) {
	m.record("CreateUser")
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, name, email, age)
	}
	return nil, nil
}

// UpdateUser implements service.UserService
func (m *MockUserService) UpdateUser(ctx context.Context, id, name, email string, age int) (*domain.User, error) {
	m.record("UpdateUser")
	if m.UpdateUserFn != nil {
		return m.UpdateUserFn(ctx, id, name, email, age)
	}
	return nil, nil
}

// DeleteUser implements service.UserService
func (m *MockUserService) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	m.record("DeleteUser")
	if m.DeleteUserFn != nil {
		return m.DeleteUserFn(ctx, id)
	}
	return nil, nil
}

// Ping implements service.UserService
func (m *MockUserService) Ping(ctx context.Context) error {
	m.record("Ping")
	if m.PingFn != nil {
		return m.PingFn(ctx)
	}
	return nil
}
