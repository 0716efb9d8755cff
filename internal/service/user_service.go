package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/user-api/internal/domain"
	"github.com/phrazzld/user-api/internal/platform/logger"
	"github.com/phrazzld/user-api/internal/store"
)

// UserService provides the user CRUD use cases.
type UserService interface {
	// ListUsers returns every user; the slice is empty, never nil, when there are none.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser retrieves a user by ID.
	// Returns store.ErrUserNotFound if the user does not exist.
	GetUser(ctx context.Context, id string) (*domain.User, error)

	// CreateUser checks the email is free and then inserts a new user.
	// Returns store.ErrEmailExists if the email is already in use.
	CreateUser(ctx context.Context, name, email string, age int) (*domain.User, error)

	// UpdateUser replaces name, email and age of an existing user.
	// Returns store.ErrUserNotFound if the user does not exist.
	UpdateUser(ctx context.Context, id, name, email string, age int) (*domain.User, error)

	// DeleteUser removes a user and returns the row as it was before deletion.
	// Returns store.ErrUserNotFound if the user does not exist.
	DeleteUser(ctx context.Context, id string) (*domain.User, error)

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	if userStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("userStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// ListUsers returns all users
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		s.log(ctx).Error("failed to list users", "error", err)
		return nil, NewServiceError("list users", err)
	}
	if users == nil {
		users = []*domain.User{}
	}

	s.log(ctx).Debug("listed users", "count", len(users))
	return users, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.log(ctx).Debug("user not found", "user_id", id)
			return nil, fmt.Errorf("failed to retrieve user: %w", err)
		}
		s.log(ctx).Error("failed to retrieve user", "error", err, "user_id", id)
		return nil, NewServiceError("get user", err)
	}

	s.log(ctx).Debug("retrieved user successfully", "user_id", id)
	return user, nil
}

// CreateUser creates a new user after verifying the email is not taken.
// The lookup and insert are not atomic; the store's unique constraint
// reports a racing duplicate as store.ErrEmailExists as well.
func (s *UserServiceImpl) CreateUser(ctx context.Context, name, email string, age int) (*domain.User, error) {
	existing, err := s.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		s.log(ctx).Debug("attempted to create user with existing email", "email", email)
		return nil, fmt.Errorf("failed to create user: %w", store.ErrEmailExists)
	case err != nil && !errors.Is(err, store.ErrUserNotFound):
		s.log(ctx).Error("failed to check email availability", "error", err, "email", email)
		return nil, NewServiceError("create user", err)
	}

	user, err := domain.NewUser(name, email, age)
	if err != nil {
		s.log(ctx).Warn("rejected invalid user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.log(ctx).Debug("email taken concurrently", "email", email)
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		s.log(ctx).Error("failed to save user to database", "error", err, "email", email)
		return nil, NewServiceError("create user", err)
	}

	s.log(ctx).Info("user created successfully", "user_id", user.ID)
	return user, nil
}

// UpdateUser replaces every mutable field of an existing user.
// Following the pattern of getting the complete user first, then passing
// the complete user object back to the store.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, id, name, email string, age int) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.log(ctx).Debug("attempted to update non-existent user", "user_id", id)
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		s.log(ctx).Error("failed to retrieve user for update", "error", err, "user_id", id)
		return nil, NewServiceError("update user", err)
	}

	user.Replace(name, email, age)
	if err := user.Validate(); err != nil {
		s.log(ctx).Warn("rejected invalid user update", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserNotFound) || errors.Is(err, store.ErrEmailExists) {
			s.log(ctx).Debug("user update rejected by store", "error", err, "user_id", id)
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		s.log(ctx).Error("failed to update user", "error", err, "user_id", id)
		return nil, NewServiceError("update user", err)
	}

	s.log(ctx).Info("user updated successfully", "user_id", id)
	return user, nil
}

// DeleteUser deletes a user by their ID and returns the deleted row.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.log(ctx).Debug("attempted to delete non-existent user", "user_id", id)
			return nil, fmt.Errorf("failed to delete user: %w", err)
		}
		s.log(ctx).Error("failed to retrieve user for delete", "error", err, "user_id", id)
		return nil, NewServiceError("delete user", err)
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("failed to delete user: %w", err)
		}
		s.log(ctx).Error("failed to delete user", "error", err, "user_id", id)
		return nil, NewServiceError("delete user", err)
	}

	s.log(ctx).Info("user deleted successfully", "user_id", id)
	return user, nil
}

// Ping checks the store connection.
func (s *UserServiceImpl) Ping(ctx context.Context) error {
	return s.userStore.Ping(ctx)
}
