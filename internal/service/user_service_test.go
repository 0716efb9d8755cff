package service_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/phrazzld/user-api/internal/domain"
	"github.com/phrazzld/user-api/internal/mocks"
	"github.com/phrazzld/user-api/internal/service"
	"github.com/phrazzld/user-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func existingUser() *domain.User {
	created := time.Now().UTC().Add(-24 * time.Hour)
	return &domain.User{
		ID:        "3f1c2a9e-7c3d-4f5b-9a61-2d8b1e0c4a77",
		Name:      "Mona",
		Email:     "mona@gmail.com",
		Age:       20,
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNewUserService_PanicsOnNilStore(t *testing.T) {
	assert.Panics(t, func() {
		service.NewUserService(nil, newTestLogger())
	})
}

func TestUserService_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("returns store rows", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		users := []*domain.User{existingUser()}
		userStore.On("List", mock.Anything).Return(users, nil)

		got, err := service.NewUserService(userStore, newTestLogger()).ListUsers(ctx)

		require.NoError(t, err)
		assert.Equal(t, users, got)
		userStore.AssertExpectations(t)
	})

	t.Run("nil result becomes empty slice", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		userStore.On("List", mock.Anything).Return(nil, nil)

		got, err := service.NewUserService(userStore, newTestLogger()).ListUsers(ctx)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("store failure", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		dbErr := errors.New("connection refused")
		userStore.On("List", mock.Anything).Return(nil, dbErr)

		got, err := service.NewUserService(userStore, newTestLogger()).ListUsers(ctx)

		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, dbErr)
		var svcErr *service.ServiceError
		assert.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "list users", svcErr.Operation)
	})
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()
	user := existingUser()

	tests := []struct {
		name      string
		storeUser *domain.User
		storeErr  error
		wantErr   error
	}{
		{name: "found", storeUser: user},
		{name: "not found", storeErr: store.ErrUserNotFound, wantErr: store.ErrUserNotFound},
		{name: "store failure", storeErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userStore := new(mocks.UserStore)
			userStore.On("GetByID", mock.Anything, user.ID).Return(tt.storeUser, tt.storeErr)

			got, err := service.NewUserService(userStore, newTestLogger()).GetUser(ctx, user.ID)

			switch {
			case tt.storeErr == nil:
				require.NoError(t, err)
				assert.Equal(t, user, got)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			default:
				require.Error(t, err)
				assert.False(t, store.IsNotFoundError(err))
			}
			userStore.AssertExpectations(t)
		})
	}
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		userStore.On("GetByEmail", mock.Anything, "mona@gmail.com").Return(nil, store.ErrUserNotFound)
		userStore.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID != "" && u.Name == "Mona" && u.Email == "mona@gmail.com" && u.Age == 20
		})).Return(nil)

		got, err := service.NewUserService(userStore, newTestLogger()).
			CreateUser(ctx, "Mona", "mona@gmail.com", 20)

		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
		assert.Equal(t, "Mona", got.Name)
		assert.Equal(t, "mona@gmail.com", got.Email)
		assert.Equal(t, 20, got.Age)
		userStore.AssertExpectations(t)
	})

	t.Run("email already exists skips insert", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		userStore.On("GetByEmail", mock.Anything, "mona@gmail.com").Return(existingUser(), nil)

		got, err := service.NewUserService(userStore, newTestLogger()).
			CreateUser(ctx, "Other", "mona@gmail.com", 30)

		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.Nil(t, got)
		userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate reported by store", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		userStore.On("GetByEmail", mock.Anything, "mona@gmail.com").Return(nil, store.ErrUserNotFound)
		userStore.On("Create", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

		_, err := service.NewUserService(userStore, newTestLogger()).
			CreateUser(ctx, "Mona", "mona@gmail.com", 20)

		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("invalid input", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		userStore.On("GetByEmail", mock.Anything, "mona@gmail.com").Return(nil, store.ErrUserNotFound)

		_, err := service.NewUserService(userStore, newTestLogger()).
			CreateUser(ctx, "Mona", "mona@gmail.com", 0)

		assert.ErrorIs(t, err, domain.ErrValidation)
		userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lookup failure", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		dbErr := errors.New("timeout")
		userStore.On("GetByEmail", mock.Anything, "mona@gmail.com").Return(nil, dbErr)

		_, err := service.NewUserService(userStore, newTestLogger()).
			CreateUser(ctx, "Mona", "mona@gmail.com", 20)

		assert.ErrorIs(t, err, dbErr)
		assert.False(t, store.IsDuplicateError(err))
		userStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUserService_UpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("overwrites fields and keeps identity", func(t *testing.T) {
		user := existingUser()
		createdAt := user.CreatedAt
		userStore := new(mocks.UserStore)
		userStore.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		userStore.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == user.ID &&
				u.Name == "Mona Lisa" &&
				u.Email == "lisa@gmail.com" &&
				u.Age == 21 &&
				u.CreatedAt.Equal(createdAt)
		})).Return(nil)

		got, err := service.NewUserService(userStore, newTestLogger()).
			UpdateUser(ctx, user.ID, "Mona Lisa", "lisa@gmail.com", 21)

		require.NoError(t, err)
		assert.Equal(t, "Mona Lisa", got.Name)
		assert.True(t, got.UpdatedAt.After(createdAt))
		userStore.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		userStore.On("GetByID", mock.Anything, "nope").Return(nil, store.ErrUserNotFound)

		_, err := service.NewUserService(userStore, newTestLogger()).
			UpdateUser(ctx, "nope", "Mona", "mona@gmail.com", 20)

		assert.ErrorIs(t, err, store.ErrUserNotFound)
		userStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("email taken by another user", func(t *testing.T) {
		user := existingUser()
		userStore := new(mocks.UserStore)
		userStore.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		userStore.On("Update", mock.Anything, mock.Anything).Return(store.ErrEmailExists)

		_, err := service.NewUserService(userStore, newTestLogger()).
			UpdateUser(ctx, user.ID, "Mona", "taken@gmail.com", 20)

		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("store failure", func(t *testing.T) {
		user := existingUser()
		dbErr := errors.New("disk full")
		userStore := new(mocks.UserStore)
		userStore.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		userStore.On("Update", mock.Anything, mock.Anything).Return(dbErr)

		_, err := service.NewUserService(userStore, newTestLogger()).
			UpdateUser(ctx, user.ID, "Mona", "mona@gmail.com", 20)

		assert.ErrorIs(t, err, dbErr)
		var svcErr *service.ServiceError
		assert.ErrorAs(t, err, &svcErr)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("returns deleted user", func(t *testing.T) {
		user := existingUser()
		userStore := new(mocks.UserStore)
		userStore.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		userStore.On("Delete", mock.Anything, user.ID).Return(nil)

		got, err := service.NewUserService(userStore, newTestLogger()).DeleteUser(ctx, user.ID)

		require.NoError(t, err)
		assert.Equal(t, "Mona", got.Name)
		userStore.AssertExpectations(t)
	})

	t.Run("missing user skips delete", func(t *testing.T) {
		userStore := new(mocks.UserStore)
		userStore.On("GetByID", mock.Anything, "nope").Return(nil, store.ErrUserNotFound)

		_, err := service.NewUserService(userStore, newTestLogger()).DeleteUser(ctx, "nope")

		assert.ErrorIs(t, err, store.ErrUserNotFound)
		userStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("delete failure", func(t *testing.T) {
		user := existingUser()
		dbErr := errors.New("locked")
		userStore := new(mocks.UserStore)
		userStore.On("GetByID", mock.Anything, user.ID).Return(user, nil)
		userStore.On("Delete", mock.Anything, user.ID).Return(dbErr)

		got, err := service.NewUserService(userStore, newTestLogger()).DeleteUser(ctx, user.ID)

		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, got)
	})
}

func TestUserService_Ping(t *testing.T) {
	userStore := new(mocks.UserStore)
	pingErr := errors.New("unreachable")
	userStore.On("Ping", mock.Anything).Return(pingErr).Once()
	userStore.On("Ping", mock.Anything).Return(nil).Once()

	svc := service.NewUserService(userStore, newTestLogger())

	assert.ErrorIs(t, svc.Ping(context.Background()), pingErr)
	assert.NoError(t, svc.Ping(context.Background()))
}
