package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/user-api/internal/domain"
	"github.com/phrazzld/user-api/internal/store"
	"go.opentelemetry.io/otel/trace"
)

const usersTable = "users"

var userColumns = []string{"id", "name", "email", "age", "created_at", "updated_at"}

// userRow is the database representation of domain.User.
type userRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	Age       int       `db:"age"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Age:       r.Age,
		CreatedAt: r.CreatedAt.UTC(),
		UpdatedAt: r.UpdatedAt.UTC(),
	}
}

// UserStore implements the store.UserStore interface on top of sqlx and squirrel.
type UserStore struct {
	db        *sqlx.DB
	dialect   Dialect
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *queryMetrics
	slowQuery time.Duration
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a new UserStore. The connection pool is owned by the caller.
func NewUserStore(db *sqlx.DB, dialect Dialect, opts ...Option) *UserStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	s := &UserStore{db: db, dialect: dialect}
	defaultInstrumentation(s)
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(slog.String("component", "user_store"))
	return s
}

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	query, args, err := s.dialect.Builder().
		Select(userColumns...).
		From(usersTable).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list query: %w", err)
	}

	var rows []userRow
	err = s.observe(ctx, "list", func(ctx context.Context) error {
		return MapError(s.db.SelectContext(ctx, &rows, query, args...))
	})
	if err != nil {
		return nil, store.NewStoreError("user", "list", "failed to list users", err)
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toDomain())
	}
	return users, nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.getOne(ctx, "get_by_id", sq.Eq{"id": id})
}

// GetByEmail implements store.UserStore.GetByEmail
// Returns store.ErrUserNotFound if the user does not exist.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getOne(ctx, "get_by_email", sq.Eq{"email": email})
}

func (s *UserStore) getOne(ctx context.Context, operation string, where sq.Eq) (*domain.User, error) {
	query, args, err := s.dialect.Builder().
		Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s query: %w", operation, err)
	}

	var row userRow
	err = s.observe(ctx, operation, func(ctx context.Context) error {
		return MapError(s.db.GetContext(ctx, &row, query, args...))
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", operation, "failed to fetch user", err)
	}
	return row.toDomain(), nil
}

// Create implements store.UserStore.Create
// Returns store.ErrEmailExists when the email is already taken.
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	query, args, err := s.dialect.Builder().
		Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Name, user.Email, user.Age, user.CreatedAt, user.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	err = s.observe(ctx, "create", func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return MapError(err)
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
		}
		return store.NewStoreError("user", "create", "failed to insert user", err)
	}

	s.logger.Debug("user created", slog.String("user_id", user.ID))
	return nil
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	query, args, err := s.dialect.Builder().
		Update(usersTable).
		SetMap(map[string]interface{}{
			"name":       user.Name,
			"email":      user.Email,
			"age":        user.Age,
			"updated_at": user.UpdatedAt,
		}).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	err = s.observe(ctx, "update", func(ctx context.Context) error {
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return MapError(err)
		}
		return checkRowsAffected(result)
	})
	switch {
	case err == nil:
		s.logger.Debug("user updated", slog.String("user_id", user.ID))
		return nil
	case errors.Is(err, store.ErrNotFound):
		return store.ErrUserNotFound
	case errors.Is(err, store.ErrDuplicate):
		return fmt.Errorf("%w: %v", store.ErrEmailExists, err)
	default:
		return store.NewStoreError("user", "update", "failed to update user", err)
	}
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, id string) error {
	query, args, err := s.dialect.Builder().
		Delete(usersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	err = s.observe(ctx, "delete", func(ctx context.Context) error {
		result, err := s.db.ExecContext(ctx, query, args...)
		if err != nil {
			return MapError(err)
		}
		return checkRowsAffected(result)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrUserNotFound
		}
		return store.NewStoreError("user", "delete", "failed to delete user", err)
	}

	s.logger.Debug("user deleted", slog.String("user_id", id))
	return nil
}

// Ping implements store.UserStore.Ping
func (s *UserStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
