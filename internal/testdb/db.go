package testdb

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/user-api/internal/ciutil"
	"github.com/phrazzld/user-api/internal/config"
	"github.com/phrazzld/user-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 5 * time.Second

// IsIntegrationTestEnvironment returns true if an external database is
// configured (USERAPI_TEST_DB_URL or DATABASE_URL), indicating that tests
// should use PostgreSQL.
func IsIntegrationTestEnvironment() bool {
	return ciutil.TestDatabaseURL(nil) != ""
}

// Config returns the database configuration tests connect with: the external
// database when configured, otherwise a private in-memory sqlite database.
func Config() config.DatabaseConfig {
	if url := ciutil.TestDatabaseURL(nil); url != "" {
		return config.DatabaseConfig{URL: url, Driver: ciutil.TestDatabaseDriver(), MaxOpenConns: 4}
	}
	return config.DatabaseConfig{URL: ":memory:", Driver: "sqlite3", MaxOpenConns: 1}
}

// Open connects to the test database, applies the migrations and empties the
// users table. The connection is closed when the test finishes.
func Open(t *testing.T) (*sqlx.DB, sqlstore.Dialect) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(testWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelWarn}))

	db, dialect, err := sqlstore.Open(ctx, Config(), logger)
	require.NoError(t, err, "Failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	err = sqlstore.Migrate(ctx, db.DB, dialect, "up", logger)
	require.NoError(t, err, "Failed to run migrations")

	_, err = db.ExecContext(ctx, "DELETE FROM users")
	require.NoError(t, err, "Failed to reset users table")

	return db, dialect
}

// OpenUserStore is a convenience wrapper returning a ready UserStore.
func OpenUserStore(t *testing.T, opts ...sqlstore.Option) *sqlstore.UserStore {
	t.Helper()
	db, dialect := Open(t)
	return sqlstore.NewUserStore(db, dialect, opts...)
}

// CountUsers returns the number of rows in the users table.
func CountUsers(t *testing.T, db *sqlx.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.Get(&n, "SELECT COUNT(*) FROM users"))
	return n
}

// testWriter forwards log output to t.Log.
type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
