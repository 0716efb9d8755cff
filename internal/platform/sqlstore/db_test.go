package sqlstore

import (
	"context"
	"testing"

	"github.com/phrazzld/user-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolSettingsFor(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		maxOpen int
		want    poolSettings
	}{
		{name: "postgres", dialect: PostgreSQL, maxOpen: 10, want: poolSettings{maxOpen: 10, maxLifetime: connMaxLifetime}},
		{name: "postgres floor", dialect: PostgreSQL, maxOpen: 0, want: poolSettings{maxOpen: 1, maxLifetime: connMaxLifetime}},
		{name: "sqlite keeps its only connection", dialect: SQLite, maxOpen: 10, want: poolSettings{maxOpen: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, poolSettingsFor(tt.dialect, tt.maxOpen))
		})
	}
}

func TestOpen_SQLiteMemoryPersistsAcrossQueries(t *testing.T) {
	ctx := context.Background()
	db, dialect, err := Open(ctx, config.DatabaseConfig{URL: ":memory:", Driver: "sqlite3", MaxOpenConns: 5}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	assert.Equal(t, SQLite.Name, dialect.Name)
	assert.Equal(t, 1, db.Stats().MaxOpenConnections)

	_, err = db.ExecContext(ctx, "CREATE TABLE kv (k TEXT)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO kv (k) VALUES ('a')")
	require.NoError(t, err)

	var n int
	require.NoError(t, db.GetContext(ctx, &n, "SELECT COUNT(*) FROM kv"))
	assert.Equal(t, 1, n)
}
