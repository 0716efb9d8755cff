package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	for _, driver := range []string{"postgres", "pgx"} {
		d, err := DialectFor(driver)
		require.NoError(t, err)
		assert.Equal(t, "pgx", d.DriverName)
		assert.Equal(t, "postgres", d.GooseDialect)
	}

	d, err := DialectFor("sqlite3")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", d.DriverName)

	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestDialectPlaceholders(t *testing.T) {
	query, args, err := PostgreSQL.Builder().
		Select("id").From(usersTable).Where("email = ?", "a@b.c").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM users WHERE email = $1", query)
	assert.Equal(t, []interface{}{"a@b.c"}, args)

	query, _, err = SQLite.Builder().
		Select("id").From(usersTable).Where("email = ?", "a@b.c").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM users WHERE email = ?", query)
}
