// Package sqlstore provides the relational implementation of the storage
// interfaces defined in the internal/store package. Queries are built with
// squirrel and mapped onto rows with sqlx, so the same store runs against
// PostgreSQL (through the pgx stdlib driver) and SQLite (through go-sqlite3).
// The schema is owned by the embedded goose migrations.
package sqlstore
