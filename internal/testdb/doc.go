// Package testdb provides utilities specifically for database testing.
//
// Tests get a migrated, empty users table. By default this is an in-memory
// SQLite database; when DATABASE_URL is set the tests run against that
// PostgreSQL instance instead.
package testdb
