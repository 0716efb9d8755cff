package sqlstore

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Dialect captures the differences between the supported databases.
type Dialect struct {
	// Name identifies the database system in logs, spans and metrics.
	Name string
	// DriverName is the database/sql driver the connection is opened with.
	DriverName string
	// GooseDialect is the dialect name goose uses for migrations.
	GooseDialect string
	// Placeholder is the bind variable format for generated SQL.
	Placeholder sq.PlaceholderFormat
}

var (
	// PostgreSQL uses the pgx stdlib driver and $1, $2 placeholders.
	PostgreSQL = Dialect{
		Name:         "postgresql",
		DriverName:   "pgx",
		GooseDialect: "postgres",
		Placeholder:  sq.Dollar,
	}

	// SQLite uses go-sqlite3 and ? placeholders.
	SQLite = Dialect{
		Name:         "sqlite",
		DriverName:   "sqlite3",
		GooseDialect: "sqlite3",
		Placeholder:  sq.Question,
	}
)

// DialectFor maps a configured driver name to its Dialect.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "postgres", "pgx":
		return PostgreSQL, nil
	case "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Builder returns a squirrel statement builder bound to the dialect's placeholders.
func (d Dialect) Builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(d.Placeholder)
}
