package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/user-api/internal/platform/sqlstore"
)

var migrationCommands = map[string]bool{
	"up":        true,
	"up-by-one": true,
	"down":      true,
	"redo":      true,
	"reset":     true,
	"status":    true,
	"version":   true,
}

// runMigrations executes one goose command against db. It is called from
// run when the -migrate flag is set.
func runMigrations(
	ctx context.Context,
	db *sql.DB,
	dialect sqlstore.Dialect,
	command string,
	logger *slog.Logger,
	args ...string,
) error {
	if !migrationCommands[command] {
		return fmt.Errorf("unknown migration command %q", command)
	}

	logger.Info("Executing migrations", "command", command, "db_system", dialect.Name)
	if err := sqlstore.Migrate(ctx, db, dialect, command, logger, args...); err != nil {
		return err
	}
	logger.Info("Migrations completed", "command", command)
	return nil
}
