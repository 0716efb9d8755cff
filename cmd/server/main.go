// Package main implements the entry point for the User API server, a REST
// API exposing CRUD operations over users.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/phrazzld/user-api/internal/config"
	"github.com/phrazzld/user-api/internal/platform/logger"
	"github.com/phrazzld/user-api/internal/platform/sqlstore"
)

func main() {
	migrateCmd := flag.String("migrate", "",
		"run a migration command (up, down, redo, reset, status, version) and exit")
	flag.Parse()

	if err := run(context.Background(), *migrateCmd, flag.Args()...); err != nil {
		log.Printf("user-api: %v", err)
		os.Exit(1)
	}
}

// run loads configuration, connects to the datastore and either executes a
// migration command or serves HTTP until shutdown.
func run(ctx context.Context, migrateCmd string, migrateArgs ...string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"db_driver", cfg.Database.Driver)

	db, dialect, err := sqlstore.Open(ctx, cfg.Database, appLogger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if migrateCmd != "" {
		defer func() {
			if err := db.Close(); err != nil {
				appLogger.Error("Error closing database connection", "error", err)
			}
		}()
		return runMigrations(ctx, db.DB, dialect, migrateCmd, appLogger, migrateArgs...)
	}

	app, err := newApplication(cfg, appLogger, db, dialect)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
