package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/phrazzld/user-api/internal/api"
	"github.com/phrazzld/user-api/internal/api/docs"
	"github.com/phrazzld/user-api/internal/api/middleware"
	"github.com/phrazzld/user-api/internal/config"
	"github.com/phrazzld/user-api/internal/platform/sqlstore"
	"github.com/phrazzld/user-api/internal/service"
	"github.com/phrazzld/user-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sqlx.DB

	userStore   store.UserStore
	userService service.UserService

	accessLog *middleware.AccessLog
	docs      *docs.Builder
}

// newApplication creates a new application instance with all dependencies initialized.
// The database connection must be established before application initialization.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sqlx.DB,
	dialect sqlstore.Dialect,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.userStore = sqlstore.NewUserStore(db, dialect,
		sqlstore.WithLogger(logger),
		sqlstore.WithSlowQueryThreshold(time.Duration(cfg.Database.SlowQueryMS)*time.Millisecond),
	)
	app.userService = service.NewUserService(app.userStore, logger)

	accessLog, err := middleware.OpenAccessLog(cfg.Server.AccessLog, logger)
	if err != nil {
		return nil, err
	}
	app.accessLog = accessLog

	app.docs = api.NewDocsBuilder(cfg.Server.DocsServerURL)

	logger.Info("Application initialized successfully",
		"access_log", cfg.Server.AccessLog)
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.accessLog != nil {
		if err := app.accessLog.Close(); err != nil {
			app.logger.Error("Error closing access log", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
