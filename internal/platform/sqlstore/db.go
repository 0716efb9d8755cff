package sqlstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver
	"github.com/phrazzld/user-api/internal/config"
)

const connMaxLifetime = 5 * time.Minute

type poolSettings struct {
	maxOpen     int
	maxLifetime time.Duration // zero keeps connections forever
}

func poolSettingsFor(dialect Dialect, maxOpen int) poolSettings {
	// SQLite serializes writers, and every :memory: connection is a separate
	// database that vanishes when the connection is recycled.
	if dialect.Name == SQLite.Name {
		return poolSettings{maxOpen: 1}
	}
	if maxOpen < 1 {
		maxOpen = 1
	}
	return poolSettings{maxOpen: maxOpen, maxLifetime: connMaxLifetime}
}

// Open establishes a connection pool for the configured driver and verifies it with a ping.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sqlx.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sqlx.Open(dialect.DriverName, cfg.URL)
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("failed to open database connection: %w", err)
	}

	pool := poolSettingsFor(dialect, cfg.MaxOpenConns)
	db.SetMaxOpenConns(pool.maxOpen)
	db.SetMaxIdleConns(pool.maxOpen)
	db.SetConnMaxLifetime(pool.maxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger != nil {
		logger.Info("Database connection established",
			slog.String("db_system", dialect.Name),
			slog.Int("max_open_conns", pool.maxOpen))
	}
	return db, dialect, nil
}
