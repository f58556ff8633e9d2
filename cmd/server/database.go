package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/camelcase/task-api/internal/config"
	"github.com/camelcase/task-api/internal/platform/sqldb"
)

// errNoDatabase is returned when a SQL-only operation runs against the memory driver.
var errNoDatabase = errors.New("the memory driver has no database")

// setupAppDatabase opens the configured SQL database. It returns a nil *sql.DB
// for the memory driver.
func setupAppDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*sql.DB, error) {
	if cfg.Database.Driver == "memory" {
		logger.Info("Using in-memory task store")
		return nil, nil
	}

	dialect, err := sqldb.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sqldb.Open(ctx, dialect, cfg.Database.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// runMigrationCommand executes a single migration command and closes the database.
func runMigrationCommand(ctx context.Context, cfg *config.Config, command string, logger *slog.Logger) error {
	if cfg.Database.Driver == "memory" {
		return fmt.Errorf("cannot run migrations: %w", errNoDatabase)
	}

	db, err := setupAppDatabase(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
	}()

	dialect, err := sqldb.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return err
	}
	return sqldb.Migrate(ctx, db, dialect, command, logger)
}
