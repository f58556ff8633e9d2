package sqldb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// database/sql drivers
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/camelcase/task-api/internal/redact"
)

// PingTimeout bounds the connectivity check performed by Open.
const PingTimeout = 5 * time.Second

// Open establishes a connection pool for the dialect and verifies it with a ping.
func Open(ctx context.Context, dialect Dialect, url string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if dialect == SQLite {
		// SQLite serializes writers; one connection also keeps :memory: databases coherent.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		slog.String("dialect", string(dialect)),
		slog.String("url", redact.String(url)))
	return db, nil
}
