package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/camelcase/task-api/internal/platform/logger"
	"github.com/camelcase/task-api/internal/platform/sqldb"
)

// EnvDatabaseURL selects a PostgreSQL server for database tests.
const EnvDatabaseURL = "TASKAPI_TEST_DATABASE_URL"

var sqliteCounter atomic.Int64

// DatabaseURL returns the PostgreSQL URL configured for tests, or "".
func DatabaseURL() string {
	return strings.TrimSpace(os.Getenv(EnvDatabaseURL))
}

// Open returns a migrated, isolated database and its dialect. The database
// is closed when the test finishes.
func Open(t testing.TB) (*sql.DB, sqldb.Dialect) {
	t.Helper()

	if base := DatabaseURL(); base != "" {
		return openPostgres(t, base), sqldb.Postgres
	}
	return openSQLite(t), sqldb.SQLite
}

func openSQLite(t testing.TB) *sql.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb_%d?mode=memory&cache=shared", sqliteCounter.Add(1))
	return openAndMigrate(t, sqldb.SQLite, dsn)
}

// openPostgres migrates a fresh schema and points the pool's search_path at it.
func openPostgres(t testing.TB, base string) *sql.DB {
	t.Helper()
	ctx := context.Background()

	admin, err := sql.Open(sqldb.Postgres.DriverName(), base)
	require.NoError(t, err, "failed to open admin connection")

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	_, err = admin.ExecContext(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err, "failed to create test schema")

	t.Cleanup(func() {
		if _, err := admin.ExecContext(context.Background(), "DROP SCHEMA "+schema+" CASCADE"); err != nil {
			t.Logf("Warning: failed to drop test schema %s: %v", schema, err)
		}
		_ = admin.Close()
	})

	u, err := url.Parse(base)
	require.NoError(t, err, "invalid %s", EnvDatabaseURL)
	q := u.Query()
	q.Set("search_path", schema)
	u.RawQuery = q.Encode()

	return openAndMigrate(t, sqldb.Postgres, u.String())
}

func openAndMigrate(t testing.TB, dialect sqldb.Dialect, dsn string) *sql.DB {
	t.Helper()
	ctx := context.Background()
	log := logger.FromContext(ctx)

	db, err := sqldb.Open(ctx, dialect, dsn, log)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database connection: %v", err)
		}
	})

	require.NoError(t, sqldb.Migrate(ctx, db, dialect, sqldb.MigrateUp, log), "failed to run migrations")
	return db
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}
