package testdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countTasks(t *testing.T, q interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}) int {
	t.Helper()
	var n int
	require.NoError(t, q.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM tasks").Scan(&n))
	return n
}

func TestOpenIsMigratedAndIsolated(t *testing.T) {
	first, _ := Open(t)
	second, _ := Open(t)

	_, err := first.ExecContext(context.Background(),
		"INSERT INTO tasks (title, status, due_date) VALUES ($1, $2, $3)",
		"Isolated", "PENDING", "2025-06-01")
	require.NoError(t, err)

	assert.Equal(t, 1, countTasks(t, first))
	assert.Equal(t, 0, countTasks(t, second), "databases from separate Open calls must not share rows")
}

func TestWithTxRollsBack(t *testing.T) {
	db, _ := Open(t)

	WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.ExecContext(context.Background(),
			"INSERT INTO tasks (title, status, due_date) VALUES ($1, $2, $3)",
			"Rolled back", "PENDING", "2025-06-01")
		require.NoError(t, err)
		assert.Equal(t, 1, countTasks(t, tx))
	})

	assert.Equal(t, 0, countTasks(t, db))
}
