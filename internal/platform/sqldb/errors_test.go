package sqldb

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/camelcase/task-api/internal/store"
)

type fakeResult struct {
	rows int64
	err  error
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.rows, r.err }

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "no rows", err: sql.ErrNoRows, want: store.ErrNotFound},
		{name: "pg check", err: &pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_status_check"}, want: store.ErrInvalidEntity},
		{name: "pg not null", err: &pgconn.PgError{Code: notNullViolationCode, ColumnName: "title"}, want: store.ErrInvalidEntity},
		{name: "sqlite constraint", err: sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, want: store.ErrInvalidEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := MapError(tc.err)
			assert.ErrorIs(t, got, tc.want)
		})
	}

	assert.Nil(t, MapError(nil))

	other := errors.New("connection reset")
	assert.Same(t, other, MapError(other))

	unique := &pgconn.PgError{Code: "23505"}
	assert.Equal(t, error(unique), MapError(unique))
}

func TestIsCheckConstraintViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isCheckConstraintViolation(&pgconn.PgError{Code: checkViolationCode}))
	assert.False(t, isCheckConstraintViolation(&pgconn.PgError{Code: notNullViolationCode}))
	assert.True(t, isCheckConstraintViolation(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}))
	assert.False(t, isCheckConstraintViolation(errors.New("boom")))
}

func TestCheckRowsAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, CheckRowsAffected(fakeResult{rows: 1}))
	assert.ErrorIs(t, CheckRowsAffected(fakeResult{rows: 0}), store.ErrTaskNotFound)
	assert.Error(t, CheckRowsAffected(fakeResult{err: errors.New("unsupported")}))
	assert.Error(t, CheckRowsAffected(nil))
}

func TestParseDialect(t *testing.T) {
	t.Parallel()

	d, err := ParseDialect("postgres")
	assert.NoError(t, err)
	assert.Equal(t, "pgx", d.DriverName())

	d, err = ParseDialect("sqlite")
	assert.NoError(t, err)
	assert.Equal(t, "sqlite3", d.DriverName())
	assert.Equal(t, "migrations/sqlite", d.migrationsDir())

	_, err = ParseDialect("memory")
	assert.Error(t, err)
}
