package sqldb

import (
	"fmt"

	"github.com/pressly/goose/v3"
)

// Dialect identifies a supported SQL backend.
type Dialect string

// Supported dialects. The names match the database.driver config values.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// ParseDialect maps a configured driver name to a Dialect.
func ParseDialect(name string) (Dialect, error) {
	switch Dialect(name) {
	case Postgres, SQLite:
		return Dialect(name), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", name)
	}
}

// DriverName is the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == SQLite {
		return "sqlite3"
	}
	return "pgx"
}

func (d Dialect) gooseDialect() goose.Dialect {
	if d == SQLite {
		return goose.DialectSQLite3
	}
	return goose.DialectPostgres
}

func (d Dialect) migrationsDir() string {
	return "migrations/" + string(d)
}
