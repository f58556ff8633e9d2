// Package sqldb provides the relational implementation of store.TaskStore.
// It runs against PostgreSQL (through the pgx stdlib driver) or SQLite
// (through mattn/go-sqlite3), maps driver errors onto store errors, and
// owns the embedded goose migrations for both dialects.
package sqldb
