package repositories

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when a specific record is not found.
	// Ownership misses (a row that exists but belongs to another user)
	// surface as ErrNotFound as well, so callers cannot distinguish
	// foreign rows from absent ones.
	ErrNotFound = errors.New("requested record not found")

	// ErrDatabaseError wraps unexpected database/driver errors.
	ErrDatabaseError = errors.New("database error")

	// ErrDuplicateKey is returned when an insert violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key value violates unique constraint")
)

// SQLExecutor is satisfied by *sql.DB and *sql.Tx, so repository methods
// can run against the pool directly or inside a transaction.
type SQLExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// scanner is satisfied by *sql.Row and *sql.Rows, allowing shared row
// scanning helpers across single- and multi-row queries.
type scanner interface {
	Scan(dest ...interface{}) error
}
