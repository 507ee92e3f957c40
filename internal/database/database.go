package database

import (
	"database/sql"
	"fmt"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Config holds the connection parameters for the PostgreSQL pool.
type Config struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string // optional DDL script applied after connecting
}

// Connect opens and verifies a connection pool. The caller owns the
// returned handle and is responsible for closing it at shutdown; nothing
// in this package keeps global state.
func Connect(cfg Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if cfg.SchemaPath != "" {
		if err := applySchema(db, cfg.SchemaPath); err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

// applySchema reads and executes a DDL script. Statements are expected to
// be idempotent (CREATE TABLE IF NOT EXISTS and the like).
func applySchema(db *sql.DB, schemaPath string) error {
	content, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("could not read schema file %s: %w", schemaPath, err)
	}
	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("could not execute schema script: %w", err)
	}
	return nil
}
