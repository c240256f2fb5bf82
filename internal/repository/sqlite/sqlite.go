// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// modernc.org/sqlite is a pure Go translation of SQLite — no CGo, no C
// compiler, works everywhere Go works. The database lives in a single file
// (or entirely in memory with ":memory:", which the tests use).
//
// Each exported operation is a single statement or a single transaction, so
// concurrent requests never observe a half-written record and a field-merge
// update can't lose fields to a racing writer.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. The server owns the lifecycle: New at startup, Close on
// shutdown — nothing reaches the store except through an injected *DB.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for an ephemeral store) and
// runs migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Surface a bad path or permissions problem now, not on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool, flushing the WAL.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it safe to
// run on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS meals (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL,
			description    TEXT NOT NULL,
			price          TEXT NOT NULL,
			calories       INTEGER NOT NULL,
			protein        TEXT NOT NULL,
			carbs          TEXT NOT NULL,
			fat            TEXT NOT NULL,
			ingredients    TEXT NOT NULL,
			allergens      TEXT NOT NULL,
			image_url      TEXT NOT NULL,
			rating         TEXT NOT NULL,
			day_of_week    TEXT NOT NULL,
			is_vegetarian  INTEGER NOT NULL DEFAULT 0,
			is_vegan       INTEGER NOT NULL DEFAULT 0,
			is_gluten_free INTEGER NOT NULL DEFAULT 0,
			is_dairy_free  INTEGER NOT NULL DEFAULT 0,
			is_keto        INTEGER NOT NULL DEFAULT 0,
			is_low_sodium  INTEGER NOT NULL DEFAULT 0,
			is_pescatarian INTEGER NOT NULL DEFAULT 0,
			is_spicy       INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_meals_day_of_week ON meals(day_of_week);
	`)
	if err != nil {
		return fmt.Errorf("creating meals table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'admin',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	return nil
}
