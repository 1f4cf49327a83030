// Package sqlite provides SQLite-based storage implementations for grimoire services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction. Corpus rebuilds run as one transaction
// so readers only ever see the previous or the new corpus.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// createSchema creates the database tables if they don't exist.
//
// entries_fts is an external-content FTS5 table over the entries table;
// its rows are maintained explicitly by the corpus rebuild, which is
// the only writer.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT NOT NULL,
			pack TEXT NOT NULL,
			name_fr TEXT NOT NULL,
			name_en TEXT NOT NULL,
			type TEXT NOT NULL,
			source TEXT NOT NULL,
			translated INTEGER NOT NULL,
			content_hash TEXT NOT NULL DEFAULT '',
			data TEXT NOT NULL,
			PRIMARY KEY (pack, id)
		);

		CREATE INDEX IF NOT EXISTS idx_entries_name_fr ON entries(name_fr COLLATE NOCASE);
		CREATE INDEX IF NOT EXISTS idx_entries_name_en ON entries(name_en COLLATE NOCASE);
		CREATE INDEX IF NOT EXISTS idx_entries_type ON entries(type);
		CREATE INDEX IF NOT EXISTS idx_entries_pack ON entries(pack);
		CREATE INDEX IF NOT EXISTS idx_entries_id ON entries(id);

		CREATE VIRTUAL TABLE IF NOT EXISTS entries_fts USING fts5(
			name_fr, name_en, pack, description,
			content=entries, content_rowid=rowid
		);

		CREATE TABLE IF NOT EXISTS metadata (key TEXT PRIMARY KEY, value TEXT);
	`

	_, err := db.db.Exec(schema)
	return err
}
