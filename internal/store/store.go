// Package store persists the append-only event log: quiz runs, chosen
// recommendations, and LLM request telemetry. Score maps themselves are
// never stored; every run recomputes them fresh.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, applies pragmas, and
// creates the schema if missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Events returns an EventRepo backed by this store.
func (s *Store) Events() EventRepo {
	return &eventRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func createSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS session_events (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at  TEXT    NOT NULL DEFAULT (datetime('now')),
	session_id  TEXT    NOT NULL,
	mode        TEXT    NOT NULL,
	answers     TEXT    NOT NULL,
	top_genres  TEXT    NOT NULL,
	top_tags    TEXT    NOT NULL,
	source      TEXT    NOT NULL,
	items_json  TEXT    NOT NULL
);

CREATE TABLE IF NOT EXISTS llm_events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at    TEXT    NOT NULL DEFAULT (datetime('now')),
	provider      TEXT    NOT NULL,
	model         TEXT    NOT NULL,
	purpose       TEXT    NOT NULL,
	input_tokens  INTEGER NOT NULL,
	output_tokens INTEGER NOT NULL,
	latency_ms    INTEGER NOT NULL,
	success       INTEGER NOT NULL,
	error_message TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_session_events_created ON session_events(created_at);
CREATE INDEX IF NOT EXISTS idx_llm_events_model ON llm_events(model);
`
	_, err := db.Exec(schema)
	return err
}

// DefaultDBPath returns the XDG data path for the database, creating the
// parent directory if needed.
func DefaultDBPath() (string, error) {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	path := filepath.Join(dataDir, "shelfmate", "shelfmate.db")
	return path, EnsureDir(path)
}

// EnsureDir creates the parent directory of path if it does not exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
