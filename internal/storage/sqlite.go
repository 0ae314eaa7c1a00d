// Package storage persists accounts, payments, opportunities, the status
// board, and the action history in SQLite. It plays the role the hosted
// database plays for the web client: the engines never touch it directly;
// callers load records, run the pure computations, and write back.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"go.uber.org/zap"

	"github.com/TheRealTradeX/ARG-Collectors-Hub/internal/model"
)

// Store is a SQLite-backed record store.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// Open creates or opens the database at path and applies the schema.
// ":memory:" is accepted for tests.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create storage directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite does not benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id TEXT PRIMARY KEY,
	merchant TEXT NOT NULL,
	client TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'Unsorted',
	start_date TEXT NOT NULL DEFAULT '',
	amount TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL DEFAULT '',
	increase_date TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	added_date TEXT NOT NULL DEFAULT '',
	last_touched TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS payments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
	date TEXT NOT NULL,
	amount REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_payments_account ON payments(account_id);

CREATE TABLE IF NOT EXISTS opportunities (
	id TEXT PRIMARY KEY,
	merchant TEXT NOT NULL,
	client TEXT NOT NULL DEFAULT '',
	amount TEXT NOT NULL DEFAULT '',
	type TEXT NOT NULL DEFAULT '',
	frequency TEXT NOT NULL DEFAULT '',
	start_date TEXT NOT NULL DEFAULT '',
	payment_status TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	stage TEXT NOT NULL DEFAULT 'Lead',
	converted_account_id TEXT NOT NULL DEFAULT '',
	payment_plan_made_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS statuses (
	name TEXT PRIMARY KEY,
	position INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL,
	details TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL
);
`

func (s *Store) migrate() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM statuses`).Scan(&count); err != nil {
		return fmt.Errorf("failed to inspect statuses: %w", err)
	}
	if count == 0 {
		if err := s.SaveStatuses(context.Background(), model.NewStatusSet(model.DefaultStatuses...)); err != nil {
			return err
		}
		s.logger.Debug("seeded default status board", zap.String("op", "storage.migrate"))
	}
	return nil
}
