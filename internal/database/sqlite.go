package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"jobboard/internal/board"
	"jobboard/internal/database/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStore implements the board.Store interface on a single SQLite table.
// Every write is also recorded in entry_history.
type SQLiteStore struct {
	db    *sql.DB
	path  string
	clock board.Clock
}

// EntryChange is one recorded write to the store.
type EntryChange struct {
	ID        int64
	Key       string
	Operation string // "set" or "remove"
	Size      int64
	CreatedAt time.Time
}

// NewSQLiteStore opens the database at path, applies pending migrations and
// returns a store. path can be a file path or ":memory:". A nil clock uses
// the real time.
func NewSQLiteStore(path string, clock board.Clock) (*SQLiteStore, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating %s: %w", path, err)
	}

	if clock == nil {
		clock = board.RealClock{}
	}
	return &SQLiteStore{db: db, path: path, clock: clock}, nil
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Each connection to ":memory:" is a separate database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}

	return db, nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(context.Background(),
		"SELECT value FROM entries WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	now := s.clock.Now().UTC()
	return s.withTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO entries (key, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, now)
		if err != nil {
			return fmt.Errorf("writing %s: %w", key, err)
		}
		return recordChange(tx, key, "set", int64(len(value)), now)
	})
}

// Remove deletes key. Removing a missing key is not an error and is not recorded.
func (s *SQLiteStore) Remove(key string) error {
	now := s.clock.Now().UTC()
	return s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec("DELETE FROM entries WHERE key = ?", key)
		if err != nil {
			return fmt.Errorf("removing %s: %w", key, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("removing %s: %w", key, err)
		}
		if n == 0 {
			return nil
		}
		return recordChange(tx, key, "remove", 0, now)
	})
}

// History returns up to limit of the most recent writes, newest first.
func (s *SQLiteStore) History(limit int) ([]EntryChange, error) {
	rows, err := s.db.Query(`
		SELECT id, key, operation, size, created_at
		FROM entry_history
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var changes []EntryChange
	for rows.Next() {
		var c EntryChange
		if err := rows.Scan(&c.ID, &c.Key, &c.Operation, &c.Size, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		changes = append(changes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	return changes, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteStore) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteStore) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func recordChange(tx *sql.Tx, key, operation string, size int64, at time.Time) error {
	_, err := tx.Exec(
		"INSERT INTO entry_history (key, operation, size, created_at) VALUES (?, ?, ?, ?)",
		key, operation, size, at)
	if err != nil {
		return fmt.Errorf("recording %s of %s: %w", operation, key, err)
	}
	return nil
}

// Compile-time check that SQLiteStore implements board.Store interface
var _ board.Store = (*SQLiteStore)(nil)
