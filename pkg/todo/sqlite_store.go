package todo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
);`

// SQLiteStore persists the todo state in a key/value table.
type SQLiteStore struct {
	db  *sql.DB
	key Key
}

// OpenSQLiteStore opens (and creates) the database at path. Use ":memory:"
// for a throwaway database.
func OpenSQLiteStore(path string, key Key) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open todo database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize todo schema: %w", err)
	}

	return &SQLiteStore{db: db, key: key}, nil
}

// Load implements Store. A missing row yields an empty state.
func (s *SQLiteStore) Load(ctx context.Context) (State, error) {
	StoreOps.WithLabelValues("sqlite", "load").Inc()

	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", s.key.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return State{Todos: []Todo{}}, nil
	}
	if err != nil {
		StoreErrors.WithLabelValues("sqlite", "load").Inc()
		return State{}, fmt.Errorf("sqlite select: %w", err)
	}

	state, err := decodeState(data)
	if err != nil {
		StoreErrors.WithLabelValues("sqlite", "load").Inc()
		return State{}, err
	}
	return state, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, state State) error {
	StoreOps.WithLabelValues("sqlite", "save").Inc()

	data, err := encodeState(state)
	if err != nil {
		StoreErrors.WithLabelValues("sqlite", "save").Inc()
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
	`, s.key.String(), data, time.Now().Unix())
	if err != nil {
		StoreErrors.WithLabelValues("sqlite", "save").Inc()
		return fmt.Errorf("sqlite upsert: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
