package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

// MySQLStore implements Store for MySQL databases.
type MySQLStore struct {
	db *sql.DB
}

// NewMySQLStore creates a new MySQL key/value store.
func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

// Get retrieves the value stored under key.
func (m *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT entry_value FROM kv_entries WHERE entry_key = ?`

	var value []byte
	if err := m.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get entry")
	}
	return value, nil
}

// Set inserts or replaces the value stored under key.
func (m *MySQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_entries (entry_key, entry_value, updated_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE entry_value = VALUES(entry_value), updated_at = VALUES(updated_at)`

	if _, err := m.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return apperrors.Wrap(err, "failed to set entry")
	}
	return nil
}

// Delete removes the value stored under key.
func (m *MySQLStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE entry_key = ?`

	if _, err := m.db.ExecContext(ctx, query, key); err != nil {
		return apperrors.Wrap(err, "failed to delete entry")
	}
	return nil
}

// Ping verifies the database connection.
func (m *MySQLStore) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}
