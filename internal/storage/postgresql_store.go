package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

// PostgreSQLStore implements Store for PostgreSQL databases.
type PostgreSQLStore struct {
	db *sql.DB
}

// NewPostgreSQLStore creates a new PostgreSQL key/value store.
func NewPostgreSQLStore(db *sql.DB) *PostgreSQLStore {
	return &PostgreSQLStore{db: db}
}

// Get retrieves the value stored under key.
func (p *PostgreSQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT entry_value FROM kv_entries WHERE entry_key = $1`

	var value []byte
	if err := p.db.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get entry")
	}
	return value, nil
}

// Set inserts or replaces the value stored under key.
func (p *PostgreSQLStore) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_entries (entry_key, entry_value, updated_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (entry_key) DO UPDATE SET entry_value = EXCLUDED.entry_value, updated_at = EXCLUDED.updated_at`

	if _, err := p.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return apperrors.Wrap(err, "failed to set entry")
	}
	return nil
}

// Delete removes the value stored under key.
func (p *PostgreSQLStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE entry_key = $1`

	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return apperrors.Wrap(err, "failed to delete entry")
	}
	return nil
}

// Ping verifies the database connection.
func (p *PostgreSQLStore) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
