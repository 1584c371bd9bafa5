// Package storage provides the persistent key/value store backing the vault blob,
// the OAuth credential and the project settings.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

// Well-known keys.
const (
	KeySecret          = "apiKey"
	KeyOAuthCredential = "clasprc"
	KeyProjectSettings = "claspSettings"
)

// ErrEntryNotFound indicates no value is stored under the requested key.
var ErrEntryNotFound = apperrors.Wrap(apperrors.ErrNotFound, "entry not found")

// Store is a persistent key/value store.
type Store interface {
	// Get returns the value stored under key or ErrEntryNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}

// GetJSON loads the value under key and decodes it into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
