// Package usecase implements the secret vault: a master password held for the
// session, and one secret stored encrypted under a password-derived key.
package usecase

import (
	"context"
)

// VaultUseCase defines the interface for the password-protected secret vault.
type VaultUseCase interface {
	// SetPassword sets the master password for this session.
	SetPassword(ctx context.Context, password string) error
	// HasPassword reports whether the master password has been set.
	HasPassword(ctx context.Context) bool
	// ClearPassword ends the session and wipes the master password.
	ClearPassword(ctx context.Context)
	// SaveSecret encrypts value under the session password and persists it.
	SaveSecret(ctx context.Context, value string) error
	// LoadSecret decrypts the stored secret. found is false when nothing is stored.
	LoadSecret(ctx context.Context) (value string, found bool, err error)
}
