// Package usecase implements storage and acquisition of the OAuth credential
// used for Apps Script API calls.
package usecase

import (
	"context"

	oauthDomain "github.com/utenadev/gca4g/internal/oauth/domain"
)

// OAuthUseCase defines the interface for managing the OAuth credential.
type OAuthUseCase interface {
	// SaveCredential persists credential, replacing any previous one.
	SaveCredential(ctx context.Context, credential *oauthDomain.Credential) error
	// LoadCredential returns the stored credential or ErrCredentialNotFound.
	LoadCredential(ctx context.Context) (*oauthDomain.Credential, error)
	// IsValid reports whether credential is present, non-empty and unexpired.
	IsValid(credential *oauthDomain.Credential) bool
	// ValidCredential loads the stored credential and checks it is usable.
	// Returns ErrCredentialRequired when absent and ErrTokenExpired when expired.
	ValidCredential(ctx context.Context) (*oauthDomain.Credential, error)
	// Authenticate acquires a new token from the provider and saves it.
	Authenticate(ctx context.Context) (*oauthDomain.Credential, error)
}
