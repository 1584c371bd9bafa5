package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	oauthDomain "github.com/utenadev/gca4g/internal/oauth/domain"
	oauthService "github.com/utenadev/gca4g/internal/oauth/service"
	"github.com/utenadev/gca4g/internal/storage"
)

// oauthUseCase implements OAuthUseCase.
type oauthUseCase struct {
	store    storage.Store
	provider oauthService.TokenProvider
	logger   *slog.Logger
	now      func() time.Time
}

// NewOAuthUseCase creates an OAuthUseCase storing the credential in store.
func NewOAuthUseCase(
	store storage.Store,
	provider oauthService.TokenProvider,
	logger *slog.Logger,
) OAuthUseCase {
	return &oauthUseCase{
		store:    store,
		provider: provider,
		logger:   logger,
		now:      time.Now,
	}
}

// SaveCredential stores the credential as JSON.
func (o *oauthUseCase) SaveCredential(ctx context.Context, credential *oauthDomain.Credential) error {
	if credential == nil || credential.AccessToken == "" {
		return oauthDomain.ErrCredentialRequired
	}
	return storage.SetJSON(ctx, o.store, storage.KeyOAuthCredential, credential)
}

// LoadCredential reads the stored credential.
func (o *oauthUseCase) LoadCredential(ctx context.Context) (*oauthDomain.Credential, error) {
	var credential oauthDomain.Credential
	if err := storage.GetJSON(ctx, o.store, storage.KeyOAuthCredential, &credential); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return nil, oauthDomain.ErrCredentialNotFound
		}
		return nil, err
	}
	return &credential, nil
}

// IsValid reports whether credential can be used now.
func (o *oauthUseCase) IsValid(credential *oauthDomain.Credential) bool {
	return oauthDomain.IsValid(credential, o.now())
}

// ValidCredential returns the stored credential if it can be used now.
func (o *oauthUseCase) ValidCredential(ctx context.Context) (*oauthDomain.Credential, error) {
	credential, err := o.LoadCredential(ctx)
	if err != nil {
		if errors.Is(err, oauthDomain.ErrCredentialNotFound) {
			return nil, oauthDomain.ErrCredentialRequired
		}
		return nil, err
	}

	if err := credential.Validate(o.now()); err != nil {
		return nil, err
	}
	return credential, nil
}

// Authenticate obtains a token from the provider and persists it.
func (o *oauthUseCase) Authenticate(ctx context.Context) (*oauthDomain.Credential, error) {
	credential, err := o.provider.Token(ctx)
	if err != nil {
		return nil, err
	}

	if err := o.SaveCredential(ctx, credential); err != nil {
		return nil, err
	}

	o.logger.Info("oauth credential saved", slog.Bool("expires", credential.ExpiryDate != 0))
	return credential, nil
}
