package usecase

import (
	"context"
	"errors"

	"github.com/utenadev/gca4g/internal/storage"
	vaultDomain "github.com/utenadev/gca4g/internal/vault/domain"
	vaultService "github.com/utenadev/gca4g/internal/vault/service"
)

// vaultUseCase implements VaultUseCase.
type vaultUseCase struct {
	session    *vaultDomain.Session
	store      storage.Store
	keyDeriver vaultService.KeyDeriver
	cipher     vaultService.BlobCipher
}

// NewVaultUseCase creates a VaultUseCase with its own empty session.
func NewVaultUseCase(
	store storage.Store,
	keyDeriver vaultService.KeyDeriver,
	cipher vaultService.BlobCipher,
) VaultUseCase {
	return &vaultUseCase{
		session:    vaultDomain.NewSession(),
		store:      store,
		keyDeriver: keyDeriver,
		cipher:     cipher,
	}
}

// SetPassword sets the master password for this session.
func (v *vaultUseCase) SetPassword(ctx context.Context, password string) error {
	return v.session.SetPassword(password)
}

// HasPassword reports whether the master password has been set.
func (v *vaultUseCase) HasPassword(ctx context.Context) bool {
	return v.session.HasPassword()
}

// ClearPassword wipes the master password.
func (v *vaultUseCase) ClearPassword(ctx context.Context) {
	v.session.Clear()
}

// SaveSecret encrypts value and stores the blob, replacing any previous secret.
func (v *vaultUseCase) SaveSecret(ctx context.Context, value string) error {
	key, err := v.sessionKey()
	if err != nil {
		return err
	}
	defer vaultDomain.Zero(key)

	blob, err := v.cipher.Encrypt([]byte(value), key)
	if err != nil {
		return err
	}

	return v.store.Set(ctx, storage.KeySecret, blob)
}

// LoadSecret reads and decrypts the stored secret.
func (v *vaultUseCase) LoadSecret(ctx context.Context) (string, bool, error) {
	key, err := v.sessionKey()
	if err != nil {
		return "", false, err
	}
	defer vaultDomain.Zero(key)

	blob, err := v.store.Get(ctx, storage.KeySecret)
	if err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	plaintext, err := v.cipher.Decrypt(blob, key)
	if err != nil {
		return "", false, err
	}
	defer vaultDomain.Zero(plaintext)

	return string(plaintext), true, nil
}

// sessionKey derives the encryption key from the session password.
// The caller must Zero the returned key.
func (v *vaultUseCase) sessionKey() ([]byte, error) {
	password, ok := v.session.Password()
	if !ok {
		return nil, vaultDomain.ErrPasswordRequired
	}
	defer vaultDomain.Zero(password)

	return v.keyDeriver.DeriveKey(password)
}
