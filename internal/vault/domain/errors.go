package domain

import (
	"github.com/utenadev/gca4g/internal/errors"
)

// Vault error definitions.
var (
	// ErrPasswordRequired indicates the master password has not been set for this session.
	ErrPasswordRequired = errors.Wrap(errors.ErrUnauthorized, "master password is not set")

	// ErrEmptyPassword indicates an empty master password was supplied.
	ErrEmptyPassword = errors.Wrap(errors.ErrInvalidInput, "master password is required")

	// ErrInvalidKeySize indicates the key passed to the cipher is not 32 bytes long.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates the blob could not be authenticated with the given key.
	//
	// This covers a wrong password, a tampered or truncated blob and a corrupted
	// store entry. The cause is not disclosed further.
	ErrDecryptionFailed = errors.Wrap(errors.ErrIntegrity, "decryption failed")
)
