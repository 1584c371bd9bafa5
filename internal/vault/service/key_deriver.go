package service

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	vaultDomain "github.com/utenadev/gca4g/internal/vault/domain"
)

// pbkdf2Deriver implements KeyDeriver with PBKDF2-HMAC-SHA256.
type pbkdf2Deriver struct {
	salt       []byte
	iterations int
}

// NewPBKDF2Deriver creates a KeyDeriver using the given salt and iteration count.
func NewPBKDF2Deriver(salt []byte, iterations int) KeyDeriver {
	return &pbkdf2Deriver{salt: salt, iterations: iterations}
}

// NewDefaultKeyDeriver creates a KeyDeriver with the vault's fixed salt and
// 100,000 iterations.
func NewDefaultKeyDeriver() KeyDeriver {
	return NewPBKDF2Deriver(vaultDomain.FixedSalt, vaultDomain.PBKDF2Iterations)
}

// DeriveKey derives a 256-bit key from password.
func (d *pbkdf2Deriver) DeriveKey(password []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, vaultDomain.ErrEmptyPassword
	}
	return pbkdf2.Key(password, d.salt, d.iterations, vaultDomain.KeySize, sha256.New), nil
}
