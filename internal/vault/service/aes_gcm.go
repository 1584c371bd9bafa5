package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	vaultDomain "github.com/utenadev/gca4g/internal/vault/domain"
)

// AESGCMCipher implements AES-256-GCM authenticated encryption.
//
// Each encryption generates a unique 12-byte nonce with crypto/rand, and the
// 16-byte authentication tag is appended to the ciphertext. The instance is
// stateless and safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates a new AES-256-GCM cipher instance. The key must be exactly 32 bytes.
func NewAESGCM(key []byte) (*AESGCMCipher, error) {
	if len(key) != vaultDomain.KeySize {
		return nil, vaultDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt encrypts plaintext with optional additional authenticated data.
// Returns the ciphertext (tag appended) and the nonce used.
func (a *AESGCMCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, a.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = a.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt verifies the authentication tag and decrypts ciphertext.
// Returns ErrDecryptionFailed when authentication fails.
func (a *AESGCMCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	plaintext, err := a.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, vaultDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// aesGCMBlobCipher implements BlobCipher with AES-256-GCM.
type aesGCMBlobCipher struct{}

// NewBlobCipher creates a BlobCipher producing nonce || ciphertext blobs.
func NewBlobCipher() BlobCipher {
	return &aesGCMBlobCipher{}
}

// Encrypt seals plaintext under a fresh nonce and prefixes the nonce to the result.
func (c *aesGCMBlobCipher) Encrypt(plaintext, key []byte) ([]byte, error) {
	gcm, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	ciphertext, nonce, err := gcm.Encrypt(plaintext, nil)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, len(nonce)+len(ciphertext))
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Decrypt opens a blob produced by Encrypt.
func (c *aesGCMBlobCipher) Decrypt(blob, key []byte) ([]byte, error) {
	gcm, err := NewAESGCM(key)
	if err != nil {
		return nil, err
	}

	if len(blob) < vaultDomain.NonceSize {
		return nil, vaultDomain.ErrDecryptionFailed
	}

	return gcm.Decrypt(blob[vaultDomain.NonceSize:], blob[:vaultDomain.NonceSize], nil)
}
