// Package service provides the cryptographic primitives of the secret vault:
// password-based key derivation and AES-256-GCM blob encryption.
package service

// KeyDeriver derives a symmetric key from a password.
type KeyDeriver interface {
	// DeriveKey returns a 32-byte key. The same password always yields the same key.
	DeriveKey(password []byte) ([]byte, error)
}

// BlobCipher encrypts and decrypts self-contained blobs of the form nonce || ciphertext.
type BlobCipher interface {
	// Encrypt seals plaintext with key under a fresh random nonce.
	Encrypt(plaintext, key []byte) ([]byte, error)

	// Decrypt splits the nonce from blob and opens the remainder with key.
	Decrypt(blob, key []byte) ([]byte, error)
}
