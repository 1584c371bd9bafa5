// Package domain defines the core types, constants and errors of the secret vault.
package domain

const (
	// KeySize is the size in bytes of the derived AES-256 key.
	KeySize = 32

	// NonceSize is the size in bytes of the AES-GCM initialization vector that
	// prefixes every encrypted blob.
	NonceSize = 12

	// PBKDF2Iterations is the PBKDF2-HMAC-SHA256 iteration count.
	PBKDF2Iterations = 100000
)

// FixedSalt is the 32-byte salt used for every key derivation.
//
// The salt is fixed so that the same password always yields the same key and
// no salt needs to be stored next to the blob.
var FixedSalt = []byte{
	2, 1, 4, 3, 6, 5, 8, 7, 10, 9, 12, 11, 14, 13, 16, 15,
	18, 17, 20, 19, 22, 21, 24, 23, 26, 25, 28, 27, 30, 29, 32, 31,
}
