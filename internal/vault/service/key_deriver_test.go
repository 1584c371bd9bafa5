package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vaultDomain "github.com/utenadev/gca4g/internal/vault/domain"
)

func TestPBKDF2Deriver(t *testing.T) {
	deriver := NewDefaultKeyDeriver()

	t.Run("produces a 256-bit key", func(t *testing.T) {
		key, err := deriver.DeriveKey([]byte("correct horse"))
		require.NoError(t, err)
		assert.Len(t, key, 32)
	})

	t.Run("is deterministic", func(t *testing.T) {
		key1, err := deriver.DeriveKey([]byte("correct horse"))
		require.NoError(t, err)
		key2, err := deriver.DeriveKey([]byte("correct horse"))
		require.NoError(t, err)
		assert.Equal(t, key1, key2)
	})

	t.Run("different passwords give different keys", func(t *testing.T) {
		key1, err := deriver.DeriveKey([]byte("password-one"))
		require.NoError(t, err)
		key2, err := deriver.DeriveKey([]byte("password-two"))
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("different salts give different keys", func(t *testing.T) {
		other := NewPBKDF2Deriver(make([]byte, 32), vaultDomain.PBKDF2Iterations)
		key1, err := deriver.DeriveKey([]byte("same"))
		require.NoError(t, err)
		key2, err := other.DeriveKey([]byte("same"))
		require.NoError(t, err)
		assert.NotEqual(t, key1, key2)
	})

	t.Run("empty password is rejected", func(t *testing.T) {
		key, err := deriver.DeriveKey(nil)
		assert.ErrorIs(t, err, vaultDomain.ErrEmptyPassword)
		assert.Nil(t, key)
	})
}

func TestDerivedKeyRoundtrip(t *testing.T) {
	deriver := NewDefaultKeyDeriver()
	blobCipher := NewBlobCipher()

	encryptKey, err := deriver.DeriveKey([]byte("master"))
	require.NoError(t, err)
	blob, err := blobCipher.Encrypt([]byte("AIzaSyTestKey"), encryptKey)
	require.NoError(t, err)

	t.Run("same password decrypts", func(t *testing.T) {
		key, err := deriver.DeriveKey([]byte("master"))
		require.NoError(t, err)

		plaintext, err := blobCipher.Decrypt(blob, key)
		require.NoError(t, err)
		assert.Equal(t, "AIzaSyTestKey", string(plaintext))
	})

	t.Run("different password fails", func(t *testing.T) {
		key, err := deriver.DeriveKey([]byte("not-master"))
		require.NoError(t, err)

		plaintext, err := blobCipher.Decrypt(blob, key)
		assert.ErrorIs(t, err, vaultDomain.ErrDecryptionFailed)
		assert.Nil(t, plaintext)
	})
}
