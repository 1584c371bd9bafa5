package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

func TestBlobStore(t *testing.T) {
	ctx := context.Background()

	urls := map[string]string{
		"memory": "mem://",
		"file":   "file://" + t.TempDir(),
	}

	for name, url := range urls {
		t.Run(name, func(t *testing.T) {
			store, err := OpenBlobStore(ctx, url)
			require.NoError(t, err)
			defer func() { assert.NoError(t, store.Close()) }()

			t.Run("missing key returns not found", func(t *testing.T) {
				_, err := store.Get(ctx, "missing")
				assert.ErrorIs(t, err, ErrEntryNotFound)
				assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
			})

			t.Run("set then get", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, KeySecret, []byte{1, 2, 3}))

				value, err := store.Get(ctx, KeySecret)
				require.NoError(t, err)
				assert.Equal(t, []byte{1, 2, 3}, value)
			})

			t.Run("set replaces previous value", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, KeySecret, []byte("first")))
				require.NoError(t, store.Set(ctx, KeySecret, []byte("second")))

				value, err := store.Get(ctx, KeySecret)
				require.NoError(t, err)
				assert.Equal(t, []byte("second"), value)
			})

			t.Run("delete removes key", func(t *testing.T) {
				require.NoError(t, store.Set(ctx, "to-delete", []byte("x")))
				require.NoError(t, store.Delete(ctx, "to-delete"))

				_, err := store.Get(ctx, "to-delete")
				assert.ErrorIs(t, err, ErrEntryNotFound)
			})

			t.Run("delete missing key is not an error", func(t *testing.T) {
				assert.NoError(t, store.Delete(ctx, "never-written"))
			})

			t.Run("ping", func(t *testing.T) {
				assert.NoError(t, store.Ping(ctx))
			})
		})
	}
}

func TestOpenBlobStore_InvalidURL(t *testing.T) {
	store, err := OpenBlobStore(context.Background(), "unknown-scheme://bucket")
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBlobStore(ctx, "mem://")
	require.NoError(t, err)
	defer func() { assert.NoError(t, store.Close()) }()

	type settings struct {
		ScriptID string `json:"scriptId"`
	}

	require.NoError(t, SetJSON(ctx, store, KeyProjectSettings, settings{ScriptID: "abc"}))

	raw, err := store.Get(ctx, KeyProjectSettings)
	require.NoError(t, err)
	assert.JSONEq(t, `{"scriptId":"abc"}`, string(raw))

	var got settings
	require.NoError(t, GetJSON(ctx, store, KeyProjectSettings, &got))
	assert.Equal(t, "abc", got.ScriptID)

	t.Run("missing key", func(t *testing.T) {
		var missing settings
		assert.ErrorIs(t, GetJSON(ctx, store, "missing", &missing), ErrEntryNotFound)
	})

	t.Run("invalid json", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "broken", []byte("{")))
		var broken settings
		err := GetJSON(ctx, store, "broken", &broken)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode broken")
	})
}
