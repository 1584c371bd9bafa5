package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authService "github.com/utenadev/gca4g/internal/auth/service"
)

func TestRunHashToken(t *testing.T) {
	tokenService := authService.NewTokenService()

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		err := RunHashToken(tokenService, "json", IOTuple{Writer: &out})
		require.NoError(t, err)

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.True(t, tokenService.VerifyToken(result["token"], result["hash"]))
	})

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		err := RunHashToken(tokenService, "text", IOTuple{Writer: &out})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "BOUNDARY_TOKEN_HASH=$argon2id$")
	})

	t.Run("invalid-format", func(t *testing.T) {
		err := RunHashToken(tokenService, "yaml", IOTuple{Writer: &bytes.Buffer{}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid format")
	})
}
