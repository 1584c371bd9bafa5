package commands

import (
	"fmt"

	authService "github.com/utenadev/gca4g/internal/auth/service"
)

// RunHashToken generates a boundary bearer token and its Argon2id hash.
// The hash goes into BOUNDARY_TOKEN_HASH; the token is given to the caller
// that posts messages. The token is shown only once.
func RunHashToken(tokenService authService.TokenService, format string, ioTuple IOTuple) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	plainToken, hashedToken, err := tokenService.GenerateToken()
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	if format == "json" {
		return writeJSON(ioTuple.Writer, map[string]string{
			"token": plainToken,
			"hash":  hashedToken,
		})
	}

	_, _ = fmt.Fprintf(ioTuple.Writer, "Token: %s\n", plainToken)
	_, _ = fmt.Fprintf(ioTuple.Writer, "BOUNDARY_TOKEN_HASH=%s\n", hashedToken)
	_, _ = fmt.Fprintln(ioTuple.Writer, "\nIMPORTANT: The token is shown only once. Store it securely.")
	return nil
}
