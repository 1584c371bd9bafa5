// Package http provides authentication and rate limiting middleware for the message server.
package http

import (
	"crypto/sha256"
	"crypto/subtle"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gin-gonic/gin"

	authService "github.com/utenadev/gca4g/internal/auth/service"
	apperrors "github.com/utenadev/gca4g/internal/errors"
	"github.com/utenadev/gca4g/internal/httputil"
)

// ErrInvalidToken indicates a missing, malformed or unknown bearer token.
var ErrInvalidToken = apperrors.Wrap(apperrors.ErrUnauthorized, "invalid bearer token")

// tokenVerifier checks bearer tokens against one Argon2id hash. After the
// first successful check it remembers the token's SHA-256 digest, so later
// requests cost a constant-time compare instead of an Argon2id derivation.
type tokenVerifier struct {
	tokenService authService.TokenService
	tokenHash    string
	verified     atomic.Pointer[[sha256.Size]byte]
}

func (v *tokenVerifier) verify(plainToken string) bool {
	digest := sha256.Sum256([]byte(plainToken))
	if known := v.verified.Load(); known != nil {
		if subtle.ConstantTimeCompare(digest[:], known[:]) == 1 {
			return true
		}
	}

	if !v.tokenService.VerifyToken(plainToken, v.tokenHash) {
		return false
	}
	v.verified.Store(&digest)
	return true
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return header[len(prefix):], true
}

// AuthenticationMiddleware requires a bearer token matching tokenHash.
// Any failure answers 401 with the uniform failure payload.
func AuthenticationMiddleware(
	tokenService authService.TokenService,
	tokenHash string,
	logger *slog.Logger,
) gin.HandlerFunc {
	verifier := &tokenVerifier{tokenService: tokenService, tokenHash: tokenHash}

	return func(c *gin.Context) {
		plainToken, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Debug("authentication failed: missing or malformed authorization header")
			httputil.HandleErrorGin(c, ErrInvalidToken, logger)
			c.Abort()
			return
		}

		if !verifier.verify(plainToken) {
			logger.Debug("authentication failed: token mismatch")
			httputil.HandleErrorGin(c, ErrInvalidToken, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
