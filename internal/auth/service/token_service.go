// Package service provides bearer token generation and Argon2id verification
// for the local message server.
package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/utenadev/gca4g/internal/errors"
)

// TokenService generates, hashes and verifies boundary bearer tokens.
type TokenService interface {
	// GenerateToken creates a random token and its Argon2id hash.
	GenerateToken() (plainToken string, hashedToken string, err error)
	// HashToken hashes a plain token.
	HashToken(plainToken string) (string, error)
	// VerifyToken reports whether plainToken matches hashedToken in constant time.
	VerifyToken(plainToken, hashedToken string) bool
}

// tokenService implements TokenService using Argon2id for hashing.
type tokenService struct {
	hasher *pwdhash.PasswordHasher
}

// NewTokenService creates a new TokenService instance using Argon2id hashing.
// Uses the Moderate policy for a balance between security and performance.
func NewTokenService() TokenService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &tokenService{
		hasher: hasher,
	}
}

// GenerateToken creates a new cryptographically secure 32-byte random token.
// The token is base64-encoded for easy transmission.
func (s *tokenService) GenerateToken() (string, string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.RawURLEncoding.EncodeToString(randomBytes)

	hashedToken, err := s.HashToken(plainToken)
	if err != nil {
		return "", "", err
	}

	return plainToken, hashedToken, nil
}

// HashToken hashes a plain text token using Argon2id.
func (s *tokenService) HashToken(plainToken string) (string, error) {
	if plainToken == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "token is required")
	}
	hashedToken, err := s.hasher.Hash([]byte(plainToken))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash token")
	}
	return hashedToken, nil
}

// VerifyToken performs a constant-time comparison between a plain token and its hash.
func (s *tokenService) VerifyToken(plainToken, hashedToken string) bool {
	ok, err := s.hasher.Verify([]byte(plainToken), hashedToken)
	if err != nil {
		return false
	}
	return ok
}
