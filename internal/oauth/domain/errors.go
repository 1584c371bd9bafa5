package domain

import (
	"github.com/utenadev/gca4g/internal/errors"
)

// OAuth error definitions.
var (
	// ErrCredentialRequired indicates no usable OAuth credential is stored.
	ErrCredentialRequired = errors.Wrap(errors.ErrUnauthorized, "oauth credential is required")

	// ErrTokenExpired indicates the stored access token has expired.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "oauth token has expired")

	// ErrCredentialNotFound indicates no OAuth credential has been saved.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "oauth credential not found")

	// ErrTokenUnavailable indicates the token provider did not return a token.
	ErrTokenUnavailable = errors.Wrap(errors.ErrUnauthorized, "token provider returned no token")
)
