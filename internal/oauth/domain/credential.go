// Package domain defines the OAuth credential used to call the Apps Script API.
package domain

import (
	"time"
)

// Credential is a bearer access token with an optional expiry.
type Credential struct {
	AccessToken string `json:"accessToken"`
	// ExpiryDate is the expiry in epoch milliseconds. Zero means no expiry.
	ExpiryDate int64 `json:"expiryDate,omitempty"`
}

// NewCredential builds a Credential from a token and its expiry time.
// A zero expiry produces a credential without expiry.
func NewCredential(accessToken string, expiry time.Time) *Credential {
	c := &Credential{AccessToken: accessToken}
	if !expiry.IsZero() {
		c.ExpiryDate = expiry.UnixMilli()
	}
	return c
}

// Expired reports whether the credential expiry lies strictly before now.
func (c *Credential) Expired(now time.Time) bool {
	return c.ExpiryDate != 0 && now.UnixMilli() > c.ExpiryDate
}

// Validate checks that the credential is usable at now.
// It returns ErrCredentialRequired when the token is missing and ErrTokenExpired when it has expired.
func (c *Credential) Validate(now time.Time) error {
	if c == nil || c.AccessToken == "" {
		return ErrCredentialRequired
	}
	if c.Expired(now) {
		return ErrTokenExpired
	}
	return nil
}

// IsValid reports whether the credential is present, has a token and has not expired at now.
func IsValid(c *Credential, now time.Time) bool {
	return c.Validate(now) == nil
}
