// Package service provides OAuth token acquisition backed by golang.org/x/oauth2.
package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	oauthDomain "github.com/utenadev/gca4g/internal/oauth/domain"
)

// ScriptProjectsScope is the OAuth scope required to read and write Apps Script projects.
const ScriptProjectsScope = "https://www.googleapis.com/auth/script.projects"

// TokenProvider obtains an access token as a single cancellable operation.
type TokenProvider interface {
	Token(ctx context.Context) (*oauthDomain.Credential, error)
}

// TokenSourceFactory builds an oauth2.TokenSource for one acquisition.
type TokenSourceFactory func(ctx context.Context) (oauth2.TokenSource, error)

// sourceTokenProvider adapts an oauth2.TokenSource to TokenProvider.
type sourceTokenProvider struct {
	factory TokenSourceFactory
}

// NewTokenProvider creates a TokenProvider that fetches tokens from the sources built by factory.
func NewTokenProvider(factory TokenSourceFactory) TokenProvider {
	return &sourceTokenProvider{factory: factory}
}

// NewGoogleTokenProvider creates a TokenProvider using Application Default Credentials.
func NewGoogleTokenProvider(scopes ...string) TokenProvider {
	if len(scopes) == 0 {
		scopes = []string{ScriptProjectsScope}
	}
	return NewTokenProvider(func(ctx context.Context) (oauth2.TokenSource, error) {
		return google.DefaultTokenSource(ctx, scopes...)
	})
}

// NewStaticTokenProvider creates a TokenProvider returning a fixed token.
// A positive lifetime sets the expiry relative to each acquisition.
func NewStaticTokenProvider(accessToken string, lifetime time.Duration) TokenProvider {
	return NewTokenProvider(func(ctx context.Context) (oauth2.TokenSource, error) {
		token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
		if lifetime > 0 {
			token.Expiry = time.Now().Add(lifetime)
		}
		return oauth2.StaticTokenSource(token), nil
	})
}

type tokenResult struct {
	token *oauth2.Token
	err   error
}

// Token acquires a token and returns it as a Credential.
// oauth2.TokenSource has no context parameter, so the fetch runs in its own
// goroutine and Token returns as soon as ctx is done.
func (p *sourceTokenProvider) Token(ctx context.Context) (*oauthDomain.Credential, error) {
	source, err := p.factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create token source: %w", err)
	}

	resultCh := make(chan tokenResult, 1)
	go func() {
		token, err := source.Token()
		resultCh <- tokenResult{token: token, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-resultCh:
		if result.err != nil {
			return nil, fmt.Errorf("failed to obtain token: %w", result.err)
		}
		if result.token == nil || result.token.AccessToken == "" {
			return nil, oauthDomain.ErrTokenUnavailable
		}
		return oauthDomain.NewCredential(result.token.AccessToken, result.token.Expiry), nil
	}
}
