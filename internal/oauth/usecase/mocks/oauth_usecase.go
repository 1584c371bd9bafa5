// Package mocks provides mock implementations of the OAuth use case for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	oauthDomain "github.com/utenadev/gca4g/internal/oauth/domain"
)

// MockOAuthUseCase is a mock implementation of OAuthUseCase.
type MockOAuthUseCase struct {
	mock.Mock
}

// NewMockOAuthUseCase creates a mock that asserts its expectations on test cleanup.
func NewMockOAuthUseCase(t *testing.T) *MockOAuthUseCase {
	m := &MockOAuthUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// SaveCredential mocks the SaveCredential method.
func (m *MockOAuthUseCase) SaveCredential(ctx context.Context, credential *oauthDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// LoadCredential mocks the LoadCredential method.
func (m *MockOAuthUseCase) LoadCredential(ctx context.Context) (*oauthDomain.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.Credential), args.Error(1)
}

// IsValid mocks the IsValid method.
func (m *MockOAuthUseCase) IsValid(credential *oauthDomain.Credential) bool {
	args := m.Called(credential)
	return args.Bool(0)
}

// ValidCredential mocks the ValidCredential method.
func (m *MockOAuthUseCase) ValidCredential(ctx context.Context) (*oauthDomain.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.Credential), args.Error(1)
}

// Authenticate mocks the Authenticate method.
func (m *MockOAuthUseCase) Authenticate(ctx context.Context) (*oauthDomain.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauthDomain.Credential), args.Error(1)
}
