// Package mocks provides mock implementations of the vault use case for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockVaultUseCase is a mock implementation of VaultUseCase.
type MockVaultUseCase struct {
	mock.Mock
}

// NewMockVaultUseCase creates a mock that asserts its expectations on test cleanup.
func NewMockVaultUseCase(t *testing.T) *MockVaultUseCase {
	m := &MockVaultUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// SetPassword mocks the SetPassword method.
func (m *MockVaultUseCase) SetPassword(ctx context.Context, password string) error {
	args := m.Called(ctx, password)
	return args.Error(0)
}

// HasPassword mocks the HasPassword method.
func (m *MockVaultUseCase) HasPassword(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// ClearPassword mocks the ClearPassword method.
func (m *MockVaultUseCase) ClearPassword(ctx context.Context) {
	m.Called(ctx)
}

// SaveSecret mocks the SaveSecret method.
func (m *MockVaultUseCase) SaveSecret(ctx context.Context, value string) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

// LoadSecret mocks the LoadSecret method.
func (m *MockVaultUseCase) LoadSecret(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}
