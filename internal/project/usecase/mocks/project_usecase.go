// Package mocks provides mock implementations of the project interfaces for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
)

// MockProjectUseCase is a mock implementation of ProjectUseCase.
type MockProjectUseCase struct {
	mock.Mock
}

// NewMockProjectUseCase creates a mock that asserts its expectations on test cleanup.
func NewMockProjectUseCase(t *testing.T) *MockProjectUseCase {
	m := &MockProjectUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// SetProjectID mocks the SetProjectID method.
func (m *MockProjectUseCase) SetProjectID(ctx context.Context, idOrURL string) (*projectDomain.ProjectSettings, error) {
	args := m.Called(ctx, idOrURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projectDomain.ProjectSettings), args.Error(1)
}

// Settings mocks the Settings method.
func (m *MockProjectUseCase) Settings(ctx context.Context) (*projectDomain.ProjectSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*projectDomain.ProjectSettings), args.Error(1)
}

// Pull mocks the Pull method.
func (m *MockProjectUseCase) Pull(ctx context.Context, scriptID string) ([]projectDomain.GasFile, error) {
	args := m.Called(ctx, scriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projectDomain.GasFile), args.Error(1)
}

// Push mocks the Push method.
func (m *MockProjectUseCase) Push(ctx context.Context, scriptID string, files []projectDomain.GasFile) error {
	args := m.Called(ctx, scriptID, files)
	return args.Error(0)
}

// Apply mocks the Apply method.
func (m *MockProjectUseCase) Apply(
	ctx context.Context,
	updates []codegenDomain.DiffUpdate,
) ([]projectDomain.GasFile, error) {
	args := m.Called(ctx, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projectDomain.GasFile), args.Error(1)
}

// MockScriptClient is a mock implementation of ScriptClient.
type MockScriptClient struct {
	mock.Mock
}

// NewMockScriptClient creates a mock that asserts its expectations on test cleanup.
func NewMockScriptClient(t *testing.T) *MockScriptClient {
	m := &MockScriptClient{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// GetContent mocks the GetContent method.
func (m *MockScriptClient) GetContent(ctx context.Context, accessToken, scriptID string) ([]projectDomain.GasFile, error) {
	args := m.Called(ctx, accessToken, scriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]projectDomain.GasFile), args.Error(1)
}

// UpdateContent mocks the UpdateContent method.
func (m *MockScriptClient) UpdateContent(
	ctx context.Context,
	accessToken, scriptID string,
	files []projectDomain.GasFile,
) error {
	args := m.Called(ctx, accessToken, scriptID, files)
	return args.Error(0)
}
