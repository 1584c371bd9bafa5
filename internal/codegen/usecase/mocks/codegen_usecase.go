// Package mocks provides mock implementations of the code generation interfaces for testing.
package mocks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
)

// MockCodeGenUseCase is a mock implementation of CodeGenUseCase.
type MockCodeGenUseCase struct {
	mock.Mock
}

// NewMockCodeGenUseCase creates a mock that asserts its expectations on test cleanup.
func NewMockCodeGenUseCase(t *testing.T) *MockCodeGenUseCase {
	m := &MockCodeGenUseCase{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// SaveAPIKey mocks the SaveAPIKey method.
func (m *MockCodeGenUseCase) SaveAPIKey(ctx context.Context, apiKey string) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}

// APIKey mocks the APIKey method.
func (m *MockCodeGenUseCase) APIKey(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Generate mocks the Generate method.
func (m *MockCodeGenUseCase) Generate(
	ctx context.Context,
	prompt string,
	files []codegenDomain.SourceFile,
) (*codegenDomain.GenerationResult, error) {
	args := m.Called(ctx, prompt, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*codegenDomain.GenerationResult), args.Error(1)
}

// MockGenerationClient is a mock implementation of GenerationClient.
type MockGenerationClient struct {
	mock.Mock
}

// NewMockGenerationClient creates a mock that asserts its expectations on test cleanup.
func NewMockGenerationClient(t *testing.T) *MockGenerationClient {
	m := &MockGenerationClient{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Generate mocks the Generate method.
func (m *MockGenerationClient) Generate(ctx context.Context, apiKey, prompt string) (*codegenDomain.Response, error) {
	args := m.Called(ctx, apiKey, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*codegenDomain.Response), args.Error(1)
}
