// Package usecase implements code generation: API key handling, result caching
// and delegation to the generation client.
package usecase

import (
	"context"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
)

// CodeGenUseCase defines the interface for generating code updates.
type CodeGenUseCase interface {
	// SaveAPIKey checks the key format and stores it in the vault.
	SaveAPIKey(ctx context.Context, apiKey string) error
	// APIKey returns the stored API key. found is false when none is stored.
	APIKey(ctx context.Context) (apiKey string, found bool, err error)
	// Generate returns updates for prompt given the current project files.
	// Identical requests within the cache TTL are answered without a network call.
	Generate(ctx context.Context, prompt string, files []codegenDomain.SourceFile) (*codegenDomain.GenerationResult, error)
}
