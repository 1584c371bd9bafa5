// Package usecase implements project selection and synchronization with the
// Apps Script API.
package usecase

import (
	"context"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
)

// ProjectUseCase defines the interface for project settings and file synchronization.
type ProjectUseCase interface {
	// SetProjectID stores the project selected by a script ID or editor URL.
	SetProjectID(ctx context.Context, idOrURL string) (*projectDomain.ProjectSettings, error)
	// Settings returns the stored project settings or ErrProjectNotConfigured.
	Settings(ctx context.Context) (*projectDomain.ProjectSettings, error)
	// Pull fetches the files of scriptID.
	Pull(ctx context.Context, scriptID string) ([]projectDomain.GasFile, error)
	// Push replaces the files of scriptID.
	Push(ctx context.Context, scriptID string, files []projectDomain.GasFile) error
	// Apply pulls the configured project, merges updates and pushes the result.
	Apply(ctx context.Context, updates []codegenDomain.DiffUpdate) ([]projectDomain.GasFile, error)
}
