package usecase

import (
	"context"
	"errors"
	"log/slog"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	oauthUseCase "github.com/utenadev/gca4g/internal/oauth/usecase"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
	projectService "github.com/utenadev/gca4g/internal/project/service"
	"github.com/utenadev/gca4g/internal/reconcile"
	"github.com/utenadev/gca4g/internal/storage"
)

// projectUseCase implements ProjectUseCase.
type projectUseCase struct {
	store  storage.Store
	oauth  oauthUseCase.OAuthUseCase
	client projectService.ScriptClient
	logger *slog.Logger
}

// NewProjectUseCase creates a ProjectUseCase.
func NewProjectUseCase(
	store storage.Store,
	oauth oauthUseCase.OAuthUseCase,
	client projectService.ScriptClient,
	logger *slog.Logger,
) ProjectUseCase {
	return &projectUseCase{
		store:  store,
		oauth:  oauth,
		client: client,
		logger: logger,
	}
}

// SetProjectID parses idOrURL and stores it as the current project.
func (p *projectUseCase) SetProjectID(ctx context.Context, idOrURL string) (*projectDomain.ProjectSettings, error) {
	scriptID, err := projectDomain.ParseScriptID(idOrURL)
	if err != nil {
		return nil, err
	}

	settings := &projectDomain.ProjectSettings{ScriptID: scriptID}
	if err := storage.SetJSON(ctx, p.store, storage.KeyProjectSettings, settings); err != nil {
		return nil, err
	}

	p.logger.Info("project selected", slog.String("script_id", scriptID))
	return settings, nil
}

// Settings loads the stored project settings.
func (p *projectUseCase) Settings(ctx context.Context) (*projectDomain.ProjectSettings, error) {
	var settings projectDomain.ProjectSettings
	if err := storage.GetJSON(ctx, p.store, storage.KeyProjectSettings, &settings); err != nil {
		if errors.Is(err, storage.ErrEntryNotFound) {
			return nil, projectDomain.ErrProjectNotConfigured
		}
		return nil, err
	}
	if settings.ScriptID == "" {
		return nil, projectDomain.ErrProjectNotConfigured
	}
	return &settings, nil
}

// Pull validates scriptID before checking the credential, then fetches the files.
func (p *projectUseCase) Pull(ctx context.Context, scriptID string) ([]projectDomain.GasFile, error) {
	if err := projectDomain.ValidateScriptID(scriptID); err != nil {
		return nil, err
	}

	credential, err := p.oauth.ValidCredential(ctx)
	if err != nil {
		return nil, err
	}

	return p.client.GetContent(ctx, credential.AccessToken, scriptID)
}

// Push validates its input before checking the credential, then uploads the files.
func (p *projectUseCase) Push(ctx context.Context, scriptID string, files []projectDomain.GasFile) error {
	if err := projectDomain.ValidateScriptID(scriptID); err != nil {
		return err
	}
	if err := projectDomain.ValidateFiles(files); err != nil {
		return err
	}

	credential, err := p.oauth.ValidCredential(ctx)
	if err != nil {
		return err
	}

	return p.client.UpdateContent(ctx, credential.AccessToken, scriptID, files)
}

// Apply merges updates into the remote state of the configured project and pushes it.
func (p *projectUseCase) Apply(
	ctx context.Context,
	updates []codegenDomain.DiffUpdate,
) ([]projectDomain.GasFile, error) {
	settings, err := p.Settings(ctx)
	if err != nil {
		return nil, err
	}

	originals, err := p.Pull(ctx, settings.ScriptID)
	if err != nil {
		return nil, err
	}

	merged := reconcile.Merge(originals, updates)
	if err := p.Push(ctx, settings.ScriptID, merged); err != nil {
		return nil, err
	}

	p.logger.Info("updates applied",
		slog.String("script_id", settings.ScriptID),
		slog.Int("updates", len(updates)),
		slog.Int("files", len(merged)),
	)
	return merged, nil
}
