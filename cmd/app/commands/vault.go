package commands

import (
	"context"
	"fmt"
	"log/slog"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	codegenUseCase "github.com/utenadev/gca4g/internal/codegen/usecase"
	projectUseCase "github.com/utenadev/gca4g/internal/project/usecase"
	vaultUseCase "github.com/utenadev/gca4g/internal/vault/usecase"
)

// unlockVault prompts for the master password and sets it for this process.
func unlockVault(ctx context.Context, vaultUseCase vaultUseCase.VaultUseCase, ioTuple IOTuple) error {
	password, err := readSecret(ioTuple, "Master password: ")
	if err != nil {
		return err
	}
	return vaultUseCase.SetPassword(ctx, password)
}

// RunSaveAPIKey encrypts the API key under the master password and stores it.
// Both are prompted for; an apiKey given as an argument skips its prompt.
func RunSaveAPIKey(
	ctx context.Context,
	vaultUseCase vaultUseCase.VaultUseCase,
	codeGenUseCase codegenUseCase.CodeGenUseCase,
	logger *slog.Logger,
	apiKey string,
	ioTuple IOTuple,
) error {
	if err := unlockVault(ctx, vaultUseCase, ioTuple); err != nil {
		return err
	}
	defer vaultUseCase.ClearPassword(ctx)

	if apiKey == "" {
		var err error
		if apiKey, err = readSecret(ioTuple, "API key: "); err != nil {
			return err
		}
	}

	if err := codeGenUseCase.SaveAPIKey(ctx, apiKey); err != nil {
		return fmt.Errorf("failed to save API key: %w", err)
	}

	logger.Info("api key saved")
	_, _ = fmt.Fprintln(ioTuple.Writer, "API key saved.")
	return nil
}

// RunGenerate asks the model for updates and prints them as JSON, ready for
// the apply command. With withProject the configured project's files are
// pulled and sent as context.
func RunGenerate(
	ctx context.Context,
	vaultUseCase vaultUseCase.VaultUseCase,
	codeGenUseCase codegenUseCase.CodeGenUseCase,
	projectUseCase projectUseCase.ProjectUseCase,
	logger *slog.Logger,
	prompt string,
	withProject bool,
	ioTuple IOTuple,
) error {
	var files []codegenDomain.SourceFile
	if withProject {
		settings, err := projectUseCase.Settings(ctx)
		if err != nil {
			return err
		}
		pulled, err := projectUseCase.Pull(ctx, settings.ScriptID)
		if err != nil {
			return fmt.Errorf("failed to pull project: %w", err)
		}
		for _, f := range pulled {
			files = append(files, codegenDomain.SourceFile{Name: f.Name, Content: f.Source})
		}
	}

	if err := unlockVault(ctx, vaultUseCase, ioTuple); err != nil {
		return err
	}
	defer vaultUseCase.ClearPassword(ctx)

	result, err := codeGenUseCase.Generate(ctx, prompt, files)
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	logger.Info("code generated",
		slog.String("generation_id", result.ID.String()),
		slog.Int("updates", len(result.Updates)),
	)
	return writeJSON(ioTuple.Writer, codegenDomain.Response{Updates: result.Updates})
}
