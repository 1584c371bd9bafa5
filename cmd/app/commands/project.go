package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	oauthUseCase "github.com/utenadev/gca4g/internal/oauth/usecase"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
	projectUseCase "github.com/utenadev/gca4g/internal/project/usecase"
)

// RunSetProject stores the project selected by a script ID or an editor URL.
func RunSetProject(
	ctx context.Context,
	projectUseCase projectUseCase.ProjectUseCase,
	logger *slog.Logger,
	idOrURL string,
	ioTuple IOTuple,
) error {
	settings, err := projectUseCase.SetProjectID(ctx, idOrURL)
	if err != nil {
		return fmt.Errorf("failed to set project: %w", err)
	}

	logger.Info("project configured", slog.String("script_id", settings.ScriptID))
	_, _ = fmt.Fprintf(ioTuple.Writer, "Project set: %s\n", settings.ScriptID)
	return nil
}

// RunAuthenticate acquires an Apps Script access token and stores it.
func RunAuthenticate(
	ctx context.Context,
	oauthUseCase oauthUseCase.OAuthUseCase,
	logger *slog.Logger,
	ioTuple IOTuple,
) error {
	credential, err := oauthUseCase.Authenticate(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	logger.Info("apps script credential stored")
	if credential.ExpiryDate == 0 {
		_, _ = fmt.Fprintln(ioTuple.Writer, "Authenticated.")
		return nil
	}

	expiry := time.UnixMilli(credential.ExpiryDate).UTC()
	_, _ = fmt.Fprintf(ioTuple.Writer, "Authenticated. Token expires at %s\n", expiry.Format(time.RFC3339))
	return nil
}

// RunPull fetches the files of the configured project.
// Text output lists file names and types; JSON output includes the sources.
func RunPull(
	ctx context.Context,
	projectUseCase projectUseCase.ProjectUseCase,
	logger *slog.Logger,
	format string,
	ioTuple IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	settings, err := projectUseCase.Settings(ctx)
	if err != nil {
		return err
	}

	files, err := projectUseCase.Pull(ctx, settings.ScriptID)
	if err != nil {
		return fmt.Errorf("failed to pull project: %w", err)
	}

	logger.Info("project pulled",
		slog.String("script_id", settings.ScriptID),
		slog.Int("files", len(files)),
	)

	if format == "json" {
		return writeJSON(ioTuple.Writer, files)
	}
	writeFileList(ioTuple.Writer, files)
	return nil
}

// RunApply reads updates as JSON, either {"updates": [...]} or a bare array,
// from path ("-" for the command's reader), then merges and pushes them into
// the configured project.
func RunApply(
	ctx context.Context,
	projectUseCase projectUseCase.ProjectUseCase,
	logger *slog.Logger,
	path string,
	ioTuple IOTuple,
) error {
	updates, err := readUpdates(path, ioTuple.Reader)
	if err != nil {
		return err
	}

	files, err := projectUseCase.Apply(ctx, updates)
	if err != nil {
		return fmt.Errorf("failed to apply updates: %w", err)
	}

	logger.Info("updates applied", slog.Int("files", len(files)))
	_, _ = fmt.Fprintf(ioTuple.Writer, "Applied %d update(s). Project now has %d file(s):\n", len(updates), len(files))
	writeFileList(ioTuple.Writer, files)
	return nil
}

func readUpdates(path string, stdin io.Reader) ([]codegenDomain.DiffUpdate, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read updates: %w", err)
	}

	var response codegenDomain.Response
	if err := json.Unmarshal(data, &response); err != nil {
		// A bare array is accepted as well.
		if arrErr := json.Unmarshal(data, &response.Updates); arrErr != nil {
			return nil, fmt.Errorf("failed to parse updates JSON: %w", err)
		}
	}
	if err := response.Validate(); err != nil {
		return nil, fmt.Errorf("invalid updates: %w", err)
	}
	return response.Updates, nil
}

func writeFileList(w io.Writer, files []projectDomain.GasFile) {
	for _, f := range files {
		_, _ = fmt.Fprintf(w, "  %-10s %s\n", f.Type, f.Name)
	}
}
