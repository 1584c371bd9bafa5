package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"golang.org/x/sync/singleflight"

	"github.com/utenadev/gca4g/internal/cache"
	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	codegenService "github.com/utenadev/gca4g/internal/codegen/service"
	apperrors "github.com/utenadev/gca4g/internal/errors"
	customValidation "github.com/utenadev/gca4g/internal/validation"
	vaultUseCase "github.com/utenadev/gca4g/internal/vault/usecase"
)

// codeGenUseCase implements CodeGenUseCase.
type codeGenUseCase struct {
	vault  vaultUseCase.VaultUseCase
	client codegenService.GenerationClient
	cache  *cache.TTLCache[*codegenDomain.GenerationResult]
	group  singleflight.Group
	logger *slog.Logger
}

// NewCodeGenUseCase creates a CodeGenUseCase reading the API key from vault.
func NewCodeGenUseCase(
	vault vaultUseCase.VaultUseCase,
	client codegenService.GenerationClient,
	resultCache *cache.TTLCache[*codegenDomain.GenerationResult],
	logger *slog.Logger,
) CodeGenUseCase {
	return &codeGenUseCase{
		vault:  vault,
		client: client,
		cache:  resultCache,
		logger: logger,
	}
}

// SaveAPIKey validates and stores the API key.
func (c *codeGenUseCase) SaveAPIKey(ctx context.Context, apiKey string) error {
	if err := validation.Validate(apiKey, validation.Required, customValidation.NoWhitespace, customValidation.APIKey); err != nil {
		return apperrors.Wrap(codegenDomain.ErrInvalidAPIKey, err.Error())
	}
	return c.vault.SaveSecret(ctx, apiKey)
}

// APIKey returns the decrypted API key.
func (c *codeGenUseCase) APIKey(ctx context.Context) (string, bool, error) {
	return c.vault.LoadSecret(ctx)
}

// Generate answers from cache when possible, otherwise calls the model.
func (c *codeGenUseCase) Generate(
	ctx context.Context,
	prompt string,
	files []codegenDomain.SourceFile,
) (*codegenDomain.GenerationResult, error) {
	if err := validation.Validate(prompt, validation.Required, customValidation.NotBlank); err != nil {
		return nil, codegenDomain.ErrPromptRequired
	}

	key := codegenDomain.Fingerprint(prompt, files)
	if result, ok := c.cache.Get(key); ok {
		c.logger.Debug("generation served from cache", slog.String("fingerprint", key))
		return result, nil
	}

	// The shared call outlives any one caller; the client bounds each attempt.
	ch := c.group.DoChan(key, func() (any, error) {
		return c.generate(context.WithoutCancel(ctx), key, prompt, files)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			c.logger.Debug("generation shared with concurrent caller", slog.String("fingerprint", key))
		}
		return res.Val.(*codegenDomain.GenerationResult), nil
	}
}

func (c *codeGenUseCase) generate(
	ctx context.Context,
	key, prompt string,
	files []codegenDomain.SourceFile,
) (*codegenDomain.GenerationResult, error) {
	apiKey, found, err := c.vault.LoadSecret(ctx)
	if err != nil {
		return nil, err
	}
	if !found || apiKey == "" {
		return nil, codegenDomain.ErrAPIKeyRequired
	}

	resp, err := c.client.Generate(ctx, apiKey, codegenDomain.BuildPrompt(prompt, files))
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}

	result := &codegenDomain.GenerationResult{ID: id, Updates: resp.Updates}
	c.cache.Put(key, result)

	c.logger.Info("generation completed",
		slog.String("generation_id", id.String()),
		slog.Int("updates", len(result.Updates)),
	)
	return result, nil
}
