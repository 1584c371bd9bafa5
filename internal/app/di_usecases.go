package app

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	authService "github.com/utenadev/gca4g/internal/auth/service"
	"github.com/utenadev/gca4g/internal/cache"
	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	codegenService "github.com/utenadev/gca4g/internal/codegen/service"
	codegenUseCase "github.com/utenadev/gca4g/internal/codegen/usecase"
	messageHTTP "github.com/utenadev/gca4g/internal/message/http"
	oauthService "github.com/utenadev/gca4g/internal/oauth/service"
	oauthUseCase "github.com/utenadev/gca4g/internal/oauth/usecase"
	projectService "github.com/utenadev/gca4g/internal/project/service"
	projectUseCase "github.com/utenadev/gca4g/internal/project/usecase"
	vaultService "github.com/utenadev/gca4g/internal/vault/service"
	vaultUseCase "github.com/utenadev/gca4g/internal/vault/usecase"
)

// useCases holds the lazily built use cases. The vault use case owns the
// session, so one instance is shared by every caller of the container.
type useCases struct {
	tokenService   authService.TokenService
	vaultUseCase   vaultUseCase.VaultUseCase
	oauthUseCase   oauthUseCase.OAuthUseCase
	codeGenUseCase codegenUseCase.CodeGenUseCase
	projectUseCase projectUseCase.ProjectUseCase
	messageHandler *messageHTTP.MessageHandler

	generationCache *cache.TTLCache[*codegenDomain.GenerationResult]

	tokenServiceInit   sync.Once
	vaultUseCaseInit   sync.Once
	oauthUseCaseInit   sync.Once
	codeGenUseCaseInit sync.Once
	projectUseCaseInit sync.Once
	messageHandlerInit sync.Once
}

// TokenService returns the boundary token service.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// VaultUseCase returns the vault use case.
func (c *Container) VaultUseCase() (vaultUseCase.VaultUseCase, error) {
	err := c.lazy(&c.vaultUseCaseInit, "vaultUseCase", func() error {
		store, err := c.Store()
		if err != nil {
			return fmt.Errorf("failed to get store for vault use case: %w", err)
		}

		baseUseCase := vaultUseCase.NewVaultUseCase(
			store,
			vaultService.NewDefaultKeyDeriver(),
			vaultService.NewBlobCipher(),
		)

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for vault use case: %w", err)
		}
		c.vaultUseCase = vaultUseCase.NewVaultUseCaseWithMetrics(baseUseCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.vaultUseCase, nil
}

// OAuthUseCase returns the OAuth credential use case.
func (c *Container) OAuthUseCase() (oauthUseCase.OAuthUseCase, error) {
	err := c.lazy(&c.oauthUseCaseInit, "oauthUseCase", func() error {
		store, err := c.Store()
		if err != nil {
			return fmt.Errorf("failed to get store for oauth use case: %w", err)
		}

		provider, err := c.initTokenProvider()
		if err != nil {
			return err
		}

		c.oauthUseCase = oauthUseCase.NewOAuthUseCase(store, provider, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.oauthUseCase, nil
}

// CodeGenUseCase returns the code generation use case.
func (c *Container) CodeGenUseCase() (codegenUseCase.CodeGenUseCase, error) {
	err := c.lazy(&c.codeGenUseCaseInit, "codeGenUseCase", func() error {
		vault, err := c.VaultUseCase()
		if err != nil {
			return fmt.Errorf("failed to get vault use case for codegen use case: %w", err)
		}

		client := codegenService.NewGeminiClient(&http.Client{}, codegenService.GeminiConfig{
			BaseURL:        c.config.GeminiBaseURL,
			Model:          c.config.GeminiModel,
			RequestTimeout: c.config.GeminiRequestTimeout,
			MaxAttempts:    c.config.GeminiMaxAttempts,
			BackoffInitial: c.config.GeminiBackoffInitial,
		}, c.Logger())

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for codegen use case: %w", err)
		}

		c.generationCache = cache.New[*codegenDomain.GenerationResult](
			c.config.GenerationCacheTTL,
			cache.WithMaxEntries(c.config.GenerationCacheMaxEntries),
			cache.WithObserver(func(hit bool) {
				businessMetrics.RecordCacheLookup(context.Background(), "generation", hit)
			}),
		)

		baseUseCase := codegenUseCase.NewCodeGenUseCase(vault, client, c.generationCache, c.Logger())
		c.codeGenUseCase = codegenUseCase.NewCodeGenUseCaseWithMetrics(baseUseCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.codeGenUseCase, nil
}

// ProjectUseCase returns the project synchronization use case.
func (c *Container) ProjectUseCase() (projectUseCase.ProjectUseCase, error) {
	err := c.lazy(&c.projectUseCaseInit, "projectUseCase", func() error {
		store, err := c.Store()
		if err != nil {
			return fmt.Errorf("failed to get store for project use case: %w", err)
		}

		oauth, err := c.OAuthUseCase()
		if err != nil {
			return fmt.Errorf("failed to get oauth use case for project use case: %w", err)
		}

		client := projectService.NewScriptClient(
			&http.Client{},
			c.config.ScriptAPIBaseURL,
			c.config.ScriptAPITimeout,
			c.Logger(),
		)

		baseUseCase := projectUseCase.NewProjectUseCase(store, oauth, client, c.Logger())

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for project use case: %w", err)
		}
		c.projectUseCase = projectUseCase.NewProjectUseCaseWithMetrics(baseUseCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.projectUseCase, nil
}

// MessageHandler returns the handler of the message endpoint.
func (c *Container) MessageHandler() (*messageHTTP.MessageHandler, error) {
	err := c.lazy(&c.messageHandlerInit, "messageHandler", func() error {
		vault, err := c.VaultUseCase()
		if err != nil {
			return err
		}
		codeGen, err := c.CodeGenUseCase()
		if err != nil {
			return err
		}
		oauth, err := c.OAuthUseCase()
		if err != nil {
			return err
		}
		project, err := c.ProjectUseCase()
		if err != nil {
			return err
		}

		c.messageHandler = messageHTTP.NewMessageHandler(vault, codeGen, oauth, project, c.Logger())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.messageHandler, nil
}

// initTokenProvider selects the OAuth token provider from configuration.
func (c *Container) initTokenProvider() (oauthService.TokenProvider, error) {
	switch c.config.OAuthProvider {
	case "google":
		return oauthService.NewGoogleTokenProvider(), nil
	case "static":
		if c.config.OAuthStaticToken == "" {
			return nil, fmt.Errorf("OAUTH_STATIC_TOKEN is required for the static oauth provider")
		}
		return oauthService.NewStaticTokenProvider(c.config.OAuthStaticToken, c.config.OAuthStaticTokenLifetime), nil
	default:
		return nil, fmt.Errorf("unsupported oauth provider: %s", c.config.OAuthProvider)
	}
}
