package usecase

import (
	"context"
	"time"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	"github.com/utenadev/gca4g/internal/metrics"
)

// codeGenUseCaseWithMetrics decorates CodeGenUseCase with metrics instrumentation.
type codeGenUseCaseWithMetrics struct {
	next    CodeGenUseCase
	metrics metrics.BusinessMetrics
}

// NewCodeGenUseCaseWithMetrics wraps a CodeGenUseCase with metrics recording.
func NewCodeGenUseCaseWithMetrics(useCase CodeGenUseCase, m metrics.BusinessMetrics) CodeGenUseCase {
	return &codeGenUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SaveAPIKey records metrics for API key storage.
func (c *codeGenUseCaseWithMetrics) SaveAPIKey(ctx context.Context, apiKey string) error {
	start := time.Now()
	err := c.next.SaveAPIKey(ctx, apiKey)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "codegen", "api_key_save", status)
	c.metrics.RecordDuration(ctx, "codegen", "api_key_save", time.Since(start), status)

	return err
}

// APIKey records metrics for API key retrieval.
func (c *codeGenUseCaseWithMetrics) APIKey(ctx context.Context) (string, bool, error) {
	start := time.Now()
	apiKey, found, err := c.next.APIKey(ctx)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "codegen", "api_key_get", status)
	c.metrics.RecordDuration(ctx, "codegen", "api_key_get", time.Since(start), status)

	return apiKey, found, err
}

// Generate records metrics for generation requests, cache hits included.
func (c *codeGenUseCaseWithMetrics) Generate(
	ctx context.Context,
	prompt string,
	files []codegenDomain.SourceFile,
) (*codegenDomain.GenerationResult, error) {
	start := time.Now()
	result, err := c.next.Generate(ctx, prompt, files)

	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "codegen", "generate", status)
	c.metrics.RecordDuration(ctx, "codegen", "generate", time.Since(start), status)

	return result, err
}
