package usecase

import (
	"context"
	"time"

	codegenDomain "github.com/utenadev/gca4g/internal/codegen/domain"
	"github.com/utenadev/gca4g/internal/metrics"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
)

// projectUseCaseWithMetrics decorates ProjectUseCase with metrics instrumentation.
type projectUseCaseWithMetrics struct {
	next    ProjectUseCase
	metrics metrics.BusinessMetrics
}

// NewProjectUseCaseWithMetrics wraps a ProjectUseCase with metrics recording.
func NewProjectUseCaseWithMetrics(useCase ProjectUseCase, m metrics.BusinessMetrics) ProjectUseCase {
	return &projectUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SetProjectID records metrics for project selection.
func (p *projectUseCaseWithMetrics) SetProjectID(
	ctx context.Context,
	idOrURL string,
) (*projectDomain.ProjectSettings, error) {
	start := time.Now()
	settings, err := p.next.SetProjectID(ctx, idOrURL)
	p.record(ctx, "project_set", start, err)
	return settings, err
}

// Settings delegates without recording.
func (p *projectUseCaseWithMetrics) Settings(ctx context.Context) (*projectDomain.ProjectSettings, error) {
	return p.next.Settings(ctx)
}

// Pull records metrics for project pulls.
func (p *projectUseCaseWithMetrics) Pull(ctx context.Context, scriptID string) ([]projectDomain.GasFile, error) {
	start := time.Now()
	files, err := p.next.Pull(ctx, scriptID)
	p.record(ctx, "pull", start, err)
	return files, err
}

// Push records metrics for project pushes.
func (p *projectUseCaseWithMetrics) Push(ctx context.Context, scriptID string, files []projectDomain.GasFile) error {
	start := time.Now()
	err := p.next.Push(ctx, scriptID, files)
	p.record(ctx, "push", start, err)
	return err
}

// Apply records metrics for pull-merge-push cycles.
func (p *projectUseCaseWithMetrics) Apply(
	ctx context.Context,
	updates []codegenDomain.DiffUpdate,
) ([]projectDomain.GasFile, error) {
	start := time.Now()
	files, err := p.next.Apply(ctx, updates)
	p.record(ctx, "apply", start, err)
	return files, err
}

func (p *projectUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "project", operation, status)
	p.metrics.RecordDuration(ctx, "project", operation, time.Since(start), status)
}
