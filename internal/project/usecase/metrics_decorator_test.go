package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	metricsMocks "github.com/utenadev/gca4g/internal/metrics/mocks"
	projectDomain "github.com/utenadev/gca4g/internal/project/domain"
	projectUsecaseMocks "github.com/utenadev/gca4g/internal/project/usecase/mocks"
)

func TestProjectMetricsDecorator(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PullRecordsSuccess", func(t *testing.T) {
		mockUseCase := projectUsecaseMocks.NewMockProjectUseCase(t)
		mockMetrics := metricsMocks.NewMockBusinessMetrics(t)
		files := []projectDomain.GasFile{{Name: "Code"}}

		mockUseCase.On("Pull", ctx, "abc").Return(files, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "project", "pull", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "project", "pull", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		pulled, err := NewProjectUseCaseWithMetrics(mockUseCase, mockMetrics).Pull(ctx, "abc")
		assert.NoError(t, err)
		assert.Equal(t, files, pulled)
	})

	t.Run("Error_PushRecordsError", func(t *testing.T) {
		mockUseCase := projectUsecaseMocks.NewMockProjectUseCase(t)
		mockMetrics := metricsMocks.NewMockBusinessMetrics(t)

		mockUseCase.On("Push", ctx, "abc", []projectDomain.GasFile(nil)).Return(projectDomain.ErrFilesRequired).Once()
		mockMetrics.On("RecordOperation", ctx, "project", "push", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "project", "push", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		err := NewProjectUseCaseWithMetrics(mockUseCase, mockMetrics).Push(ctx, "abc", nil)
		assert.ErrorIs(t, err, projectDomain.ErrFilesRequired)
	})
}
