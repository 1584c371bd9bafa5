// Package mocks provides mock implementations of the metrics interfaces for testing.
package mocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
)

// MockBusinessMetrics is a mock implementation of metrics.BusinessMetrics.
type MockBusinessMetrics struct {
	mock.Mock
}

// NewMockBusinessMetrics creates a mock that asserts its expectations on test cleanup.
func NewMockBusinessMetrics(t *testing.T) *MockBusinessMetrics {
	m := &MockBusinessMetrics{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// RecordOperation mocks the RecordOperation method.
func (m *MockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

// RecordDuration mocks the RecordDuration method.
func (m *MockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

// RecordCacheLookup mocks the RecordCacheLookup method.
func (m *MockBusinessMetrics) RecordCacheLookup(ctx context.Context, cache string, hit bool) {
	m.Called(ctx, cache, hit)
}
