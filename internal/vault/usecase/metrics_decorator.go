package usecase

import (
	"context"
	"time"

	"github.com/utenadev/gca4g/internal/metrics"
)

// vaultUseCaseWithMetrics decorates VaultUseCase with metrics instrumentation.
type vaultUseCaseWithMetrics struct {
	next    VaultUseCase
	metrics metrics.BusinessMetrics
}

// NewVaultUseCaseWithMetrics wraps a VaultUseCase with metrics recording.
func NewVaultUseCaseWithMetrics(useCase VaultUseCase, m metrics.BusinessMetrics) VaultUseCase {
	return &vaultUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// SetPassword records metrics for master password changes.
func (v *vaultUseCaseWithMetrics) SetPassword(ctx context.Context, password string) error {
	start := time.Now()
	err := v.next.SetPassword(ctx, password)
	v.record(ctx, "password_set", start, err)
	return err
}

// HasPassword delegates without recording.
func (v *vaultUseCaseWithMetrics) HasPassword(ctx context.Context) bool {
	return v.next.HasPassword(ctx)
}

// ClearPassword records metrics for session clears.
func (v *vaultUseCaseWithMetrics) ClearPassword(ctx context.Context) {
	start := time.Now()
	v.next.ClearPassword(ctx)
	v.record(ctx, "password_clear", start, nil)
}

// SaveSecret records metrics for secret encryption and storage.
func (v *vaultUseCaseWithMetrics) SaveSecret(ctx context.Context, value string) error {
	start := time.Now()
	err := v.next.SaveSecret(ctx, value)
	v.record(ctx, "secret_save", start, err)
	return err
}

// LoadSecret records metrics for secret retrieval and decryption.
func (v *vaultUseCaseWithMetrics) LoadSecret(ctx context.Context) (string, bool, error) {
	start := time.Now()
	value, found, err := v.next.LoadSecret(ctx)
	v.record(ctx, "secret_load", start, err)
	return value, found, err
}

func (v *vaultUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "vault", operation, status)
	v.metrics.RecordDuration(ctx, "vault", operation, time.Since(start), status)
}
