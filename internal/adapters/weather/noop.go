package weather

import (
	"context"

	domain "bunganutz/internal/domain/weather"
)

// NoopProvider returns no samples. Used when no API key is configured;
// every forecast day then renders as too far to forecast.
type NoopProvider struct{}

// NewNoopProvider creates a new NoopProvider.
func NewNoopProvider() *NoopProvider {
	return &NoopProvider{}
}

// Forecast returns no samples.
func (p *NoopProvider) Forecast(_ context.Context, _, _ float64) ([]domain.Sample, error) {
	return nil, nil
}
