package weather

import (
	"context"

	domain "bunganutz/internal/domain/weather"
)

// Provider fetches forecast samples for a location from an external
// weather service.
type Provider interface {
	Forecast(ctx context.Context, lat, lon float64) ([]domain.Sample, error)
}
