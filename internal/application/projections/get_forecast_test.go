package projections

import (
	"context"
	"testing"
	"time"

	domainWeather "bunganutz/internal/domain/weather"
)

// stubWeatherProvider implements WeatherProvider with canned samples.
type stubWeatherProvider struct {
	samples []domainWeather.Sample
}

func (s *stubWeatherProvider) Forecast(_ context.Context, _, _ float64) ([]domainWeather.Sample, error) {
	return s.samples, nil
}

func TestQueryGetForecast(t *testing.T) {
	day := time.Date(2025, 7, 4, 8, 0, 0, 0, time.UTC)
	provider := &stubWeatherProvider{samples: []domainWeather.Sample{
		{Timestamp: day, TempF: 60, Condition: "Clear"},
		{Timestamp: day.Add(6 * time.Hour), TempF: 78, Condition: "Clear"},
		{Timestamp: day.Add(9 * time.Hour), TempF: 71, Condition: "Rain"},
	}}

	result, err := QueryGetForecast(context.Background(), GetForecastQuery{
		StartDate: "2025-07-04",
		EndDate:   "2025-07-06",
	}, GetForecastDeps{Provider: provider, Lat: 43.5, Lon: -70.7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Days) != 3 {
		t.Fatalf("got %d days, want 3", len(result.Days))
	}

	first := result.Days[0]
	if !first.Known {
		t.Fatal("first day should be known")
	}
	if first.MinF != 60 || first.MaxF != 78 {
		t.Errorf("min/max = %d/%d, want 60/78", first.MinF, first.MaxF)
	}
	if first.Condition != "Clear" {
		t.Errorf("condition = %q, want Clear", first.Condition)
	}

	// Days past the provider horizon are unknown.
	if result.Days[1].Known || result.Days[2].Known {
		t.Error("days without samples should be unknown")
	}
}

func TestQueryGetForecast_BadRange(t *testing.T) {
	_, err := QueryGetForecast(context.Background(), GetForecastQuery{
		StartDate: "2025-07-06",
		EndDate:   "2025-07-04",
	}, GetForecastDeps{Provider: &stubWeatherProvider{}})
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
}
