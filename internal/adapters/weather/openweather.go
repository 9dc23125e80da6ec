package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	domain "bunganutz/internal/domain/weather"
)

// DefaultBaseURL is the OpenWeatherMap API root.
const DefaultBaseURL = "https://api.openweathermap.org"

// forecastResponse mirrors the 5-day/3-hour forecast payload. Only the
// fields the summaries need are decoded.
type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
	} `json:"list"`
}

// OpenWeatherProvider fetches forecasts from OpenWeatherMap.
type OpenWeatherProvider struct {
	client *resty.Client
	apiKey string
}

// NewOpenWeatherProvider creates a provider against the given base URL.
// PRE: apiKey is a valid OpenWeatherMap API key
// POST: Returns a ready-to-use provider
func NewOpenWeatherProvider(baseURL, apiKey string) *OpenWeatherProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500*time.Millisecond).
		SetHeader("Accept", "application/json")

	return &OpenWeatherProvider{
		client: client,
		apiKey: apiKey,
	}
}

// Forecast fetches the 5-day/3-hour forecast for the location in
// imperial units.
// PRE: lat and lon are valid coordinates
// POST: Returns samples ordered as the provider returns them
func (p *OpenWeatherProvider) Forecast(ctx context.Context, lat, lon float64) ([]domain.Sample, error) {
	var payload forecastResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   fmt.Sprintf("%f", lat),
			"lon":   fmt.Sprintf("%f", lon),
			"appid": p.apiKey,
			"units": "imperial",
		}).
		SetResult(&payload).
		Get("/data/2.5/forecast")
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	if !resp.IsSuccess() {
		slog.Error("forecast_request_rejected", "status_code", resp.StatusCode())
		return nil, fmt.Errorf("forecast request returned status %d", resp.StatusCode())
	}

	samples := make([]domain.Sample, 0, len(payload.List))
	for _, entry := range payload.List {
		condition := ""
		if len(entry.Weather) > 0 {
			condition = entry.Weather[0].Main
		}
		samples = append(samples, domain.Sample{
			Timestamp: time.Unix(entry.Dt, 0).UTC(),
			TempF:     entry.Main.Temp,
			Condition: condition,
		})
	}

	slog.Info("forecast_fetched", "samples", len(samples))
	return samples, nil
}
