package projections

import (
	"context"
	"errors"

	domainWeather "bunganutz/internal/domain/weather"
)

// GetForecastQuery carries query parameters.
type GetForecastQuery struct {
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD inclusive
}

// GetForecastResult carries one summary per requested date. Days beyond
// the provider's horizon come back with Known=false.
type GetForecastResult struct {
	Days []domainWeather.DaySummary
}

// GetForecastDeps holds dependencies for GetForecast.
type GetForecastDeps struct {
	Provider WeatherProvider
	Lat      float64
	Lon      float64
}

// QueryGetForecast fetches the provider's forecast and condenses it to
// the per-day lines the calendar shows.
// PRE: StartDate <= EndDate
// POST: One DaySummary per date in order
func QueryGetForecast(ctx context.Context, query GetForecastQuery, deps GetForecastDeps) (GetForecastResult, error) {
	if query.StartDate == "" || query.EndDate == "" {
		return GetForecastResult{}, errors.New("start and end dates are required")
	}
	if query.EndDate < query.StartDate {
		return GetForecastResult{}, errors.New("end date precedes start date")
	}

	samples, err := deps.Provider.Forecast(ctx, deps.Lat, deps.Lon)
	if err != nil {
		return GetForecastResult{}, err
	}

	return GetForecastResult{
		Days: domainWeather.SummarizeRange(samples, query.StartDate, query.EndDate),
	}, nil
}
