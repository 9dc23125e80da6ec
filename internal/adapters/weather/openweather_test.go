package weather

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestOpenWeatherProvider_Forecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/2.5/forecast" {
			t.Errorf("path = %q, want /data/2.5/forecast", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("units") != "imperial" {
			t.Errorf("units = %q, want imperial", q.Get("units"))
		}
		if q.Get("appid") != "test-key" {
			t.Errorf("appid = %q, want test-key", q.Get("appid"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"list": []map[string]any{
				{
					"dt":      1751628800,
					"main":    map[string]any{"temp": 71.3},
					"weather": []map[string]any{{"main": "Clear"}},
				},
				{
					"dt":      1751639600,
					"main":    map[string]any{"temp": 65.8},
					"weather": []map[string]any{},
				},
			},
		})
	}))
	defer server.Close()

	provider := NewOpenWeatherProvider(server.URL, "test-key")
	samples, err := provider.Forecast(context.Background(), 43.5, -70.7)
	if err != nil {
		t.Fatalf("Forecast failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].TempF != 71.3 {
		t.Errorf("TempF = %v, want 71.3", samples[0].TempF)
	}
	if samples[0].Condition != "Clear" {
		t.Errorf("Condition = %q, want Clear", samples[0].Condition)
	}
	if !samples[0].Timestamp.Equal(time.Unix(1751628800, 0)) {
		t.Errorf("Timestamp = %v, want %v", samples[0].Timestamp, time.Unix(1751628800, 0))
	}
	// A sample without a weather entry keeps an empty condition.
	if samples[1].Condition != "" {
		t.Errorf("Condition = %q, want empty", samples[1].Condition)
	}
}

func TestOpenWeatherProvider_Forecast_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	provider := NewOpenWeatherProvider(server.URL, "bad-key")
	if _, err := provider.Forecast(context.Background(), 43.5, -70.7); err == nil {
		t.Fatal("expected error for 401 response, got nil")
	}
}
