package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the server's environment configuration. Every knob has a
// development-friendly default so `go run ./cmd/server` works out of the
// box; production deployments set the BUNGANUT_* variables.
type Config struct {
	Addr   string `env:"BUNGANUT_ADDR" envDefault:":8080"`
	DBPath string `env:"BUNGANUT_DB_PATH" envDefault:"bunganut.db"`
	Env    string `env:"BUNGANUT_ENV" envDefault:"development"`

	StaticDir string `env:"BUNGANUT_STATIC_DIR" envDefault:"static"`

	ResendKey  string `env:"BUNGANUT_RESEND_KEY"`
	ResendFrom string `env:"BUNGANUT_RESEND_FROM" envDefault:"Bunganut Cottage <noreply@bunganutz.camp>"`

	// Defaults point at Bunganut Pond, Maine.
	WeatherKey string  `env:"BUNGANUT_WEATHER_KEY"`
	WeatherLat float64 `env:"BUNGANUT_WEATHER_LAT" envDefault:"43.507855"`
	WeatherLon float64 `env:"BUNGANUT_WEATHER_LON" envDefault:"-70.701264"`
}

// Load parses the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
