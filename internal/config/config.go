// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/travelcast/travelcast/internal/climate/openmeteo"
)

// AppConfig holds runtime configuration shared by the API server and worker.
type AppConfig struct {
	Port        string
	Environment string

	// RefreshInterval controls how often the worker rebuilds district
	// snapshots. Default 1 hour.
	RefreshInterval time.Duration

	// ForecastDays is the horizon for the 2 PM averages.
	ForecastDays int

	ForecastBaseURL   string
	AirQualityBaseURL string
	Timezone          string

	// DistrictsFile is the path to the district catalog JSON.
	DistrictsFile string

	OTLPEndpoint string
	OTELEnabled  bool
}

// Load reads configuration from the environment with sensible defaults.
// A .env file is applied first when present.
func Load() (*AppConfig, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:              getenvDefault("APP_PORT", "8080"),
		Environment:       getenvDefault("APP_ENV", "development"),
		ForecastBaseURL:   getenvDefault("FORECAST_BASE_URL", openmeteo.DefaultForecastBaseURL),
		AirQualityBaseURL: getenvDefault("AIR_QUALITY_BASE_URL", openmeteo.DefaultAirQualityBaseURL),
		Timezone:          getenvDefault("CLIMATE_TIMEZONE", openmeteo.DefaultTimezone),
		DistrictsFile:     getenvDefault("DISTRICTS_FILE", "data/bd-districts.json"),
		OTLPEndpoint:      getenvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTELEnabled:       os.Getenv("OTEL_ENABLED") == "true",
	}

	intervalStr := getenvDefault("REFRESH_INTERVAL", "1h")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_INTERVAL: %w", err)
	}
	cfg.RefreshInterval = interval

	cfg.ForecastDays = getenvInt("FORECAST_DAYS", 7)
	if cfg.ForecastDays < 1 || cfg.ForecastDays > 16 {
		return nil, fmt.Errorf("FORECAST_DAYS must be between 1 and 16, got %d", cfg.ForecastDays)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
