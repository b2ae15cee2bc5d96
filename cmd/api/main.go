// Package main provides the entrypoint for the TravelCast API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelcast/travelcast/internal/api"
	"github.com/travelcast/travelcast/internal/api/middleware"
	"github.com/travelcast/travelcast/internal/climate/openmeteo"
	"github.com/travelcast/travelcast/internal/config"
	"github.com/travelcast/travelcast/internal/database"
	"github.com/travelcast/travelcast/internal/district"
	"github.com/travelcast/travelcast/internal/recommendation"
	"github.com/travelcast/travelcast/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "travelcast-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting TravelCast API")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.OTELEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.OTELEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	// Initialize the climate data source
	source := openmeteo.NewClient(openmeteo.ClientConfig{
		ForecastBaseURL:   cfg.ForecastBaseURL,
		AirQualityBaseURL: cfg.AirQualityBaseURL,
		Timezone:          cfg.Timezone,
		Logger:            log,
	})

	// Initialize district repository and service
	districtRepo := district.NewPostgresRepository(pool)
	districtService := district.NewService(district.ServiceConfig{
		Repository:   districtRepo,
		Source:       source,
		Logger:       log,
		ForecastDays: cfg.ForecastDays,
	})
	log.Info().Msg("district service initialized")

	// Initialize recommendation service
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Timezone).Msg("invalid timezone")
	}
	recommendationService := recommendation.NewService(recommendation.ServiceConfig{
		Source:   source,
		Logger:   log,
		Location: location,
	})
	log.Info().Msg("recommendation service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:               Version,
		BuildTime:             BuildTime,
		Logger:                log,
		ServiceName:           serviceName,
		Metrics:               metrics,
		DistrictService:       districtService,
		RecommendationService: recommendationService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
