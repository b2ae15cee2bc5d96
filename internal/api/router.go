// Package api provides the HTTP API for TravelCast.
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/travelcast/travelcast/internal/api/handler"
	"github.com/travelcast/travelcast/internal/api/middleware"
	"github.com/travelcast/travelcast/internal/district"
	"github.com/travelcast/travelcast/internal/provider/resilience"
	"github.com/travelcast/travelcast/internal/recommendation"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version               string
	BuildTime             string
	Logger                zerolog.Logger
	ServiceName           string
	Metrics               *middleware.Metrics
	DistrictService       *district.Service
	RecommendationService *recommendation.Service
	ProviderRegistry      *resilience.Registry

	// Now overrides the clock used for travel-date horizon checks, for tests.
	Now func() time.Time
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "travelcast-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.ContentTypeJSON)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.ProviderRegistry)
	districtHandler := handler.NewDistrictHandler(cfg.DistrictService)
	recommendationHandler := handler.NewRecommendationHandler(cfg.DistrictService, cfg.RecommendationService, cfg.Now)

	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Catalog and ranking read from the store - standard rate limiting.
		r.With(standardRateLimit).Get("/districts", districtHandler.ListDistricts)
		r.With(standardRateLimit).Get("/top-districts", districtHandler.TopDistricts)

		// Recommendation calls the climate provider per request - strict
		// rate limiting.
		r.With(expensiveRateLimit, middleware.RequireJSON).
			Post("/travel-recommendation", recommendationHandler.Recommend)
	})

	return r
}
