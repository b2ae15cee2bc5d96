// Package handler provides HTTP handlers for the TravelCast API.
package handler

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/travelcast/travelcast/internal/api/models"
	"github.com/travelcast/travelcast/internal/api/response"
	"github.com/travelcast/travelcast/internal/provider/resilience"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	registry  *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, registry *resilience.Registry) *OpsHandler {
	if registry == nil {
		registry = resilience.GlobalRegistry
	}
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		registry:  registry,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider status from the
// resilience registry.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	providers := h.registry.GetAllHealth()

	overall := models.HealthStatusOK
	statuses := make([]models.ProviderStatus, 0, len(providers))
	for _, p := range providers {
		status := models.HealthStatusOK
		if !p.IsHealthy() {
			status = models.HealthStatusDegraded
			overall = models.HealthStatusDegraded
		}

		ps := models.ProviderStatus{
			Provider:     p.Name,
			Status:       status,
			CircuitState: circuitStateName(p.CircuitState),
		}
		if p.LastSuccessAt != nil {
			ts := models.Timestamp(*p.LastSuccessAt)
			ps.LastSuccessAt = &ts
		}
		if p.LastFailureAt != nil {
			ts := models.Timestamp(*p.LastFailureAt)
			ps.LastFailureAt = &ts
		}
		if p.LastError != "" {
			msg := p.LastError
			ps.Message = &msg
		}
		statuses = append(statuses, ps)
	}

	response.JSON(w, r, http.StatusOK, models.SystemStatus{
		Status:    overall,
		Time:      models.Timestamp(time.Now()),
		Providers: statuses,
	})
}

func circuitStateName(state gobreaker.State) string {
	switch state {
	case gobreaker.StateOpen:
		return "open"
	case gobreaker.StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}
