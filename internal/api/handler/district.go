package handler

import (
	"net/http"
	"strconv"

	"github.com/travelcast/travelcast/internal/api/models"
	"github.com/travelcast/travelcast/internal/api/response"
	"github.com/travelcast/travelcast/internal/district"
)

// DistrictHandler handles catalog and ranking endpoints.
type DistrictHandler struct {
	service *district.Service
}

// NewDistrictHandler creates a new DistrictHandler.
func NewDistrictHandler(service *district.Service) *DistrictHandler {
	return &DistrictHandler{service: service}
}

// ListDistricts handles GET /v1/districts - the full catalog.
func (h *DistrictHandler) ListDistricts(w http.ResponseWriter, r *http.Request) {
	districts, err := h.service.ListDistricts(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to list districts")
		return
	}

	items := make([]models.District, 0, len(districts))
	for _, d := range districts {
		items = append(items, models.District{
			ID:         d.ID,
			Name:       d.Name,
			BnName:     d.NameBN,
			Lat:        d.Lat,
			Lon:        d.Lon,
			DivisionID: d.DivisionID,
		})
	}

	response.JSON(w, r, http.StatusOK, models.DistrictList{Districts: items})
}

// TopDistricts handles GET /v1/top-districts - the comfort ranking.
// An optional ?limit= query parameter overrides the default of 10.
func (h *DistrictHandler) TopDistricts(w http.ResponseWriter, r *http.Request) {
	n := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(w, r, "limit must be a positive integer", []models.FieldError{
				{Field: "limit", Message: "must be a positive integer"},
			})
			return
		}
		n = parsed
	}

	ranked, err := h.service.TopDistricts(r.Context(), n)
	if err != nil {
		response.InternalError(w, r, "failed to rank districts")
		return
	}

	items := make([]models.RankedDistrict, 0, len(ranked))
	for _, entry := range ranked {
		items = append(items, models.RankedDistrict{
			Rank:          entry.Rank,
			ID:            entry.DistrictID,
			Name:          entry.Name,
			AvgTemp2PM7D:  entry.AvgTemp2PM,
			AvgPM257D:     entry.AvgPM25,
			LastUpdatedAt: models.Timestamp(entry.UpdatedAt),
		})
	}

	response.JSON(w, r, http.StatusOK, models.TopDistricts{Districts: items})
}
