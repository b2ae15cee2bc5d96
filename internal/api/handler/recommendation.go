package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/travelcast/travelcast/internal/api/models"
	"github.com/travelcast/travelcast/internal/api/response"
	"github.com/travelcast/travelcast/internal/climate"
	"github.com/travelcast/travelcast/internal/district"
	"github.com/travelcast/travelcast/internal/recommendation"
)

// TravelDateHorizonDays is how far ahead (inclusive) a travel date may be.
// Today plus four days gives a five-day window, matching the provider's
// reliable forecast range.
const TravelDateHorizonDays = 4

// RecommendationHandler handles the travel recommendation endpoint.
type RecommendationHandler struct {
	districts   *district.Service
	recommender *recommendation.Service
	validate    *validator.Validate
	now         func() time.Time
}

// NewRecommendationHandler creates a new RecommendationHandler. The now
// function overrides the clock for tests; nil means time.Now.
func NewRecommendationHandler(districts *district.Service, recommender *recommendation.Service, now func() time.Time) *RecommendationHandler {
	if now == nil {
		now = time.Now
	}
	return &RecommendationHandler{
		districts:   districts,
		recommender: recommender,
		validate:    validator.New(),
		now:         now,
	}
}

// Recommend handles POST /v1/travel-recommendation.
func (h *RecommendationHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var input models.TravelRecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	if err := h.validate.Struct(&input); err != nil {
		response.BadRequest(w, r, "invalid request", fieldErrors(err))
		return
	}

	travelDate, err := time.Parse("2006-01-02", input.TravelDate)
	if err != nil {
		response.BadRequest(w, r, "invalid request", []models.FieldError{
			{Field: "travel_date", Message: "must be a date in YYYY-MM-DD format"},
		})
		return
	}

	if !h.withinHorizon(travelDate) {
		response.BadRequest(w, r, "invalid request", []models.FieldError{
			{Field: "travel_date", Message: "must be between today and 4 days from today"},
		})
		return
	}

	dest, err := h.districts.GetDistrict(r.Context(), input.DestinationDistrictID)
	if err != nil {
		if errors.Is(err, district.ErrDistrictNotFound) {
			response.NotFound(w, r, "destination district not found")
			return
		}
		response.InternalError(w, r, "failed to look up destination district")
		return
	}

	result, err := h.recommender.Recommend(r.Context(), *input.CurrentLat, *input.CurrentLon, dest, travelDate)
	if err != nil {
		writeRecommendationError(w, r, err)
		return
	}

	response.JSON(w, r, http.StatusOK, models.TravelRecommendation{
		Status:     string(result.Status),
		Reason:     result.Reason,
		TravelDate: result.TravelDate.Format("2006-01-02"),
		Current: models.InstantReading{
			Temperature2PM: result.Current.Temperature2PM,
			PM252PM:        result.Current.PM25,
		},
		Destination: models.DestinationReading{
			DistrictID: result.Destination.DistrictID,
			District:   result.Destination.District,
			InstantReading: models.InstantReading{
				Temperature2PM: result.Destination.Temperature2PM,
				PM252PM:        result.Destination.PM25,
			},
		},
	})
}

// withinHorizon reports whether the travel date falls on a calendar date
// between today and today+TravelDateHorizonDays, inclusive.
func (h *RecommendationHandler) withinHorizon(travelDate time.Time) bool {
	now := h.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	date := time.Date(travelDate.Year(), travelDate.Month(), travelDate.Day(), 0, 0, 0, 0, time.UTC)

	days := int(date.Sub(today).Hours() / 24)
	return days >= 0 && days <= TravelDateHorizonDays
}

// writeRecommendationError maps recommendation failures to HTTP responses.
func writeRecommendationError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommendation.ErrMissingInstantData):
		response.ServiceUnavailable(w, r, "Missing 2 PM data for temperature or PM2.5")
	case errors.Is(err, climate.ErrSourceUnavailable), errors.Is(err, climate.ErrShapeMismatch):
		response.ServiceUnavailable(w, r, "Failed to fetch weather/air-quality data")
	default:
		response.InternalError(w, r, "failed to compute recommendation")
	}
}

// fieldErrors converts validator errors to API field errors.
func fieldErrors(err error) []models.FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]models.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, models.FieldError{
			Field:   fieldName(fe.Field()),
			Message: validationMessage(fe),
			Code:    fe.Tag(),
		})
	}
	return out
}

// fieldName maps struct field names to their JSON names.
func fieldName(field string) string {
	switch field {
	case "CurrentLat":
		return "current_lat"
	case "CurrentLon":
		return "current_lon"
	case "DestinationDistrictID":
		return "destination_district_id"
	case "TravelDate":
		return "travel_date"
	default:
		return field
	}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "is invalid"
	}
}
