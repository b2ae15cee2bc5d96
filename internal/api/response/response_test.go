package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcast/travelcast/internal/api/models"
	"github.com/travelcast/travelcast/internal/api/response"
)

func TestJSON_WritesBodyAndHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/districts", nil)

	response.JSON(rec, req, http.StatusOK, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "world", body["hello"])
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	response.JSON(rec, req, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

func TestBadRequest_ProblemShape(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/travel-recommendation", nil)

	response.BadRequest(rec, req, "invalid request", []models.FieldError{
		{Field: "travel_date", Message: "is required"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.Equal(t, "/v1/travel-recommendation", problem.Instance)
	require.Len(t, problem.Errors, 1)
	assert.Equal(t, "travel_date", problem.Errors[0].Field)
}

func TestServiceUnavailable_ProblemShape(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/travel-recommendation", nil)

	response.ServiceUnavailable(rec, req, "Failed to fetch weather/air-quality data")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var problem models.Problem
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&problem))
	assert.Equal(t, models.ProblemTypeUnavailable, problem.Type)
	assert.Equal(t, "Failed to fetch weather/air-quality data", problem.Detail)
}
