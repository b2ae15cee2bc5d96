package openmeteo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelcast/travelcast/internal/climate"
	"github.com/travelcast/travelcast/internal/climate/openmeteo"
	"github.com/travelcast/travelcast/internal/provider/resilience"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*openmeteo.Client, *url.Values) {
	t.Helper()

	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := openmeteo.NewClient(openmeteo.ClientConfig{
		ForecastBaseURL:   server.URL,
		AirQualityBaseURL: server.URL,
		HTTPClient:        http.DefaultClient,
		Registry:          resilience.NewRegistry(),
	})
	return client, &query
}

func TestBatchDaily_MultiCoordinateArrayResponse(t *testing.T) {
	client, query := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"latitude": 23.71, "longitude": 90.41, "hourly": {
				"time": ["2026-08-27T13:00", "2026-08-27T14:00"],
				"temperature_2m": [30.1, 31.5]
			}},
			{"latitude": 22.35, "longitude": 91.78, "hourly": {
				"time": ["2026-08-27T13:00", "2026-08-27T14:00"],
				"temperature_2m": [28.4, null]
			}}
		]`))
	})

	coords := []climate.Coordinate{
		{Lat: 23.7104, Lon: 90.4074},
		{Lat: 22.3475, Lon: 91.7832},
	}

	series, err := client.BatchDaily(context.Background(), climate.MetricTemperature, coords, 7)
	require.NoError(t, err)
	require.Len(t, series, 2)

	assert.Equal(t, []string{"2026-08-27T13:00", "2026-08-27T14:00"}, series[0].Times)
	require.NotNil(t, series[0].Values[1])
	assert.Equal(t, 31.5, *series[0].Values[1])
	assert.Nil(t, series[1].Values[1], "null readings should decode as absent")

	assert.Equal(t, "23.7104,22.3475", query.Get("latitude"))
	assert.Equal(t, "90.4074,91.7832", query.Get("longitude"))
	assert.Equal(t, "temperature_2m", query.Get("hourly"))
	assert.Equal(t, "7", query.Get("forecast_days"))
	assert.Equal(t, openmeteo.DefaultTimezone, query.Get("timezone"))
}

func TestBatchDaily_SingleObjectResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": 23.71, "longitude": 90.41, "hourly": {
			"time": ["2026-08-27T14:00"],
			"pm2_5": [42.5]
		}}`))
	})

	series, err := client.BatchDaily(context.Background(), climate.MetricPM25, []climate.Coordinate{{Lat: 23.71, Lon: 90.41}}, 7)
	require.NoError(t, err)
	require.Len(t, series, 1)
	require.NotNil(t, series[0].Values[0])
	assert.Equal(t, 42.5, *series[0].Values[0])
}

func TestBatchDaily_EmptyCoordinates(t *testing.T) {
	called := false
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	series, err := client.BatchDaily(context.Background(), climate.MetricTemperature, nil, 7)
	require.NoError(t, err)
	assert.Nil(t, series)
	assert.False(t, called, "should not call the API with no coordinates")
}

func TestBatchDaily_NonSuccessStatus(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.BatchDaily(context.Background(), climate.MetricTemperature, []climate.Coordinate{{Lat: 1, Lon: 2}}, 7)
	assert.ErrorIs(t, err, climate.ErrSourceUnavailable)
}

func TestBatchDaily_MalformedPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hourly": "not-an-object"}`))
	})

	_, err := client.BatchDaily(context.Background(), climate.MetricTemperature, []climate.Coordinate{{Lat: 1, Lon: 2}}, 7)
	assert.ErrorIs(t, err, climate.ErrSourceUnavailable)
}

func TestPairedInstant_ExtractsTargetHour(t *testing.T) {
	client, query := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"hourly": {
				"time": ["2026-09-01T13:00", "2026-09-01T14:00", "2026-09-01T15:00"],
				"temperature_2m": [29.0, 31.2, 30.8]
			}},
			{"hourly": {
				"time": ["2026-09-01T13:00", "2026-09-01T14:00", "2026-09-01T15:00"],
				"temperature_2m": [27.5, 28.9, 28.1]
			}}
		]`))
	})

	at := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	coords := []climate.Coordinate{{Lat: 23.71, Lon: 90.41}, {Lat: 22.35, Lon: 91.78}}

	values, err := client.PairedInstant(context.Background(), climate.MetricTemperature, coords, at)
	require.NoError(t, err)
	require.Len(t, values, 2)
	require.NotNil(t, values[0])
	require.NotNil(t, values[1])
	assert.Equal(t, 31.2, *values[0])
	assert.Equal(t, 28.9, *values[1])

	assert.Equal(t, "2026-09-01", query.Get("start_date"))
	assert.Equal(t, "2026-09-01", query.Get("end_date"))
}

func TestPairedInstant_AbsentReadingIsNil(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"hourly": {
				"time": ["2026-09-01T14:00"],
				"pm2_5": [null]
			}},
			{"hourly": {
				"time": ["2026-09-01T13:00"],
				"pm2_5": [18.2]
			}}
		]`))
	})

	at := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	coords := []climate.Coordinate{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}}

	values, err := client.PairedInstant(context.Background(), climate.MetricPM25, coords, at)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Nil(t, values[0], "null reading at target hour")
	assert.Nil(t, values[1], "target hour missing from series")
}
