// Package openmeteo provides a climate.DataSource backed by the Open-Meteo
// forecast and air-quality APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/travelcast/travelcast/internal/climate"
	"github.com/travelcast/travelcast/internal/provider/resilience"
)

const (
	// DefaultForecastBaseURL is the base URL for the weather forecast API.
	DefaultForecastBaseURL = "https://api.open-meteo.com/v1/forecast"

	// DefaultAirQualityBaseURL is the base URL for the air quality API.
	DefaultAirQualityBaseURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	// DefaultTimezone is the timezone requested for hourly timestamps.
	// All catalog districts are in Bangladesh.
	DefaultTimezone = "Asia/Dhaka"

	// ProviderName identifies this provider.
	ProviderName = "open-meteo"
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// ForecastBaseURL overrides the weather forecast endpoint.
	ForecastBaseURL string

	// AirQualityBaseURL overrides the air quality endpoint.
	AirQualityBaseURL string

	// Timezone for hourly timestamps (defaults to DefaultTimezone).
	Timezone string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client is created and registered with the provider registry.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 10s).
	Timeout time.Duration

	// Registry receives provider health updates (defaults to
	// resilience.GlobalRegistry).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo API client. It is stateless and reentrant; no
// call depends on client state surviving between requests.
type Client struct {
	forecastURL   string
	airQualityURL string
	timezone      string
	httpClient    HTTPDoer
	registry      *resilience.Registry
	logger        zerolog.Logger
}

// NewClient creates a new Open-Meteo client.
func NewClient(cfg ClientConfig) *Client {
	forecastURL := cfg.ForecastBaseURL
	if forecastURL == "" {
		forecastURL = DefaultForecastBaseURL
	}
	airQualityURL := cfg.AirQualityBaseURL
	if airQualityURL == "" {
		airQualityURL = DefaultAirQualityBaseURL
	}
	timezone := cfg.Timezone
	if timezone == "" {
		timezone = DefaultTimezone
	}
	registry := cfg.Registry
	if registry == nil {
		registry = resilience.GlobalRegistry
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 10 * time.Second
		}
		client := resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     5 * time.Second,
		})
		registry.Register(ProviderName, client)
		httpClient = client
	}

	return &Client{
		forecastURL:   strings.TrimSuffix(forecastURL, "/"),
		airQualityURL: strings.TrimSuffix(airQualityURL, "/"),
		timezone:      timezone,
		httpClient:    httpClient,
		registry:      registry,
		logger:        cfg.Logger,
	}
}

// locationResponse is one per-coordinate entry of an Open-Meteo response.
type locationResponse struct {
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Hourly    hourlyData `json:"hourly"`
}

type hourlyData struct {
	Time          []string   `json:"time"`
	Temperature2M []*float64 `json:"temperature_2m"`
	PM25          []*float64 `json:"pm2_5"`
}

// values returns the value sequence for the given metric.
func (h hourlyData) values(metric climate.Metric) []*float64 {
	if metric == climate.MetricPM25 {
		return h.PM25
	}
	return h.Temperature2M
}

// BatchDaily fetches one multi-day hourly series per coordinate in a single
// API call. Response entries are index-aligned with the input coordinates.
func (c *Client) BatchDaily(ctx context.Context, metric climate.Metric, coords []climate.Coordinate, days int) ([]climate.HourlySeries, error) {
	if len(coords) == 0 {
		return nil, nil
	}

	params := c.baseParams(metric, coords)
	params.Set("forecast_days", strconv.Itoa(days))

	locations, err := c.get(ctx, c.baseURLFor(metric), params)
	if err != nil {
		return nil, err
	}

	series := make([]climate.HourlySeries, 0, len(locations))
	for _, loc := range locations {
		series = append(series, climate.HourlySeries{
			Times:  loc.Hourly.Time,
			Values: loc.Hourly.values(metric),
		})
	}

	return series, nil
}

// PairedInstant fetches the single-day hourly series for each coordinate and
// extracts the value at the instant's local timestamp. Entries with no
// reading at that timestamp are nil.
func (c *Client) PairedInstant(ctx context.Context, metric climate.Metric, coords []climate.Coordinate, at time.Time) ([]*float64, error) {
	if len(coords) == 0 {
		return nil, nil
	}

	date := at.Format("2006-01-02")
	params := c.baseParams(metric, coords)
	params.Set("start_date", date)
	params.Set("end_date", date)

	locations, err := c.get(ctx, c.baseURLFor(metric), params)
	if err != nil {
		return nil, err
	}

	target := at.Format("2006-01-02T15:04")
	values := make([]*float64, 0, len(locations))
	for _, loc := range locations {
		values = append(values, instantValue(loc.Hourly, metric, target))
	}

	return values, nil
}

// instantValue finds the reading at the target local timestamp, or nil.
func instantValue(h hourlyData, metric climate.Metric, target string) *float64 {
	vals := h.values(metric)
	for i, ts := range h.Time {
		if ts != target {
			continue
		}
		if i < len(vals) {
			return vals[i]
		}
		return nil
	}
	return nil
}

// baseParams builds the query parameters shared by both request kinds.
// Coordinates are comma-joined; Open-Meteo echoes one response entry per
// coordinate in request order.
func (c *Client) baseParams(metric climate.Metric, coords []climate.Coordinate) url.Values {
	lats := make([]string, 0, len(coords))
	lons := make([]string, 0, len(coords))
	for _, coord := range coords {
		lats = append(lats, strconv.FormatFloat(coord.Lat, 'f', 4, 64))
		lons = append(lons, strconv.FormatFloat(coord.Lon, 'f', 4, 64))
	}

	params := url.Values{}
	params.Set("latitude", strings.Join(lats, ","))
	params.Set("longitude", strings.Join(lons, ","))
	params.Set("hourly", string(metric))
	params.Set("timezone", c.timezone)
	return params
}

func (c *Client) baseURLFor(metric climate.Metric) string {
	if metric == climate.MetricPM25 {
		return c.airQualityURL
	}
	return c.forecastURL
}

// get executes the request and decodes the response. Open-Meteo returns a
// JSON array for multi-coordinate requests and a single object for one
// coordinate; both shapes normalize to a slice.
func (c *Client) get(ctx context.Context, baseURL string, params url.Values) ([]locationResponse, error) {
	reqURL := baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.registry.RecordFailure(ProviderName, err)
		c.logger.Error().Err(err).Str("url", baseURL).Msg("open-meteo request failed")
		return nil, fmt.Errorf("open-meteo request: %w", climate.ErrSourceUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status %d", resp.StatusCode)
		c.registry.RecordFailure(ProviderName, err)
		c.logger.Error().Int("status", resp.StatusCode).Str("url", baseURL).Msg("open-meteo returned non-success status")
		return nil, fmt.Errorf("open-meteo status %d: %w", resp.StatusCode, climate.ErrSourceUnavailable)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.registry.RecordFailure(ProviderName, err)
		return nil, fmt.Errorf("decode open-meteo response: %w", climate.ErrSourceUnavailable)
	}

	locations, err := decodeLocations(raw)
	if err != nil {
		c.registry.RecordFailure(ProviderName, err)
		return nil, fmt.Errorf("decode open-meteo response: %w", climate.ErrSourceUnavailable)
	}

	c.registry.RecordSuccess(ProviderName)
	return locations, nil
}

// decodeLocations normalizes the array and single-object response shapes.
func decodeLocations(raw json.RawMessage) ([]locationResponse, error) {
	trimmed := strings.TrimLeft(string(raw), " \t\r\n")
	if strings.HasPrefix(trimmed, "[") {
		var many []locationResponse
		if err := json.Unmarshal(raw, &many); err != nil {
			return nil, err
		}
		return many, nil
	}

	var one locationResponse
	if err := json.Unmarshal(raw, &one); err != nil {
		return nil, err
	}
	return []locationResponse{one}, nil
}

// Ensure Client implements the DataSource interface.
var _ climate.DataSource = (*Client)(nil)
