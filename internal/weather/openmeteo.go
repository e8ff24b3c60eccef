package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultOpenMeteoURL is the public Open-Meteo API base URL.
	DefaultOpenMeteoURL = "https://api.open-meteo.com"

	openMeteoDaily   = "weather_code,temperature_2m_max,wind_speed_10m_max,precipitation_sum"
	openMeteoCurrent = "temperature_2m,weather_code,wind_speed_10m,precipitation"
	openMeteoDays    = "16"
)

// OpenMeteoClient fetches multi-day forecasts from Open-Meteo.
type OpenMeteoClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenMeteoClient creates a new OpenMeteoClient.
func NewOpenMeteoClient(httpClient *http.Client, baseURL string) *OpenMeteoClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	return &OpenMeteoClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Name implements ForecastSource.
func (c *OpenMeteoClient) Name() string {
	return "open-meteo"
}

// FetchForecast implements ForecastSource.
func (c *OpenMeteoClient) FetchForecast(ctx context.Context, lat, lng float64) (*OpenMeteoForecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(lng, 'f', 4, 64))
	params.Set("daily", openMeteoDaily)
	params.Set("current", openMeteoCurrent)
	params.Set("timezone", "auto")
	params.Set("forecast_days", openMeteoDays)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("open-meteo: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("open-meteo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("open-meteo: unexpected status %d", resp.StatusCode)
	}

	var forecast OpenMeteoForecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("open-meteo: decode response: %w", err)
	}
	return &forecast, nil
}

var _ ForecastSource = (*OpenMeteoClient)(nil)
