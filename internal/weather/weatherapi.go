package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
)

// DefaultWeatherAPIURL is the public WeatherAPI base URL.
const DefaultWeatherAPIURL = "https://api.weatherapi.com"

// WeatherAPIClient fetches short forecasts and official alerts from WeatherAPI.
type WeatherAPIClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// NewWeatherAPIClient creates a new WeatherAPIClient. A nil limiter disables throttling.
func NewWeatherAPIClient(httpClient *http.Client, baseURL, apiKey string, limiter *rate.Limiter) *WeatherAPIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultWeatherAPIURL
	}
	return &WeatherAPIClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		limiter:    limiter,
	}
}

// Name implements AlertSource.
func (c *WeatherAPIClient) Name() string {
	return "weatherapi"
}

// FetchAlerts implements AlertSource.
// Without an API key the provider reports ErrProviderUnavailable.
func (c *WeatherAPIClient) FetchAlerts(ctx context.Context, lat, lng float64, date string) (*WeatherAPIForecast, error) {
	if c.apiKey == "" {
		return nil, ErrProviderUnavailable
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("weatherapi: rate limit: %w", err)
		}
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", strconv.FormatFloat(lat, 'f', 4, 64)+","+strconv.FormatFloat(lng, 'f', 4, 64))
	params.Set("days", "3")
	params.Set("alerts", "yes")
	params.Set("aqi", "no")
	if date != "" {
		params.Set("dt", date)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weatherapi: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weatherapi: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weatherapi: unexpected status %d", resp.StatusCode)
	}

	var forecast WeatherAPIForecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("weatherapi: decode response: %w", err)
	}
	return &forecast, nil
}

// redactKey strips the API key from transport errors, which embed the request URL.
func redactKey(err error, key string) error {
	var urlErr *url.Error
	if key == "" || !errors.As(err, &urlErr) {
		return err
	}
	return &url.Error{
		Op:  urlErr.Op,
		URL: strings.ReplaceAll(urlErr.URL, key, "REDACTED"),
		Err: urlErr.Err,
	}
}

var _ AlertSource = (*WeatherAPIClient)(nil)
