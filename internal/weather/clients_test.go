package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestOpenMeteoClient_FetchForecast(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "37.1234", q.Get("latitude"))
		assert.Equal(t, "-122.5678", q.Get("longitude"))
		assert.Contains(t, q.Get("daily"), "weather_code")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"daily": {
				"time": ["2024-05-01", "2024-05-02"],
				"weather_code": [96, 3],
				"temperature_2m_max": [18.2, 21.0],
				"wind_speed_10m_max": [40.1, 12.3],
				"precipitation_sum": [12.0, 0.0]
			},
			"current": {"time": "2024-05-01T09:00", "temperature_2m": 15.4, "weather_code": 2, "wind_speed_10m": 9.5, "precipitation": 0.1}
		}`))
	}))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.Client(), srv.URL)
	got, err := client.FetchForecast(context.Background(), 37.1234, -122.5678)
	require.NoError(t, err)
	require.Equal(t, []string{"2024-05-01", "2024-05-02"}, got.Daily.Time)
	require.Equal(t, 96, got.Daily.WeatherCode[0])
	require.Equal(t, 12.0, got.Daily.PrecipitationSum[0])
	require.NotNil(t, got.Current)
	require.Equal(t, 15.4, got.Current.Temperature)
}

func TestOpenMeteoClient_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.Client(), srv.URL)
	_, err := client.FetchForecast(context.Background(), 1, 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "502")
}

func TestWeatherAPIClient_FetchAlerts(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast.json", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "secret", q.Get("key"))
		assert.Equal(t, "37.1234,-122.5678", q.Get("q"))
		assert.Equal(t, "yes", q.Get("alerts"))
		assert.Equal(t, "2024-05-01", q.Get("dt"))
		_, _ = w.Write([]byte(`{
			"current": {"temp_c": 14.0, "wind_kph": 22.3, "precip_mm": 0, "condition": {"text": "Cloudy", "code": 1006}},
			"forecast": {"forecastday": [{"date": "2024-05-01", "day": {"maxtemp_c": 19.5, "maxwind_kph": 30.2, "totalprecip_mm": 1.2, "condition": {"text": "Patchy rain", "code": 1063}}}]},
			"alerts": {"alert": [{"headline": "Gale warning", "event": "Gale", "severity": "Moderate", "desc": "Strong winds"}]}
		}`))
	}))
	defer srv.Close()

	client := NewWeatherAPIClient(srv.Client(), srv.URL, "secret", rate.NewLimiter(rate.Inf, 1))
	got, err := client.FetchAlerts(context.Background(), 37.1234, -122.5678, "2024-05-01")
	require.NoError(t, err)
	require.Len(t, got.Forecast.ForecastDay, 1)
	require.Equal(t, "Patchy rain", got.Forecast.ForecastDay[0].Day.Condition.Text)
	require.Len(t, got.Alerts.Alert, 1)
	require.Equal(t, "Gale warning", got.Alerts.Alert[0].Headline)
}

func TestWeatherAPIClient_NoKeyIsUnavailable(t *testing.T) {
	t.Parallel()

	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	client := NewWeatherAPIClient(srv.Client(), srv.URL, "", nil)
	_, err := client.FetchAlerts(context.Background(), 1, 1, "")
	require.ErrorIs(t, err, ErrProviderUnavailable)
	require.Zero(t, atomic.LoadInt32(&hits))
}

func TestWeatherAPIClient_ErrorDoesNotLeakKey(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // requests now fail at the transport

	client := NewWeatherAPIClient(srv.Client(), srv.URL, "topsecretkey", nil)
	_, err := client.FetchAlerts(context.Background(), 1, 1, "")
	require.Error(t, err)
	require.NotContains(t, err.Error(), "topsecretkey")
}
