package weather

import "context"

// ForecastSource is a multi-day numeric forecast provider (Open-Meteo).
type ForecastSource interface {
	Name() string
	FetchForecast(ctx context.Context, lat, lng float64) (*OpenMeteoForecast, error)
}

// AlertSource is a short-forecast provider that also reports official alerts (WeatherAPI).
// date is optional; empty means current conditions.
type AlertSource interface {
	Name() string
	FetchAlerts(ctx context.Context, lat, lng float64, date string) (*WeatherAPIForecast, error)
}

// OpenMeteoForecast is the subset of the Open-Meteo response used for assessment.
type OpenMeteoForecast struct {
	Daily   OpenMeteoDaily    `json:"daily"`
	Current *OpenMeteoCurrent `json:"current"`
}

// OpenMeteoDaily holds parallel per-day arrays indexed by Time.
type OpenMeteoDaily struct {
	Time             []string  `json:"time"`
	WeatherCode      []int     `json:"weather_code"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

// OpenMeteoCurrent is the current-conditions snapshot.
type OpenMeteoCurrent struct {
	Time          string  `json:"time"`
	Temperature   float64 `json:"temperature_2m"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed_10m"`
	Precipitation float64 `json:"precipitation"`
}

// WeatherAPIForecast is the subset of the WeatherAPI forecast response used for assessment.
type WeatherAPIForecast struct {
	Current  *WeatherAPICurrent `json:"current"`
	Forecast struct {
		ForecastDay []WeatherAPIForecastDay `json:"forecastday"`
	} `json:"forecast"`
	Alerts struct {
		Alert []WeatherAPIAlert `json:"alert"`
	} `json:"alerts"`
}

// WeatherAPICondition is a textual condition.
type WeatherAPICondition struct {
	Text string `json:"text"`
	Code int    `json:"code"`
}

// WeatherAPICurrent is the current-conditions snapshot.
type WeatherAPICurrent struct {
	TempC     float64             `json:"temp_c"`
	WindKph   float64             `json:"wind_kph"`
	PrecipMM  float64             `json:"precip_mm"`
	Condition WeatherAPICondition `json:"condition"`
}

// WeatherAPIForecastDay is one forecast day.
type WeatherAPIForecastDay struct {
	Date string        `json:"date"`
	Day  WeatherAPIDay `json:"day"`
}

// WeatherAPIDay holds the daily aggregates.
type WeatherAPIDay struct {
	MaxTempC      float64             `json:"maxtemp_c"`
	MaxWindKph    float64             `json:"maxwind_kph"`
	TotalPrecipMM float64             `json:"totalprecip_mm"`
	Condition     WeatherAPICondition `json:"condition"`
}

// WeatherAPIAlert is an official weather alert.
type WeatherAPIAlert struct {
	Headline string `json:"headline"`
	Event    string `json:"event"`
	Severity string `json:"severity"`
	Desc     string `json:"desc"`
}
