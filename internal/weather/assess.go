package weather

import (
	"fmt"
	"time"

	"travelex/internal/domain"
)

// Hazard thresholds.
const (
	windHazardKph         = 60.0
	dailyPrecipHazardMM   = 20.0
	currentPrecipHazardMM = 5.0
)

// SummaryNotAvailable is the summary used when no provider covers the requested date.
const SummaryNotAvailable = "Forecast not available for this date"

// officialAlertPrefix marks details that come from official alerts rather than heuristics.
const officialAlertPrefix = "Official alert: "

// verdict accumulates hazard triggers while merging provider responses.
type verdict struct {
	hazardous   bool
	details     []string
	summary     string
	temperature *float64
}

func (v *verdict) flag(detail string) {
	v.hazardous = true
	v.details = append(v.details, detail)
}

func (v *verdict) hasSummary() bool {
	return v.summary != "" && v.summary != SummaryNotAvailable
}

// merge combines whichever provider responses are present into one assessment.
// Open-Meteo heuristics are evaluated first, then WeatherAPI alerts and backfill.
func merge(om *OpenMeteoForecast, wa *WeatherAPIForecast, date string, now time.Time) domain.WeatherAssessment {
	var v verdict

	if om != nil {
		applyOpenMeteo(&v, om, date)
	}
	if wa != nil {
		applyWeatherAPI(&v, wa, date)
	}

	if v.summary == "" {
		v.summary = SummaryNotAvailable
	}

	target := date
	if target == "" {
		target = now.UTC().Format(dateLayout)
	}

	details := v.details
	if details == nil {
		details = []string{}
	}

	return domain.WeatherAssessment{
		IsHazardous:   v.hazardous,
		HazardDetails: details,
		Summary:       v.summary,
		Temperature:   v.temperature,
		TargetDate:    target,
		Source: domain.WeatherSources{
			OpenMeteo:  om != nil,
			WeatherAPI: wa != nil,
		},
		Timestamp: now,
	}
}

func applyOpenMeteo(v *verdict, f *OpenMeteoForecast, date string) {
	if date == "" {
		if f.Current == nil {
			return
		}
		c := f.Current
		v.summary = DescribeWeatherCode(c.WeatherCode)
		v.temperature = floatPtr(c.Temperature)
		checkCode(v, c.WeatherCode)
		checkWind(v, c.WindSpeed)
		if c.Precipitation > currentPrecipHazardMM {
			v.flag(fmt.Sprintf("Heavy precipitation: %.1f mm", c.Precipitation))
		}
		return
	}

	idx := -1
	for i, d := range f.Daily.Time {
		if d == date {
			idx = i
			break
		}
	}
	if idx < 0 {
		v.summary = SummaryNotAvailable
		return
	}

	code := intAt(f.Daily.WeatherCode, idx)
	v.summary = DescribeWeatherCode(code)
	if temp, ok := floatAt(f.Daily.TemperatureMax, idx); ok {
		v.temperature = floatPtr(temp)
	}
	checkCode(v, code)
	if wind, ok := floatAt(f.Daily.WindSpeedMax, idx); ok {
		checkWind(v, wind)
	}
	if precip, ok := floatAt(f.Daily.PrecipitationSum, idx); ok && precip > dailyPrecipHazardMM {
		v.flag(fmt.Sprintf("Heavy precipitation expected: %.1f mm", precip))
	}
}

func applyWeatherAPI(v *verdict, f *WeatherAPIForecast, date string) {
	for _, alert := range f.Alerts.Alert {
		text := alert.Headline
		if text == "" {
			text = alert.Event
		}
		if text == "" {
			text = "Weather alert issued"
		}
		v.flag(officialAlertPrefix + text)
	}

	if v.hasSummary() {
		return
	}

	if date == "" {
		if f.Current == nil {
			return
		}
		v.summary = f.Current.Condition.Text
		if v.temperature == nil {
			v.temperature = floatPtr(f.Current.TempC)
		}
		checkWind(v, f.Current.WindKph)
		return
	}

	for _, fd := range f.Forecast.ForecastDay {
		if fd.Date != date {
			continue
		}
		v.summary = fd.Day.Condition.Text
		if v.temperature == nil {
			v.temperature = floatPtr(fd.Day.MaxTempC)
		}
		checkWind(v, fd.Day.MaxWindKph)
		return
	}
}

func checkCode(v *verdict, code int) {
	if code >= thunderstormCode {
		v.flag(fmt.Sprintf("Thunderstorms expected: %s", DescribeWeatherCode(code)))
	}
}

func checkWind(v *verdict, kph float64) {
	if kph > windHazardKph {
		v.flag(fmt.Sprintf("High winds: %.0f km/h", kph))
	}
}

func intAt(values []int, i int) int {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func floatAt(values []float64, i int) (float64, bool) {
	if i < len(values) {
		return values[i], true
	}
	return 0, false
}

func floatPtr(v float64) *float64 {
	return &v
}
