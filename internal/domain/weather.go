package domain

import "time"

// WeatherSources records which providers contributed to an assessment.
type WeatherSources struct {
	OpenMeteo  bool `json:"openMeteo"`
	WeatherAPI bool `json:"weatherApi"`
}

// WeatherAssessment is the merged hazard verdict for one coordinate and date.
type WeatherAssessment struct {
	IsHazardous   bool           `json:"isHazardous"`
	HazardDetails []string       `json:"hazardDetails"`
	Summary       string         `json:"summary"`
	Temperature   *float64       `json:"temperature"`
	TargetDate    string         `json:"targetDate"`
	Source        WeatherSources `json:"source"`
	Timestamp     time.Time      `json:"timestamp"`
}
