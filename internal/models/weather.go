package models

import "time"

// WeatherObservation is the daily weather for one calendar date.
type WeatherObservation struct {
	Date      time.Time `json:"date"`
	Condition string    `json:"condition"`
	AvgTempC  float64   `json:"avgtemp_c"`
}

// DateKey formats a time as the calendar-date key used by weather lookups.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
