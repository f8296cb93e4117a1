package factories

import (
	"math"
	"math/rand"
	"time"

	"github.com/chrisdamba/surplussim/internal/models"
)

type conditionMix struct {
	conditions []string
	weights    []float64
}

var (
	coldMix = conditionMix{
		conditions: []string{"Light snow", "Fog", "Overcast", "Cloudy", "Mist", "Clear"},
		weights:    []float64{0.15, 0.15, 0.25, 0.2, 0.1, 0.15},
	}
	mildMix = conditionMix{
		conditions: []string{"Partly Cloudy", "Cloudy", "Overcast", "Patchy rain nearby", "Light drizzle", "Light rain", "Moderate rain", "Heavy rain", "Mist", "Sunny"},
		weights:    []float64{0.15, 0.15, 0.15, 0.15, 0.1, 0.1, 0.07, 0.03, 0.05, 0.05},
	}
	warmMix = conditionMix{
		conditions: []string{"Sunny", "Partly Cloudy", "Clear", "Cloudy", "Patchy rain nearby", "Thundery outbreaks", "Light rain"},
		weights:    []float64{0.35, 0.25, 0.1, 0.1, 0.1, 0.05, 0.05},
	}
)

// WeatherFactory produces one observation per day with a seasonal
// temperature curve peaking in late July.
type WeatherFactory struct {
	rng *rand.Rand
}

func NewWeatherFactory(rng *rand.Rand) *WeatherFactory {
	return &WeatherFactory{rng: rng}
}

func (wf *WeatherFactory) CreateObservation(date time.Time) models.WeatherObservation {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	seasonal := 11 + 6*math.Sin(2*math.Pi*float64(day.YearDay()-115)/365)
	temp := math.Round((seasonal+wf.rng.NormFloat64()*2.5)*10) / 10

	mix := mildMix
	switch {
	case temp < 3:
		mix = coldMix
	case temp >= 16:
		mix = warmMix
	}

	total := 0.0
	for _, w := range mix.weights {
		total += w
	}

	return models.WeatherObservation{
		Date:      day,
		Condition: selectWeighted(wf.rng, mix.conditions, mix.weights, total),
		AvgTempC:  temp,
	}
}

// CreateRange covers every calendar day in [start, end].
func (wf *WeatherFactory) CreateRange(start, end time.Time) []models.WeatherObservation {
	var out []models.WeatherObservation
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		out = append(out, wf.CreateObservation(d))
	}
	return out
}
