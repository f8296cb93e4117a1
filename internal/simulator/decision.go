package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/chrisdamba/surplussim/internal/reference"
)

// Features are the raw bundle signals fed to the decision model. Hours are
// fractional.
type Features struct {
	Discount     float64
	Price        float64
	Temperature  float64
	LeadTime     float64
	WindowLength float64
	TimeOfDay    float64 // hour of the collection window midpoint
	Day          time.Weekday
	Category     string
	Weather      string

	// TimeToCollection is only known once a reservation exists.
	TimeToCollection *float64
}

// Weights give the contribution of each normalized signal to the score.
type Weights struct {
	Discount         float64
	Price            float64
	Temperature      float64
	LeadTime         float64
	WindowLength     float64
	TimeOfDay        float64
	Day              float64
	Category         float64
	Weather          float64
	TimeToCollection float64
	Multiplier       float64
}

var (
	ReservationWeights = Weights{
		Discount:     0.20,
		Price:        0.15,
		Temperature:  0.05,
		LeadTime:     0.10,
		WindowLength: 0.10,
		TimeOfDay:    0.10,
		Day:          0.05,
		Category:     0.15,
		Weather:      0.10,
		Multiplier:   1.0,
	}

	CollectionWeights = Weights{
		Discount:         0.10,
		Price:            0.10,
		Temperature:      0.10,
		LeadTime:         0.05,
		WindowLength:     0.15,
		TimeOfDay:        0.10,
		Day:              0.05,
		Category:         0.05,
		Weather:          0.15,
		TimeToCollection: 0.15,
		Multiplier:       0.8,
	}
)

type Decision struct {
	Score     float64
	Threshold float64
	Accepted  bool
}

type DecisionModel struct {
	ref *reference.Data
}

func NewDecisionModel(ref *reference.Data) *DecisionModel {
	return &DecisionModel{ref: ref}
}

// Score is the weighted mean of the normalized signals, scaled by the
// multiplier. Signals that are absent drop out of both sides of the mean.
func (m *DecisionModel) Score(f Features, w Weights) (float64, error) {
	category, err := m.ref.CategoryValue(f.Category)
	if err != nil {
		return 0, err
	}
	weather, err := m.ref.WeatherValue(f.Weather)
	if err != nil {
		return 0, err
	}

	terms := []struct{ weight, signal float64 }{
		{w.Discount, DiscountSignal(f.Discount)},
		{w.Price, PriceSignal(f.Price)},
		{w.Temperature, TemperatureSignal(f.Temperature)},
		{w.LeadTime, LeadTimeSignal(f.LeadTime)},
		{w.WindowLength, WindowSignal(f.WindowLength)},
		{w.TimeOfDay, TimeOfDaySignal(f.TimeOfDay)},
		{w.Day, DaySignal(f.Day)},
		{w.Category, clamp01(category)},
		{w.Weather, clamp01(weather)},
	}
	if f.TimeToCollection != nil {
		terms = append(terms, struct{ weight, signal float64 }{w.TimeToCollection, LeadTimeSignal(*f.TimeToCollection)})
	}

	var sum, total float64
	for _, t := range terms {
		sum += t.weight * t.signal
		total += t.weight
	}
	if total == 0 {
		return 0, nil
	}
	return w.Multiplier * sum / total, nil
}

// Decide scores the features and compares against a threshold drawn once
// from 0.5 +/- 0.05. Nothing is drawn when scoring fails.
func (m *DecisionModel) Decide(rng *rand.Rand, f Features, w Weights) (Decision, error) {
	score, err := m.Score(f, w)
	if err != nil {
		return Decision{}, err
	}
	threshold := 0.5 + (rng.Float64()*0.1 - 0.05)
	return Decision{Score: score, Threshold: threshold, Accepted: score > threshold}, nil
}

func DiscountSignal(discount float64) float64 {
	return clamp01(discount)
}

// PriceSignal decays with price: cheaper bundles are more attractive.
func PriceSignal(price float64) float64 {
	return math.Exp(-0.1 * math.Max(0, price))
}

// TemperatureSignal peaks at 20C.
func TemperatureSignal(celsius float64) float64 {
	d := celsius - 20
	return math.Exp(-(d * d) / 200)
}

func LeadTimeSignal(h float64) float64 {
	switch {
	case h < 1:
		return 0.3
	case h <= 4:
		return 1.0
	case h > 6:
		return 0.4
	default:
		return 0.6
	}
}

func WindowSignal(h float64) float64 {
	return clamp01(h / 4)
}

func TimeOfDaySignal(hour float64) float64 {
	switch {
	case hour >= 11 && hour <= 14:
		return 1.0
	case hour >= 17 && hour <= 20:
		return 0.9
	case hour >= 8 && hour <= 10:
		return 0.6
	case hour > 21:
		return 0.2
	default:
		return 0.5
	}
}

func DaySignal(day time.Weekday) float64 {
	if day == time.Saturday || day == time.Sunday {
		return 1.0
	}
	return 0.7
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
