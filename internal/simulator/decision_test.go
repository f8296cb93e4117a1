package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/reference"
)

func TestReservationScoreScenario(t *testing.T) {
	ref := testReference(t)
	sim := NewReservationSimulator(ref, NewLedger(1), 0)

	f, _, err := sim.Features(testBundle())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f.Discount, 1e-9)
	assert.InDelta(t, 2.0, f.LeadTime, 1e-9)
	assert.InDelta(t, 2.0, f.WindowLength, 1e-9)
	assert.InDelta(t, 12.0, f.TimeOfDay, 1e-9)
	assert.Equal(t, time.Saturday, f.Day)
	assert.Equal(t, "Sunny", f.Weather)

	model := NewDecisionModel(ref)
	score, err := model.Score(f, ReservationWeights)
	require.NoError(t, err)
	// .2*.5 + .15*e^-.8 + .05 + .1 + .1*.5 + .1 + .05 + .15*.8 + .1*.9
	assert.InDelta(t, 0.7273994, score, 1e-6)

	threshold := 0.5 + (rand.New(rand.NewSource(7)).Float64()*0.1 - 0.05)
	d, err := model.Decide(rand.New(rand.NewSource(7)), f, ReservationWeights)
	require.NoError(t, err)
	assert.InDelta(t, score, d.Score, 1e-12)
	assert.Equal(t, threshold, d.Threshold)
	assert.Equal(t, score > threshold, d.Accepted)
	assert.True(t, d.Accepted)
}

func TestDecideThresholdBand(t *testing.T) {
	model := NewDecisionModel(testReference(t))
	f := Features{Category: models.CategoryBreadBakedGoods, Weather: "Sunny"}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		d, err := model.Decide(rng, f, ReservationWeights)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, d.Threshold, 0.45)
		assert.Less(t, d.Threshold, 0.55)
	}
}

func TestScoreMissingNormalization(t *testing.T) {
	model := NewDecisionModel(testReference(t))

	tests := []struct {
		name     string
		features Features
		table    string
	}{
		{"unknown category", Features{Category: "GADGETS", Weather: "Sunny"}, reference.TableCategories},
		{"unknown weather", Features{Category: models.CategoryBreadBakedGoods, Weather: "Sandstorm"}, reference.TableConditions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(3))
			_, err := model.Decide(rng, tt.features, ReservationWeights)
			var missing *reference.MissingKeyError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tt.table, missing.Table)

			// a failed score leaves the stream untouched
			assert.Equal(t, rand.New(rand.NewSource(3)).Float64(), rng.Float64())
		})
	}
}

func TestTimeToCollectionOnlyCountsWhenKnown(t *testing.T) {
	model := NewDecisionModel(testReference(t))
	f := Features{Category: models.CategoryBreadBakedGoods, Weather: "Sunny", LeadTime: 2, WindowLength: 2, TimeOfDay: 12}

	without, err := model.Score(f, CollectionWeights)
	require.NoError(t, err)

	ttc := 0.5
	f.TimeToCollection = &ttc
	with, err := model.Score(f, CollectionWeights)
	require.NoError(t, err)

	assert.NotEqual(t, without, with)
	assert.LessOrEqual(t, with, CollectionWeights.Multiplier)
}

func TestSignalsAreBounded(t *testing.T) {
	signals := map[string]func(float64) float64{
		"discount":    DiscountSignal,
		"price":       PriceSignal,
		"temperature": TemperatureSignal,
		"lead time":   LeadTimeSignal,
		"window":      WindowSignal,
		"time of day": TimeOfDaySignal,
	}
	inputs := []float64{-50, -1, 0, 0.5, 0.99, 1, 2, 4, 5, 6, 6.5, 10, 12, 14, 18, 20, 21, 22, 23.99, 40, 100, 1e6}

	for name, fn := range signals {
		t.Run(name, func(t *testing.T) {
			for _, x := range inputs {
				v := fn(x)
				assert.GreaterOrEqual(t, v, 0.0, "input %v", x)
				assert.LessOrEqual(t, v, 1.0, "input %v", x)
			}
		})
	}

	for d := time.Sunday; d <= time.Saturday; d++ {
		v := DaySignal(d)
		assert.True(t, v >= 0 && v <= 1)
	}
}

func TestSignalShapes(t *testing.T) {
	assert.Equal(t, 1.0, PriceSignal(0))
	assert.Greater(t, PriceSignal(5), PriceSignal(10))
	assert.Equal(t, 1.0, TemperatureSignal(20))
	assert.Greater(t, TemperatureSignal(15), TemperatureSignal(5))

	assert.Equal(t, 0.3, LeadTimeSignal(0.5))
	assert.Equal(t, 1.0, LeadTimeSignal(1))
	assert.Equal(t, 1.0, LeadTimeSignal(4))
	assert.Equal(t, 0.6, LeadTimeSignal(5))
	assert.Equal(t, 0.6, LeadTimeSignal(6))
	assert.Equal(t, 0.4, LeadTimeSignal(7))

	assert.Equal(t, 0.5, WindowSignal(2))
	assert.Equal(t, 1.0, WindowSignal(6))

	assert.Equal(t, 1.0, TimeOfDaySignal(12))
	assert.Equal(t, 0.9, TimeOfDaySignal(18))
	assert.Equal(t, 0.6, TimeOfDaySignal(9))
	assert.Equal(t, 0.2, TimeOfDaySignal(22))
	assert.Equal(t, 0.5, TimeOfDaySignal(15.5))

	assert.Equal(t, 1.0, DaySignal(time.Sunday))
	assert.Equal(t, 0.7, DaySignal(time.Wednesday))
}
