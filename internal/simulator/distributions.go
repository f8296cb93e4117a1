package simulator

import (
	"math"
	"math/rand"
	"time"
)

// uniformInt draws from [lo, hi] inclusive.
func uniformInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// uniformTime draws a whole-second instant from [lo, hi].
func uniformTime(rng *rand.Rand, lo, hi time.Time) time.Time {
	if !hi.After(lo) {
		return lo
	}
	offset := time.Duration(rng.Float64() * float64(hi.Sub(lo)))
	t := lo.Add(offset).Truncate(time.Second)
	if t.Before(lo) {
		return lo
	}
	return t
}

func bernoulli(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}

// pickDate draws a calendar day uniformly from [start, end].
func pickDate(rng *rand.Rand, start, end time.Time) time.Time {
	first := startOfDay(start)
	days := int(math.Round(startOfDay(end).Sub(first).Hours() / 24))
	return first.AddDate(0, 0, uniformInt(rng, 0, days))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
