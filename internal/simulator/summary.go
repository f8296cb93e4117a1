package simulator

import (
	"log"

	"github.com/montanaflynn/stats"

	"github.com/chrisdamba/surplussim/internal/models"
)

type Summary struct {
	Bundles      int
	Reservations int
	Collected    int
	NoShows      int
	Disputes     int
	Approved     int
	Skipped      int

	ReservationRate float64
	CollectionRate  float64
	DisputeRate     float64
	ApprovalRate    float64

	MeanScore   float64
	MedianScore float64
	P90Score    float64

	ActiveStreaks int
	MeanStreak    float64
	MaxStreak     int
}

func Summarize(r *models.SimulationResult) Summary {
	s := Summary{
		Bundles:      len(r.Bundles),
		Reservations: len(r.Reservations),
		Disputes:     len(r.Disputes),
		Skipped:      len(r.Skipped),
	}
	for _, res := range r.Reservations {
		if res.IsCollected() {
			s.Collected++
		} else {
			s.NoShows++
		}
	}
	for _, d := range r.Disputes {
		if d.Status == models.DisputeStatusApproved {
			s.Approved++
		}
	}

	s.ReservationRate = ratio(s.Reservations, s.Bundles)
	s.CollectionRate = ratio(s.Collected, s.Reservations)
	s.DisputeRate = ratio(s.Disputes, s.Reservations)
	s.ApprovalRate = ratio(s.Approved, s.Disputes)

	scores := stats.Float64Data(r.ReservationScores)
	s.MeanScore = orZero(scores.Mean())
	s.MedianScore = orZero(scores.Median())
	s.P90Score = orZero(scores.Percentile(90))

	var streaks stats.Float64Data
	for _, u := range r.Users {
		if u.Streak > 0 {
			streaks = append(streaks, float64(u.Streak))
		}
	}
	s.ActiveStreaks = len(streaks)
	s.MeanStreak = orZero(streaks.Mean())
	s.MaxStreak = int(orZero(streaks.Max()))

	return s
}

// orZero drops the NaN stats returns alongside an empty input error.
func orZero(v float64, err error) float64 {
	if err != nil {
		return 0
	}
	return v
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func (s Summary) Log(runID string) {
	log.Printf("[%s] Bundles: %d (skipped %d), reservations: %d (%.1f%%), collected: %d (%.1f%%), no-shows: %d",
		runID, s.Bundles, s.Skipped, s.Reservations, 100*s.ReservationRate, s.Collected, 100*s.CollectionRate, s.NoShows)
	log.Printf("[%s] Reservation score mean: %.3f, median: %.3f, p90: %.3f",
		runID, s.MeanScore, s.MedianScore, s.P90Score)
	log.Printf("[%s] Disputes: %d (%.1f%% of reservations), approved: %d (%.1f%%)",
		runID, s.Disputes, 100*s.DisputeRate, s.Approved, 100*s.ApprovalRate)
	log.Printf("[%s] Users on a streak: %d, mean streak: %.2f weeks, longest: %d",
		runID, s.ActiveStreaks, s.MeanStreak, s.MaxStreak)
}
