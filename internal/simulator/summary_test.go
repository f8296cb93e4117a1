package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chrisdamba/surplussim/internal/models"
)

func TestSummarize(t *testing.T) {
	at := time.Date(2026, 1, 13, 12, 0, 0, 0, time.UTC)
	result := &models.SimulationResult{
		Bundles: make([]models.Bundle, 4),
		Reservations: []models.Reservation{
			{ID: "r1", CollectionStatus: models.CollectionStatusCollected, CollectionTime: &at},
			{ID: "r2", CollectionStatus: models.CollectionStatusNoShow},
		},
		Disputes: []models.Dispute{
			{ID: "d1", Status: models.DisputeStatusApproved},
		},
		Users: []models.User{
			{ID: "u1", Streak: 3},
			{ID: "u2", Streak: 1},
			{ID: "u3"},
		},
		ReservationScores: []float64{0.2, 0.4, 0.6, 0.8},
	}

	s := Summarize(result)
	assert.Equal(t, 4, s.Bundles)
	assert.Equal(t, 2, s.Reservations)
	assert.Equal(t, 1, s.Collected)
	assert.Equal(t, 1, s.NoShows)
	assert.Equal(t, 0.5, s.ReservationRate)
	assert.Equal(t, 0.5, s.CollectionRate)
	assert.Equal(t, 0.5, s.DisputeRate)
	assert.Equal(t, 1.0, s.ApprovalRate)
	assert.InDelta(t, 0.5, s.MeanScore, 1e-9)
	assert.InDelta(t, 0.5, s.MedianScore, 1e-9)
	assert.Equal(t, 2, s.ActiveStreaks)
	assert.Equal(t, 3, s.MaxStreak)
	assert.InDelta(t, 2.0, s.MeanStreak, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(&models.SimulationResult{})
	assert.Zero(t, s.ReservationRate)
	assert.Zero(t, s.MeanScore)
	assert.Zero(t, s.MaxStreak)
}
