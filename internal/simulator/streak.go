package simulator

import (
	"sort"
	"time"

	"github.com/chrisdamba/surplussim/internal/models"
)

// StreakCalculator derives loyalty streaks from collection history. A streak
// counts consecutive Monday-Sunday weeks with at least one collection and is
// lost once a whole week passes without one.
type StreakCalculator struct {
	referenceWeek int64
	collections   map[string][]time.Time
}

func NewStreakCalculator(referenceDate time.Time, reservations []models.Reservation) *StreakCalculator {
	c := &StreakCalculator{
		referenceWeek: weekIndex(referenceDate),
		collections:   make(map[string][]time.Time),
	}
	for _, r := range reservations {
		if r.IsCollected() && r.CollectionTime != nil {
			c.collections[r.UserID] = append(c.collections[r.UserID], *r.CollectionTime)
		}
	}
	return c
}

func (c *StreakCalculator) Streak(userID string) (int, *time.Time) {
	times := c.collections[userID]
	if len(times) == 0 {
		return 0, nil
	}

	last := times[0]
	seen := make(map[int64]bool)
	weeks := make([]int64, 0, len(times))
	for _, t := range times {
		if t.After(last) {
			last = t
		}
		w := weekIndex(t)
		if !seen[w] {
			seen[w] = true
			weeks = append(weeks, w)
		}
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i] > weeks[j] })

	if c.referenceWeek-weeks[0] > 1 {
		return 0, &last
	}
	streak := 1
	for i := 1; i < len(weeks); i++ {
		if weeks[i-1]-weeks[i] != 1 {
			break
		}
		streak++
	}
	return streak, &last
}

// Apply returns copies of users with streak and last collection filled in.
func (c *StreakCalculator) Apply(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		u.Streak, u.LastCollectionTime = c.Streak(u.ID)
		out[i] = u
	}
	return out
}

// weekIndex numbers Monday-based weeks in UTC. 1970-01-01 was a Thursday so
// shifting by three days lines week boundaries up with Mondays.
func weekIndex(t time.Time) int64 {
	days := floorDiv(t.UTC().Unix(), 86400)
	return floorDiv(days+3, 7)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
