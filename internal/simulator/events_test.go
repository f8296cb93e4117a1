package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/surplussim/internal/models"
)

func TestLifecycleEventsAreOrdered(t *testing.T) {
	cfg := testConfig()
	cfg.Bundles = 100
	result := generate(t, cfg, testReference(t))

	require.NotEmpty(t, result.Events)
	for i := 1; i < len(result.Events); i++ {
		assert.False(t, result.Events[i].Time.Before(result.Events[i-1].Time), "event %d out of order", i)
	}

	counts := make(map[string]int)
	for _, e := range result.Events {
		counts[e.Type]++
	}
	collected := 0
	for _, r := range result.Reservations {
		if r.IsCollected() {
			collected++
		}
	}
	assert.Equal(t, len(result.Bundles), counts[models.EventBundlePosted])
	assert.Equal(t, len(result.Reservations), counts[models.EventBundleReserved])
	assert.Equal(t, len(result.Bundles)-len(result.Reservations), counts[models.EventBundleExpired])
	assert.Equal(t, collected, counts[models.EventBundleCollected])
	assert.Equal(t, len(result.Reservations)-collected, counts[models.EventBundleNoShow])
	assert.Equal(t, len(result.Disputes), counts[models.EventDisputeRaised])
}

func TestBundleEventsFollowLifecycle(t *testing.T) {
	result := generate(t, testConfig(), testReference(t))

	posted := make(map[string]int)
	for i, e := range result.Events {
		switch e.Type {
		case models.EventBundlePosted:
			posted[e.EntityID] = i
		case models.EventBundleReserved:
			r := e.Data.(models.Reservation)
			at, ok := posted[r.BundleID]
			require.True(t, ok, "reserved before posted")
			assert.Less(t, at, i)
		}
	}
}
