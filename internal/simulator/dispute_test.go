package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/surplussim/internal/models"
)

func TestDisputeProbabilities(t *testing.T) {
	r := models.Reservation{ID: "r1", UserID: "u1", BundleID: "b1"}

	cfg := testConfig()
	cfg.DisputeProbability = 0
	assert.Nil(t, NewDisputeSimulator(cfg).Simulate(SubStream(1, r.ID), r, "v1"))

	cfg.DisputeProbability = 1
	cfg.DisputeApprovalProbability = 1
	d := NewDisputeSimulator(cfg).Simulate(SubStream(1, r.ID), r, "v1")
	require.NotNil(t, d)
	assert.Equal(t, models.DisputeStatusApproved, d.Status)
	assert.Equal(t, "r1", d.ReservationID)
	assert.Equal(t, "u1", d.UserID)
	assert.Equal(t, "v1", d.VendorID)
	assert.NotEmpty(t, d.ID)

	cfg.DisputeApprovalProbability = 0
	d = NewDisputeSimulator(cfg).Simulate(SubStream(1, r.ID), r, "v1")
	require.NotNil(t, d)
	assert.Equal(t, models.DisputeStatusDenied, d.Status)
}

func TestDisputeResponsesMatchScenario(t *testing.T) {
	cfg := testConfig()
	cfg.DisputeProbability = 1
	sim := NewDisputeSimulator(cfg)

	byKey := make(map[string]models.DisputeScenario)
	for _, s := range DisputeScenarios {
		byKey[s.Key] = s
	}
	require.Len(t, byKey, 5)

	seen := make(map[string]bool)
	for i := 0; i < 300; i++ {
		r := models.Reservation{ID: models.NewID(SubStream(int64(i), "id"))}
		d := sim.Simulate(SubStream(int64(i), r.ID), r, "v1")
		require.NotNil(t, d)

		s, ok := byKey[d.Scenario]
		require.True(t, ok, d.Scenario)
		seen[d.Scenario] = true
		assert.Equal(t, s.Complaint, d.Reason)
		if d.Status == models.DisputeStatusApproved {
			assert.Equal(t, s.ApproveResponse, d.VendorResponse)
		} else {
			assert.Equal(t, models.DisputeStatusDenied, d.Status)
			assert.Equal(t, s.DenyResponse, d.VendorResponse)
		}
	}
	assert.Len(t, seen, 5)
}
