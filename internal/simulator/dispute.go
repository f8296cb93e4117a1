package simulator

import (
	"math/rand"

	"github.com/chrisdamba/surplussim/internal/models"
)

var DisputeScenarios = []models.DisputeScenario{
	{
		Key:             "missing_items",
		Complaint:       "I collected my bundle but there were missing items.",
		ApproveResponse: "We apologise for this. This is not acceptable. We will refund you for this bundle.",
		DenyResponse:    "Unfortunately, we will not be able to refund this bundle. We know that all items were placed inside this bundle.",
	},
	{
		Key:             "spoiled_item",
		Complaint:       "One of the items was already spoiled when I got home.",
		ApproveResponse: "This is unacceptable. We are deeply sorry for this. We will refund you for this bundle.",
		DenyResponse:    "Unfortunately, we will not be able to refund this bundle. All produce placed into this bundle was quality and date checked by a member of our team.",
	},
	{
		Key:             "vendor_closed_early",
		Complaint:       "I arrived during the pickup window but the shop was already closed.",
		ApproveResponse: "We apologise for this issue. We had to close early due to an issue. We will refund you for this bundle.",
		DenyResponse:    "Unfortunately, we will not be able to refund this bundle. We did not close early on this date.",
	},
	{
		Key:             "rude_staff_member",
		Complaint:       "I was spoken to rudely by a member of staff when collecting the bundle.",
		ApproveResponse: "We are incredibly sorry for your experience. This is not the standard we expect from our staff. We will refund you for this bundle.",
		DenyResponse:    "Unfortunately, we will not be able to refund this bundle. We have spoken to the staff member you interacted with and they claim to not have been rude.",
	},
	{
		Key:             "bundle_doesnt_match_desc",
		Complaint:       "The items in my bundle do not match the description.",
		ApproveResponse: "We apologise for this issue. We incorrectly labelled this bundle. We will refund you for this bundle.",
		DenyResponse:    "Unfortunately, we will not be able to refund this bundle. We are able to confirm that this bundle did match the description.",
	},
}

type DisputeSimulator struct {
	probability float64
	approval    float64
}

func NewDisputeSimulator(cfg *models.Config) *DisputeSimulator {
	return &DisputeSimulator{
		probability: cfg.DisputeProbability,
		approval:    cfg.DisputeApprovalProbability,
	}
}

// Simulate decides whether a reservation is disputed and, if so, how the
// vendor answers. It returns nil when no dispute is raised.
func (d *DisputeSimulator) Simulate(rng *rand.Rand, r models.Reservation, vendorID string) *models.Dispute {
	if !bernoulli(rng, d.probability) {
		return nil
	}

	scenario := DisputeScenarios[rng.Intn(len(DisputeScenarios))]
	dispute := &models.Dispute{
		ReservationID: r.ID,
		UserID:        r.UserID,
		VendorID:      vendorID,
		Scenario:      scenario.Key,
		Reason:        scenario.Complaint,
	}
	if bernoulli(rng, d.approval) {
		dispute.Status = models.DisputeStatusApproved
		dispute.VendorResponse = scenario.ApproveResponse
	} else {
		dispute.Status = models.DisputeStatusDenied
		dispute.VendorResponse = scenario.DenyResponse
	}
	dispute.ID = models.NewID(rng)
	return dispute
}
