package models

type Dispute struct {
	ID             string `json:"dispute_id"`
	ReservationID  string `json:"reservation_id"`
	UserID         string `json:"user_id"`
	VendorID       string `json:"vendor_id"`
	Scenario       string `json:"scenario"`
	Reason         string `json:"reason"`
	VendorResponse string `json:"vendor_response"`
	Status         string `json:"status"` // APPROVED or DENIED
}

// DisputeScenario is one canned complaint with both possible vendor replies.
type DisputeScenario struct {
	Key             string
	Complaint       string
	ApproveResponse string
	DenyResponse    string
}
