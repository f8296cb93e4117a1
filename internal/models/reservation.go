package models

import "time"

type Reservation struct {
	ID               string     `json:"reservation_id"`
	BundleID         string     `json:"bundle_id"`
	UserID           string     `json:"user_id"`
	AmountDue        float64    `json:"amount_due"`
	ReservationTime  time.Time  `json:"reservation_time"`
	CollectionStatus string     `json:"collection_status"` // COLLECTED or NO_SHOW
	CollectionTime   *time.Time `json:"collection_time"`   // set iff COLLECTED
}

func (r Reservation) IsCollected() bool {
	return r.CollectionStatus == CollectionStatusCollected
}
