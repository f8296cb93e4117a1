package models

import "time"

// SimulationResult holds everything one run produced, in generation order.
type SimulationResult struct {
	RunID          string
	Seed           int64
	ReferenceDate  time.Time
	Vendors        []Vendor
	Products       []Product
	Bundles        []Bundle
	BundleProducts []BundleProduct
	Reservations   []Reservation
	Users          []User
	Disputes       []Dispute
	Dataset        []FeatureRow
	Events         []Event
	Skipped        []SkippedRecord

	// reservation score of every bundle in Bundles, same order
	ReservationScores []float64
}

// SkippedRecord reports an entity dropped because of a lookup or config failure.
type SkippedRecord struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}
