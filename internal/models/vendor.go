package models

import "time"

type Vendor struct {
	ID         string                        `json:"vendor_id"`
	Name       string                        `json:"name"`
	Archetype  string                        `json:"archetype"`
	Postcode   string                        `json:"postcode"`
	Location   Location                      `json:"location"`
	Categories []string                      `json:"categories"`
	Hours      map[time.Weekday]OpeningHours `json:"opening_hours"`
}

// OpeningHours is hour granular: a vendor open 10:00-22:00 has Open 10, Close 22.
type OpeningHours struct {
	VendorID string       `json:"vendor_id"`
	Day      time.Weekday `json:"day"`
	Open     int          `json:"opening_hour"`
	Close    int          `json:"closing_hour"`
}

// Span returns the number of whole hours the vendor is open.
func (h OpeningHours) Span() int {
	return h.Close - h.Open
}

// VendorCategory links a vendor to a category it sells.
type VendorCategory struct {
	VendorID string `json:"vendor_id"`
	Category string `json:"category"`
}
