package models

import "time"

type Bundle struct {
	ID              string    `json:"bundle_id"`
	VendorID        string    `json:"vendor_id"`
	Category        string    `json:"category"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	RetailPrice     float64   `json:"retail_price"`
	Price           float64   `json:"price"`
	PostingTime     time.Time `json:"posting_time"`
	CollectionStart time.Time `json:"collection_start"`
	CollectionEnd   time.Time `json:"collection_end"`
}

// Discount is the fraction of the retail price taken off. A bundle with no
// retail value has nothing to discount and reports emptyDiscount instead.
func (b Bundle) Discount(emptyDiscount float64) float64 {
	if b.RetailPrice <= 0 {
		return emptyDiscount
	}
	return (b.RetailPrice - b.Price) / b.RetailPrice
}

// LeadTime is the time between posting and the start of the collection window.
func (b Bundle) LeadTime() time.Duration {
	return b.CollectionStart.Sub(b.PostingTime)
}

func (b Bundle) WindowLength() time.Duration {
	return b.CollectionEnd.Sub(b.CollectionStart)
}

// CollectionMidpoint returns the middle of the collection window.
func (b Bundle) CollectionMidpoint() time.Time {
	return b.CollectionStart.Add(b.WindowLength() / 2)
}

type BundleProduct struct {
	BundleID  string `json:"bundle_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// LineItem is a product picked for a bundle before the bundle has an id.
type LineItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
