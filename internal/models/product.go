package models

type Product struct {
	ID          string  `json:"product_id"`
	VendorID    string  `json:"vendor_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	RetailPrice float64 `json:"retail_price"` // unit price, always > 0
}
