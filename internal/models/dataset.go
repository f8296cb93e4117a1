package models

// FeatureRow is one labelled training example. Every simulated bundle yields
// exactly one row whether or not it was reserved.
type FeatureRow struct {
	BundleID     string  `json:"bundle_id"`
	Discount     float64 `json:"discount"`
	Price        float64 `json:"price"`
	Weather      string  `json:"weather"`
	Category     string  `json:"category"`
	Temperature  float64 `json:"temperature"`
	Day          string  `json:"day"`
	LeadTime     float64 `json:"lead_time"`
	WindowLength float64 `json:"window_length"`
	TimeOfDay    float64 `json:"time_of_day"`
	IsReserved   bool    `json:"is_reserved"`
	IsCollected  bool    `json:"is_collected"`
}
