package reference

import (
	"fmt"
	"time"
)

const (
	TableVendors      = "vendors"
	TableProducts     = "products"
	TableOpeningHours = "opening_hours"
	TableWeather      = "weather"
	TableCategories   = "category_values"
	TableConditions   = "weather_values"
)

// MissingKeyError is returned when a lookup table has no row for a key.
type MissingKeyError struct {
	Table string
	Key   string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("%s: no entry for %q", e.Table, e.Key)
}

// ScheduleError reports opening hours that cannot hold a posting plus a
// collection window: the vendor must be open for at least two hours.
type ScheduleError struct {
	VendorID string
	Weekday  time.Weekday
	Open     int
	Close    int
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("vendor %s on %s: opening hours %02d:00-%02d:00 leave no room for a collection window",
		e.VendorID, e.Weekday, e.Open, e.Close)
}
