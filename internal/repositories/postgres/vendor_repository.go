package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chrisdamba/surplussim/internal/models"
)

var (
	vendorColumns       = []string{"id", "name", "archetype", "postcode", "location", "categories"}
	openingHoursColumns = []string{"vendor_id", "day", "opening_hour", "closing_hour"}
)

type VendorRepository struct {
	db DB
}

func NewVendorRepository(db DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func VendorRows(vendors []models.Vendor) [][]any {
	rows := make([][]any, 0, len(vendors))
	for _, v := range vendors {
		rows = append(rows, []any{v.ID, v.Name, v.Archetype, v.Postcode, v.Location.String(), v.Categories})
	}
	return rows
}

// OpeningHoursRows flattens vendor hours, Sunday first, so the row order is
// stable.
func OpeningHoursRows(vendors []models.Vendor) [][]any {
	var rows [][]any
	for _, v := range vendors {
		days := make([]time.Weekday, 0, len(v.Hours))
		for d := range v.Hours {
			days = append(days, d)
		}
		sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
		for _, d := range days {
			h := v.Hours[d]
			rows = append(rows, []any{v.ID, int16(d), int16(h.Open), int16(h.Close)})
		}
	}
	return rows
}

func (r *VendorRepository) BulkCreate(ctx context.Context, vendors []models.Vendor) error {
	if err := copyRows(ctx, r.db, "vendors", vendorColumns, VendorRows(vendors)); err != nil {
		return err
	}
	return copyRows(ctx, r.db, "opening_hours", openingHoursColumns, OpeningHoursRows(vendors))
}

func (r *VendorRepository) GetAll(ctx context.Context) ([]models.Vendor, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, name, archetype, postcode, location, categories
        FROM vendors
        ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vendors []models.Vendor
	index := make(map[string]int)
	for rows.Next() {
		var v models.Vendor
		if err := rows.Scan(&v.ID, &v.Name, &v.Archetype, &v.Postcode, &v.Location, &v.Categories); err != nil {
			return nil, err
		}
		v.Hours = make(map[time.Weekday]models.OpeningHours)
		index[v.ID] = len(vendors)
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	hours, err := r.db.Query(ctx, "SELECT vendor_id, day, opening_hour, closing_hour FROM opening_hours")
	if err != nil {
		return nil, err
	}
	defer hours.Close()

	for hours.Next() {
		var h models.OpeningHours
		var day, opening, closing int16
		if err := hours.Scan(&h.VendorID, &day, &opening, &closing); err != nil {
			return nil, err
		}
		i, ok := index[h.VendorID]
		if !ok {
			return nil, fmt.Errorf("opening hours for unknown vendor %s", h.VendorID)
		}
		h.Day, h.Open, h.Close = time.Weekday(day), int(opening), int(closing)
		vendors[i].Hours[h.Day] = h
	}
	return vendors, hours.Err()
}

func (r *VendorRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "vendors")
}

func (r *VendorRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.db, "vendors")
}
