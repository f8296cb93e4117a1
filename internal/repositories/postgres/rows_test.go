package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/surplussim/internal/models"
)

func TestVendorRows(t *testing.T) {
	v := models.Vendor{
		ID:         "v1",
		Name:       "Crumbs",
		Archetype:  "bakery",
		Postcode:   "E1 6AN",
		Location:   models.Location{Lat: 51.5203, Lon: -0.0723},
		Categories: []string{models.CategoryBreadBakedGoods},
		Hours: map[time.Weekday]models.OpeningHours{
			time.Saturday: {Open: 9, Close: 17},
			time.Monday:   {Open: 7, Close: 19},
			time.Sunday:   {Open: 10, Close: 16},
		},
	}

	rows := VendorRows([]models.Vendor{v})
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(vendorColumns))
	assert.Equal(t, "POINT(-0.072300 51.520300)", rows[0][4])

	var loc models.Location
	require.NoError(t, loc.Scan(rows[0][4]))
	assert.InDelta(t, v.Location.Lat, loc.Lat, 1e-6)
	assert.InDelta(t, v.Location.Lon, loc.Lon, 1e-6)

	hours := OpeningHoursRows([]models.Vendor{v})
	require.Len(t, hours, 3)
	assert.Equal(t, []any{"v1", int16(0), int16(10), int16(16)}, hours[0])
	assert.Equal(t, []any{"v1", int16(1), int16(7), int16(19)}, hours[1])
	assert.Equal(t, []any{"v1", int16(6), int16(9), int16(17)}, hours[2])
	for _, row := range hours {
		assert.Len(t, row, len(openingHoursColumns))
	}
}

func TestUserRows(t *testing.T) {
	last := time.Date(2025, 11, 20, 18, 0, 0, 0, time.UTC)
	rows := UserRows([]models.User{
		{ID: "u1", Username: "HappyBadger", Email: "a@example.com", Streak: 3, LastCollectionTime: &last},
		{ID: "u2", Username: "QuietOtter", Email: "b@example.com"},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, int32(3), rows[0][3])
	assert.Equal(t, &last, rows[0][4])
	assert.Equal(t, int32(0), rows[1][3])
	assert.Nil(t, rows[1][4])
	assert.Len(t, rows[0], len(userColumns))
}

func TestBundleAndReservationRows(t *testing.T) {
	posted := time.Date(2025, 11, 8, 9, 0, 0, 0, time.UTC)
	b := models.Bundle{
		ID:              "b1",
		VendorID:        "v1",
		Category:        models.CategoryBreadBakedGoods,
		RetailPrice:     16,
		Price:           8,
		PostingTime:     posted,
		CollectionStart: posted.Add(2 * time.Hour),
		CollectionEnd:   posted.Add(4 * time.Hour),
	}
	rows := BundleRows([]models.Bundle{b})
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], len(bundleColumns))
	assert.Equal(t, posted, rows[0][7])

	lines := BundleProductRows([]models.BundleProduct{{BundleID: "b1", ProductID: "p5", Quantity: 2}})
	require.Len(t, lines, 1)
	assert.Len(t, lines[0], len(bundleProductColumns))

	res := ReservationRows([]models.Reservation{{
		ID:               "r1",
		BundleID:         "b1",
		UserID:           "u1",
		AmountDue:        8,
		ReservationTime:  posted.Add(time.Hour),
		CollectionStatus: models.CollectionStatusNoShow,
	}})
	require.Len(t, res, 1)
	assert.Len(t, res[0], len(reservationColumns))
	assert.Nil(t, res[0][6])
}

func TestDisputeAndDatasetRows(t *testing.T) {
	disputes := DisputeRows([]models.Dispute{{ID: "d1", ReservationID: "r1", UserID: "u1", VendorID: "v1"}})
	require.Len(t, disputes, 1)
	assert.Len(t, disputes[0], len(disputeColumns))

	dataset := DatasetRows([]models.FeatureRow{{BundleID: "b1", IsReserved: true}})
	require.Len(t, dataset, 1)
	assert.Len(t, dataset[0], len(datasetColumns))

	assert.Empty(t, DatasetRows(nil))
}
