package reference

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/surplussim/internal/models"
)

func sampleData(t *testing.T) *Data {
	t.Helper()
	vendors := []models.Vendor{{
		ID:         "v1",
		Name:       "Crumbs",
		Categories: []string{models.CategorySweetTreatsDesserts, models.CategoryBreadBakedGoods},
		Hours: map[time.Weekday]models.OpeningHours{
			time.Saturday: {Open: 8, Close: 18},
		},
	}}
	products := []models.Product{
		{ID: "p1", VendorID: "v1", Name: "Sourdough", Category: models.CategoryBreadBakedGoods, RetailPrice: 5},
		{ID: "p2", VendorID: "v1", Name: "Rye", Category: models.CategoryBreadBakedGoods, RetailPrice: 8},
		{ID: "p3", VendorID: "v1", Name: "Brownie", Category: models.CategorySweetTreatsDesserts, RetailPrice: 3},
	}
	weather := []models.WeatherObservation{
		{Date: time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC), Condition: "Sunny", AvgTempC: 20},
	}
	d, err := New(vendors, products, weather,
		map[string]float64{models.CategoryBreadBakedGoods: 0.8},
		map[string]float64{"sunny": 0.9})
	require.NoError(t, err)
	return d
}

func TestProductsByVendorAndCategory(t *testing.T) {
	d := sampleData(t)

	bread := d.Products("v1", models.CategoryBreadBakedGoods)
	require.Len(t, bread, 2)
	assert.Equal(t, "p1", bread[0].ID)
	assert.Equal(t, "p2", bread[1].ID)

	// callers may reorder their copy freely
	bread[0], bread[1] = bread[1], bread[0]
	assert.Equal(t, "p1", d.Products("v1", models.CategoryBreadBakedGoods)[0].ID)

	assert.Empty(t, d.Products("v1", models.CategoryDairyEggs))
	assert.Empty(t, d.Products("nope", models.CategoryBreadBakedGoods))
}

func TestCategoriesAreSorted(t *testing.T) {
	d := sampleData(t)

	categories, err := d.Categories("v1")
	require.NoError(t, err)
	assert.Equal(t, []string{models.CategoryBreadBakedGoods, models.CategorySweetTreatsDesserts}, categories)
	assert.Len(t, d.VendorCategories(), 2)
}

func TestLookupsReportMissingKeys(t *testing.T) {
	d := sampleData(t)

	tests := []struct {
		name  string
		table string
		err   func() error
	}{
		{"vendor", TableVendors, func() error { _, err := d.Vendor("v2"); return err }},
		{"product", TableProducts, func() error { _, err := d.Product("p9"); return err }},
		{"hours", TableOpeningHours, func() error { _, err := d.OpeningHours("v1", time.Monday); return err }},
		{"weather", TableWeather, func() error { _, err := d.Weather(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)); return err }},
		{"category", TableCategories, func() error { _, err := d.CategoryValue(models.CategoryDairyEggs); return err }},
		{"condition", TableConditions, func() error { _, err := d.WeatherValue("Heavy rain"); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.err()
			var missing *MissingKeyError
			require.True(t, errors.As(err, &missing), "got %v", err)
			assert.Equal(t, tt.table, missing.Table)
		})
	}
}

func TestLookupsHit(t *testing.T) {
	d := sampleData(t)

	h, err := d.OpeningHours("v1", time.Saturday)
	require.NoError(t, err)
	assert.Equal(t, "v1", h.VendorID)
	assert.Equal(t, time.Saturday, h.Day)
	assert.Equal(t, 10, h.Span())

	w, err := d.Weather(time.Date(2025, 11, 8, 15, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Sunny", w.Condition)

	v, err := d.WeatherValue("Sunny")
	require.NoError(t, err)
	assert.Equal(t, 0.9, v)

	v, err = d.CategoryValue("bread_baked_goods")
	require.NoError(t, err)
	assert.Equal(t, 0.8, v)
}

func TestNewRejectsBadProducts(t *testing.T) {
	vendors := []models.Vendor{{ID: "v1"}}

	_, err := New(vendors, []models.Product{{ID: "p1", VendorID: "v2", RetailPrice: 1}}, nil, nil, nil)
	var missing *MissingKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "v2", missing.Key)

	_, err = New(vendors, []models.Product{{ID: "p1", VendorID: "v1", RetailPrice: 0}}, nil, nil, nil)
	assert.Error(t, err)

	_, err = New([]models.Vendor{{ID: "v1"}, {ID: "v1"}}, nil, nil, nil, nil)
	assert.Error(t, err)
}
