package simulator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/reference"
)

var (
	novemberStart = time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	novemberEnd   = time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)
)

func everyDay(opening, closing int) map[time.Weekday]models.OpeningHours {
	hours := make(map[time.Weekday]models.OpeningHours, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		hours[d] = models.OpeningHours{Open: opening, Close: closing}
	}
	return hours
}

func sunnyDays(from, to time.Time) []models.WeatherObservation {
	var out []models.WeatherObservation
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, models.WeatherObservation{Date: d, Condition: "Sunny", AvgTempC: 20})
	}
	return out
}

// testVendors is one bakery open 10:00-22:00 every day selling a $5 and an
// $8 loaf plus a $3 brownie.
func testVendors() ([]models.Vendor, []models.Product) {
	vendors := []models.Vendor{{
		ID:         "v1",
		Name:       "Crumbs",
		Archetype:  "bakery",
		Categories: []string{models.CategoryBreadBakedGoods, models.CategorySweetTreatsDesserts},
		Hours:      everyDay(10, 22),
	}}
	products := []models.Product{
		{ID: "p5", VendorID: "v1", Name: "Sourdough", Category: models.CategoryBreadBakedGoods, RetailPrice: 5},
		{ID: "p8", VendorID: "v1", Name: "Rye", Category: models.CategoryBreadBakedGoods, RetailPrice: 8},
		{ID: "p3", VendorID: "v1", Name: "Brownie", Category: models.CategorySweetTreatsDesserts, RetailPrice: 3},
	}
	return vendors, products
}

func testReference(t *testing.T) *reference.Data {
	t.Helper()
	vendors, products := testVendors()
	ref, err := reference.New(vendors, products, sunnyDays(novemberStart, novemberEnd),
		models.DefaultCategoryValues, models.DefaultWeatherValues)
	require.NoError(t, err)
	return ref
}

func testConfig() *models.Config {
	return &models.Config{
		Seed:                       12,
		StartDate:                  novemberStart,
		EndDate:                    novemberEnd,
		ReferenceDate:              time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		Bundles:                    60,
		Users:                      10,
		Vendors:                    1,
		ProductsPerVendor:          3,
		Workers:                    4,
		BundleBudget:               25,
		MaxProductQuantity:         3,
		EarlyStopProbability:       0.3,
		MinDiscount:                0.25,
		MaxDiscount:                0.75,
		DisputeProbability:         0.375,
		DisputeApprovalProbability: 0.15,
		CategoryValues:             models.DefaultCategoryValues,
		WeatherValues:              models.DefaultWeatherValues,
		OutputDestination:          models.OutputConsole,
		OutputFormat:               models.FormatJSON,
	}
}

func testUsers(n int) []models.User {
	users := make([]models.User, n)
	for i := range users {
		users[i] = models.User{
			ID:       fmt.Sprintf("u%d", i),
			Username: fmt.Sprintf("HappyBadger%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
		}
	}
	return users
}

// testBundle is posted at 09:00 on a Saturday with an 11:00-13:00 window.
func testBundle() models.Bundle {
	day := time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)
	return models.Bundle{
		ID:              "b1",
		VendorID:        "v1",
		Category:        models.CategoryBreadBakedGoods,
		RetailPrice:     16,
		Price:           8,
		PostingTime:     day.Add(9 * time.Hour),
		CollectionStart: day.Add(11 * time.Hour),
		CollectionEnd:   day.Add(13 * time.Hour),
	}
}
