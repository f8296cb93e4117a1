package factories

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/surplussim/internal/models"
)

func TestCreateVendor(t *testing.T) {
	vf := NewVendorFactory(rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		v := vf.CreateVendor()
		require.NotEmpty(t, v.ID)
		require.NotEmpty(t, v.Name)

		pattern, ok := VendorPatterns[v.Archetype]
		require.True(t, ok, "unknown archetype %q", v.Archetype)
		assert.GreaterOrEqual(t, len(v.Categories), 2)
		assert.Subset(t, pattern.Categories, v.Categories)

		require.Len(t, v.Hours, 7)
		for day, h := range v.Hours {
			assert.Equal(t, day, h.Day)
			assert.Equal(t, v.ID, h.VendorID)
			assert.GreaterOrEqual(t, h.Span(), 2, "%s %s", v.Archetype, day)
			assert.True(t, h.Open >= 0 && h.Close <= 24)
		}
	}
}

func TestVendorNamesAreUnique(t *testing.T) {
	vf := NewVendorFactory(rand.New(rand.NewSource(2)))
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		name := vf.CreateVendor().Name
		assert.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true
	}
}

func TestCreateProducts(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	vendor := NewVendorFactory(rng).CreateVendor()

	products := NewProductFactory(rng).CreateProducts(vendor, 20)
	require.Len(t, products, 20)

	stocked := make(map[string]bool)
	for _, p := range products {
		assert.Equal(t, vendor.ID, p.VendorID)
		assert.Contains(t, vendor.Categories, p.Category)
		assert.Greater(t, p.RetailPrice, 0.0)
		stocked[p.Category] = true
	}
	assert.Len(t, stocked, len(vendor.Categories))
}

func TestCreateUser(t *testing.T) {
	uf := NewUserFactory(rand.New(rand.NewSource(4)))
	username := regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+$`)
	email := regexp.MustCompile(`^\S+@[a-z]+\.com$`)

	for i := 0; i < 50; i++ {
		u := uf.CreateUser()
		assert.Regexp(t, username, u.Username)
		assert.Regexp(t, email, u.Email)
		assert.Zero(t, u.Streak)
		assert.Nil(t, u.LastCollectionTime)
	}
}

func TestWeatherRangeCoversEveryDay(t *testing.T) {
	wf := NewWeatherFactory(rand.New(rand.NewSource(5)))
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	observations := wf.CreateRange(start, end)
	require.Len(t, observations, 365)
	assert.Equal(t, start, observations[0].Date)
	assert.Equal(t, end, observations[364].Date)

	for _, w := range observations {
		_, known := models.DefaultWeatherValues[w.Condition]
		assert.True(t, known, "condition %q has no default normalization", w.Condition)
		assert.True(t, w.AvgTempC > -15 && w.AvgTempC < 35)
	}
}

func TestNewReferenceDataIsReproducible(t *testing.T) {
	cfg := &models.Config{
		StartDate:         time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC),
		Vendors:           5,
		ProductsPerVendor: 10,
		Users:             10,
		CategoryValues:    models.DefaultCategoryValues,
		WeatherValues:     models.DefaultWeatherValues,
	}

	a, usersA, err := NewReferenceData(cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, usersB, err := NewReferenceData(cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	assert.Equal(t, a.Vendors(), b.Vendors())
	assert.Equal(t, a.AllProducts(), b.AllProducts())
	assert.Equal(t, usersA, usersB)
	assert.Len(t, a.Vendors(), 5)
	assert.Len(t, usersA, 10)

	_, err = a.Weather(cfg.EndDate)
	assert.NoError(t, err)
}
