package factories

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/reference"
)

// NewReferenceData builds a complete synthetic reference set from the config:
// vendors with products and opening hours, weather for every simulated date
// and the customer base. Everything is drawn from rng in a fixed order.
func NewReferenceData(cfg *models.Config, rng *rand.Rand) (*reference.Data, []models.User, error) {
	vendorFactory := NewVendorFactory(rng)
	productFactory := NewProductFactory(rng)
	weatherFactory := NewWeatherFactory(rng)
	userFactory := NewUserFactory(rng)

	vendors := make([]models.Vendor, cfg.Vendors)
	var products []models.Product
	for i := range vendors {
		vendors[i] = vendorFactory.CreateVendor()
		products = append(products, productFactory.CreateProducts(vendors[i], cfg.ProductsPerVendor)...)
	}

	weather := weatherFactory.CreateRange(cfg.StartDate, cfg.EndDate)

	users := make([]models.User, cfg.Users)
	for i := range users {
		users[i] = userFactory.CreateUser()
	}

	data, err := reference.New(vendors, products, weather, cfg.CategoryValues, cfg.WeatherValues)
	if err != nil {
		return nil, nil, errors.Wrap(err, "build reference data")
	}
	return data, users, nil
}
