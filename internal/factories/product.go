package factories

import (
	"math"
	"math/rand"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/surplussim/internal/models"
)

type ProductFactory struct {
	fake faker.Faker
	rng  *rand.Rand
}

func NewProductFactory(rng *rand.Rand) *ProductFactory {
	return &ProductFactory{
		fake: faker.NewWithSeed(rand.NewSource(rng.Int63())),
		rng:  rng,
	}
}

func (pf *ProductFactory) CreateProduct(vendor models.Vendor, category string) models.Product {
	entry, ok := ProductCatalogue[category]
	name := "Surprise Item"
	price := PriceRange{Min: 1, Max: 5}
	if ok {
		name = pf.fake.RandomStringElement(entry.Names)
		price = entry.Price
	}

	return models.Product{
		ID:          models.NewID(pf.rng),
		VendorID:    vendor.ID,
		Name:        name,
		Category:    category,
		RetailPrice: math.Round(pf.fake.Float64(2, price.Min, price.Max)*100) / 100,
	}
}

// CreateProducts stocks every category the vendor sells at least once, then
// spreads the remainder uniformly over its categories.
func (pf *ProductFactory) CreateProducts(vendor models.Vendor, count int) []models.Product {
	if len(vendor.Categories) == 0 {
		return nil
	}
	products := make([]models.Product, 0, max(count, len(vendor.Categories)))
	for _, category := range vendor.Categories {
		products = append(products, pf.CreateProduct(vendor, category))
	}
	for len(products) < count {
		category := vendor.Categories[pf.rng.Intn(len(vendor.Categories))]
		products = append(products, pf.CreateProduct(vendor, category))
	}
	return products
}
