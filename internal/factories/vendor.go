package factories

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"github.com/chrisdamba/surplussim/internal/models"
)

const (
	// vendors are scattered around Exeter city centre
	cityLat     = 50.7184
	cityLon     = -3.5339
	urbanRadius = 5.0 // km
)

type VendorFactory struct {
	fake  faker.Faker
	rng   *rand.Rand
	names map[string]int
}

func NewVendorFactory(rng *rand.Rand) *VendorFactory {
	return &VendorFactory{
		fake:  faker.NewWithSeed(rand.NewSource(rng.Int63())),
		rng:   rng,
		names: make(map[string]int),
	}
}

func (vf *VendorFactory) CreateVendor() models.Vendor {
	latRange := urbanRadius / 111.0
	lonRange := latRange / math.Cos(cityLat*math.Pi/180.0)

	latOffset := (vf.rng.Float64()*2 - 1) * latRange
	lonOffset := (vf.rng.Float64()*2 - 1) * lonRange

	pattern := VendorPatterns[vf.pickArchetype()]
	id := models.NewID(vf.rng)

	return models.Vendor{
		ID:        id,
		Name:      vf.createUniqueName(vf.fake.Company().Name()),
		Archetype: pattern.Archetype,
		Postcode:  vf.fake.Address().PostCode(),
		Location: models.Location{
			Lat: cityLat + latOffset,
			Lon: cityLon + lonOffset,
		},
		Categories: vf.pickCategories(pattern),
		Hours:      vf.createOpeningHours(id, pattern),
	}
}

func (vf *VendorFactory) pickArchetype() string {
	weights := make([]float64, len(archetypeOrder))
	total := 0.0
	for i, a := range archetypeOrder {
		weights[i] = VendorPatterns[a].Weight
		total += weights[i]
	}
	return selectWeighted(vf.rng, archetypeOrder, weights, total)
}

// pickCategories keeps between two and all of the pattern's categories.
func (vf *VendorFactory) pickCategories(pattern VendorPattern) []string {
	candidates := append([]string(nil), pattern.Categories...)
	vf.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	n := 2 + vf.rng.Intn(len(candidates)-1)
	return candidates[:n]
}

func (vf *VendorFactory) createOpeningHours(vendorID string, pattern VendorPattern) map[time.Weekday]models.OpeningHours {
	opening := vf.fake.IntBetween(pattern.Open.Min, pattern.Open.Max)
	closing := vf.fake.IntBetween(pattern.Close.Min, pattern.Close.Max)

	hours := make(map[time.Weekday]models.OpeningHours, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		dayClose := closing - pattern.ShortDays[day]
		if dayClose-opening < 2 {
			dayClose = opening + 2
		}
		hours[day] = models.OpeningHours{
			VendorID: vendorID,
			Day:      day,
			Open:     opening,
			Close:    dayClose,
		}
	}
	return hours
}

func (vf *VendorFactory) createUniqueName(name string) string {
	count := vf.names[name]
	vf.names[name] = count + 1
	if count == 0 {
		return name
	}
	return fmt.Sprintf("%s %d", name, count+1)
}

func selectWeighted(rng *rand.Rand, items []string, weights []float64, totalWeight float64) string {
	if len(items) == 0 || totalWeight == 0 {
		return ""
	}

	r := rng.Float64() * totalWeight
	currentSum := 0.0

	for i, item := range items {
		currentSum += weights[i]
		if r <= currentSum {
			return item
		}
	}

	return items[len(items)-1]
}
