package simulator

import (
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/reference"
)

// Composer greedily fills a bundle from a vendor's stock in one category
// without exceeding a retail budget.
type Composer struct {
	ref         *reference.Data
	maxQuantity int
	earlyStop   float64
	minDiscount float64
	maxDiscount float64
}

func NewComposer(ref *reference.Data, cfg *models.Config) *Composer {
	return &Composer{
		ref:         ref,
		maxQuantity: cfg.MaxProductQuantity,
		earlyStop:   cfg.EarlyStopProbability,
		minDiscount: cfg.MinDiscount,
		maxDiscount: cfg.MaxDiscount,
	}
}

// Compose returns the selected line items and their rounded retail total. A
// vendor with no products in the category yields an empty bundle.
func (c *Composer) Compose(rng *rand.Rand, vendorID, category string, budget float64) ([]models.LineItem, float64, error) {
	if _, err := c.ref.Vendor(vendorID); err != nil {
		return nil, 0, err
	}

	candidates := c.ref.Products(vendorID, category)
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	remaining := decimal.NewFromFloat(budget)
	retail := decimal.Zero
	var items []models.LineItem

	for _, p := range candidates {
		unit := decimal.NewFromFloat(p.RetailPrice)
		maxQty := int(remaining.Div(unit).Floor().IntPart())
		if maxQty <= 0 {
			continue
		}

		qty := uniformInt(rng, 1, min(maxQty, c.maxQuantity))
		cost := unit.Mul(decimal.NewFromInt(int64(qty)))

		items = append(items, models.LineItem{
			ProductID: p.ID,
			Quantity:  qty,
			UnitPrice: p.RetailPrice,
		})
		remaining = remaining.Sub(cost)
		retail = retail.Add(cost)

		if !remaining.IsPositive() || bernoulli(rng, c.earlyStop) {
			break
		}
	}

	return items, retail.Round(2).InexactFloat64(), nil
}

// Price applies a random discount to the retail price, rounded to pennies
// and clamped to [0, retail].
func (c *Composer) Price(rng *rand.Rand, retail float64) float64 {
	factor := decimal.NewFromFloat(uniform(rng, c.minDiscount, c.maxDiscount))
	price := decimal.NewFromFloat(retail).Mul(factor).Round(2)

	if price.IsNegative() {
		return 0
	}
	if ceiling := decimal.NewFromFloat(retail); price.GreaterThan(ceiling) {
		return ceiling.InexactFloat64()
	}
	return price.InexactFloat64()
}
