package simulator

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisdamba/surplussim/internal/models"
	"github.com/chrisdamba/surplussim/internal/reference"
)

func generate(t *testing.T, cfg *models.Config, ref *reference.Data) *models.SimulationResult {
	t.Helper()
	result, err := NewSimulator(cfg, ref, testUsers(cfg.Users)).Generate()
	require.NoError(t, err)
	return result
}

func TestGenerateBundleInvariants(t *testing.T) {
	cfg := testConfig()
	result := generate(t, cfg, testReference(t))

	require.Len(t, result.Bundles, cfg.Bundles)
	assert.Len(t, result.Dataset, cfg.Bundles)
	assert.Len(t, result.ReservationScores, cfg.Bundles)
	assert.Empty(t, result.Skipped)

	lines := make(map[string][]models.BundleProduct)
	for _, bp := range result.BundleProducts {
		lines[bp.BundleID] = append(lines[bp.BundleID], bp)
	}

	for i, b := range result.Bundles {
		assert.GreaterOrEqual(t, b.Price, 0.0)
		assert.LessOrEqual(t, b.Price, b.RetailPrice)
		assert.False(t, b.PostingTime.After(b.CollectionStart))
		assert.True(t, b.CollectionStart.Before(b.CollectionEnd))
		assert.False(t, b.PostingTime.Before(cfg.StartDate))
		assert.True(t, b.PostingTime.Before(cfg.EndDate.AddDate(0, 0, 1)))
		assert.Contains(t, b.Name, "Crumbs")
		assert.Contains(t, b.Description, "Crumbs")

		sum := 0.0
		for _, bp := range lines[b.ID] {
			p, err := testReference(t).Product(bp.ProductID)
			require.NoError(t, err)
			assert.Equal(t, b.Category, p.Category)
			sum += p.RetailPrice * float64(bp.Quantity)
		}
		assert.InDelta(t, b.RetailPrice, sum, 0.01)
		assert.LessOrEqual(t, b.RetailPrice, cfg.BundleBudget)

		assert.Equal(t, b.ID, result.Dataset[i].BundleID)
	}
}

func TestGenerateReservationConsistency(t *testing.T) {
	cfg := testConfig()
	cfg.Bundles = 200
	result := generate(t, cfg, testReference(t))

	bundles := make(map[string]models.Bundle)
	for _, b := range result.Bundles {
		bundles[b.ID] = b
	}
	rows := make(map[string]models.FeatureRow)
	for _, row := range result.Dataset {
		rows[row.BundleID] = row
	}

	perBundle := make(map[string]int)
	for _, r := range result.Reservations {
		perBundle[r.BundleID]++
		b, ok := bundles[r.BundleID]
		require.True(t, ok)
		row := rows[r.BundleID]
		assert.True(t, row.IsReserved)
		assert.Equal(t, r.IsCollected(), row.IsCollected)

		if r.IsCollected() {
			require.NotNil(t, r.CollectionTime)
			assert.False(t, r.CollectionTime.Before(b.CollectionStart))
			assert.False(t, r.CollectionTime.Before(r.ReservationTime))
			assert.False(t, r.CollectionTime.After(b.CollectionEnd))
		} else {
			assert.Equal(t, models.CollectionStatusNoShow, r.CollectionStatus)
			assert.Nil(t, r.CollectionTime)
		}
	}
	for id, n := range perBundle {
		assert.Equal(t, 1, n, "bundle %s reserved more than once", id)
	}

	reserved := 0
	for _, row := range result.Dataset {
		if row.IsReserved {
			reserved++
		} else {
			assert.False(t, row.IsCollected)
		}
	}
	assert.Equal(t, len(result.Reservations), reserved)
}

func TestGenerateIsDeterministicAcrossWorkers(t *testing.T) {
	ref := testReference(t)

	one := testConfig()
	one.Workers = 1
	many := testConfig()
	many.Workers = 8

	a := generate(t, one, ref)
	b := generate(t, many, ref)
	a.RunID, b.RunID = "", ""
	assert.Equal(t, a, b)

	other := testConfig()
	other.Seed = 13
	c := generate(t, other, ref)
	assert.NotEqual(t, a.Bundles, c.Bundles)
}

func TestGenerateSkipsBadBundles(t *testing.T) {
	vendors, products := testVendors()
	vendors = append(vendors, models.Vendor{
		ID:         "closed",
		Name:       "Shut",
		Categories: []string{models.CategoryBreadBakedGoods},
		Hours:      map[time.Weekday]models.OpeningHours{},
	})
	ref, err := reference.New(vendors, products, sunnyDays(novemberStart, novemberEnd),
		models.DefaultCategoryValues, models.DefaultWeatherValues)
	require.NoError(t, err)

	cfg := testConfig()
	result := generate(t, cfg, ref)
	require.NotEmpty(t, result.Skipped)
	assert.Equal(t, cfg.Bundles, len(result.Bundles)+len(result.Skipped))
	for _, s := range result.Skipped {
		assert.Equal(t, "bundle", s.Entity)
		assert.Contains(t, s.Reason, reference.TableOpeningHours)
	}
	for _, b := range result.Bundles {
		assert.Equal(t, "v1", b.VendorID)
	}

	cfg.FailFast = true
	_, err = NewSimulator(cfg, ref, testUsers(cfg.Users)).Generate()
	var missing *reference.MissingKeyError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, reference.TableOpeningHours, missing.Table)
}

func TestGenerateSkipsBundlesWithoutWeather(t *testing.T) {
	vendors, products := testVendors()
	// weather only for the first half of the month
	ref, err := reference.New(vendors, products, sunnyDays(novemberStart, novemberStart.AddDate(0, 0, 14)),
		models.DefaultCategoryValues, models.DefaultWeatherValues)
	require.NoError(t, err)

	cfg := testConfig()
	result := generate(t, cfg, ref)
	require.NotEmpty(t, result.Skipped)
	assert.Equal(t, len(result.Bundles), len(result.Dataset))
	assert.Equal(t, cfg.Bundles, len(result.Bundles)+len(result.Skipped))

	for _, s := range result.Skipped {
		assert.Contains(t, s.Reason, reference.TableWeather)
	}

	cfg.FailFast = true
	_, err = NewSimulator(cfg, ref, testUsers(cfg.Users)).Generate()
	assert.Error(t, err)
}

func TestGenerateStreaksAndDisputes(t *testing.T) {
	cfg := testConfig()
	cfg.Bundles = 200
	cfg.DisputeProbability = 1
	result := generate(t, cfg, testReference(t))

	require.Len(t, result.Users, cfg.Users)
	assert.Len(t, result.Disputes, len(result.Reservations))

	calc := NewStreakCalculator(cfg.ReferenceDate, result.Reservations)
	for _, u := range result.Users {
		streak, last := calc.Streak(u.ID)
		assert.Equal(t, streak, u.Streak)
		assert.Equal(t, last, u.LastCollectionTime)
	}

	owners := make(map[string]string)
	for _, r := range result.Reservations {
		owners[r.ID] = r.UserID
	}
	for _, d := range result.Disputes {
		assert.Equal(t, owners[d.ReservationID], d.UserID)
		assert.Equal(t, "v1", d.VendorID)
	}
}

type recordingWriter struct {
	results []*models.SimulationResult
	err     error
}

func (w *recordingWriter) WriteResult(ctx context.Context, result *models.SimulationResult) error {
	w.results = append(w.results, result)
	return w.err
}

func TestRunWritesResult(t *testing.T) {
	cfg := testConfig()
	sim := NewSimulator(cfg, testReference(t), testUsers(cfg.Users))
	w := &recordingWriter{}

	result, err := sim.Run(context.Background(), w)
	require.NoError(t, err)
	require.Len(t, w.results, 1)
	assert.Same(t, result, w.results[0])
	assert.Equal(t, sim.RunID, result.RunID)

	w.err = errors.New("disk full")
	_, err = NewSimulator(cfg, testReference(t), testUsers(cfg.Users)).Run(context.Background(), w)
	assert.ErrorContains(t, err, "disk full")
}
