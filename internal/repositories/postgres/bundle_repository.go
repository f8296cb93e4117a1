package postgres

import (
	"context"

	"github.com/chrisdamba/surplussim/internal/models"
)

var (
	bundleColumns = []string{
		"id", "vendor_id", "category", "name", "description",
		"retail_price", "price", "posting_time", "collection_start", "collection_end",
	}
	bundleProductColumns = []string{"bundle_id", "product_id", "quantity"}
)

type BundleRepository struct {
	db DB
}

func NewBundleRepository(db DB) *BundleRepository {
	return &BundleRepository{db: db}
}

func BundleRows(bundles []models.Bundle) [][]any {
	rows := make([][]any, 0, len(bundles))
	for _, b := range bundles {
		rows = append(rows, []any{
			b.ID,
			b.VendorID,
			b.Category,
			b.Name,
			b.Description,
			b.RetailPrice,
			b.Price,
			b.PostingTime,
			b.CollectionStart,
			b.CollectionEnd,
		})
	}
	return rows
}

func BundleProductRows(lines []models.BundleProduct) [][]any {
	rows := make([][]any, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, []any{l.BundleID, l.ProductID, int32(l.Quantity)})
	}
	return rows
}

func (r *BundleRepository) BulkCreate(ctx context.Context, bundles []models.Bundle, lines []models.BundleProduct) error {
	if err := copyRows(ctx, r.db, "bundles", bundleColumns, BundleRows(bundles)); err != nil {
		return err
	}
	return copyRows(ctx, r.db, "bundle_products", bundleProductColumns, BundleProductRows(lines))
}

func (r *BundleRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "bundles")
}

func (r *BundleRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.db, "bundles")
}
