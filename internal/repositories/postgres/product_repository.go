package postgres

import (
	"context"

	"github.com/chrisdamba/surplussim/internal/models"
)

var productColumns = []string{"id", "vendor_id", "name", "category", "retail_price"}

type ProductRepository struct {
	db DB
}

func NewProductRepository(db DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func ProductRows(products []models.Product) [][]any {
	rows := make([][]any, 0, len(products))
	for _, p := range products {
		rows = append(rows, []any{p.ID, p.VendorID, p.Name, p.Category, p.RetailPrice})
	}
	return rows
}

func (r *ProductRepository) BulkCreate(ctx context.Context, products []models.Product) error {
	return copyRows(ctx, r.db, "products", productColumns, ProductRows(products))
}

func (r *ProductRepository) GetByVendorID(ctx context.Context, vendorID string) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, vendor_id, name, category, retail_price::float8
        FROM products
        WHERE vendor_id = $1
        ORDER BY id`, vendorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.VendorID, &p.Name, &p.Category, &p.RetailPrice); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "products")
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.db, "products")
}
