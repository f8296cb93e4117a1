package repositories

import (
	"context"

	"github.com/chrisdamba/surplussim/internal/models"
)

type VendorRepository interface {
	BulkCreate(ctx context.Context, vendors []models.Vendor) error
	GetAll(ctx context.Context) ([]models.Vendor, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ProductRepository interface {
	BulkCreate(ctx context.Context, products []models.Product) error
	GetByVendorID(ctx context.Context, vendorID string) ([]models.Product, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type UserRepository interface {
	BulkCreate(ctx context.Context, users []models.User) error
	GetAll(ctx context.Context) ([]models.User, error)
	UpdateStreaks(ctx context.Context, updates []models.StreakUpdate) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

// BundleRepository stores bundles together with their product lines.
type BundleRepository interface {
	BulkCreate(ctx context.Context, bundles []models.Bundle, lines []models.BundleProduct) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ReservationRepository interface {
	BulkCreate(ctx context.Context, reservations []models.Reservation) error
	GetCollectedByUserID(ctx context.Context, userID string) ([]models.Reservation, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type DisputeRepository interface {
	BulkCreate(ctx context.Context, disputes []models.Dispute) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type DatasetRepository interface {
	BulkCreate(ctx context.Context, rows []models.FeatureRow) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}
