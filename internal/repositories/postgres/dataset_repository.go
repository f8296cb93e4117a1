package postgres

import (
	"context"

	"github.com/chrisdamba/surplussim/internal/models"
)

var datasetColumns = []string{
	"bundle_id", "discount", "price", "weather", "category", "temperature", "day",
	"lead_time", "window_length", "time_of_day", "is_reserved", "is_collected",
}

type DatasetRepository struct {
	db DB
}

func NewDatasetRepository(db DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

func DatasetRows(rows []models.FeatureRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{
			r.BundleID,
			r.Discount,
			r.Price,
			r.Weather,
			r.Category,
			r.Temperature,
			r.Day,
			r.LeadTime,
			r.WindowLength,
			r.TimeOfDay,
			r.IsReserved,
			r.IsCollected,
		})
	}
	return out
}

func (r *DatasetRepository) BulkCreate(ctx context.Context, rows []models.FeatureRow) error {
	return copyRows(ctx, r.db, "dataset", datasetColumns, DatasetRows(rows))
}

func (r *DatasetRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "dataset")
}

func (r *DatasetRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.db, "dataset")
}
