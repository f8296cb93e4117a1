package postgres

import (
	"context"

	"github.com/chrisdamba/surplussim/internal/models"
)

var disputeColumns = []string{
	"id", "reservation_id", "user_id", "vendor_id", "scenario", "reason", "vendor_response", "status",
}

type DisputeRepository struct {
	db DB
}

func NewDisputeRepository(db DB) *DisputeRepository {
	return &DisputeRepository{db: db}
}

func DisputeRows(disputes []models.Dispute) [][]any {
	rows := make([][]any, 0, len(disputes))
	for _, d := range disputes {
		rows = append(rows, []any{d.ID, d.ReservationID, d.UserID, d.VendorID, d.Scenario, d.Reason, d.VendorResponse, d.Status})
	}
	return rows
}

func (r *DisputeRepository) BulkCreate(ctx context.Context, disputes []models.Dispute) error {
	return copyRows(ctx, r.db, "disputes", disputeColumns, DisputeRows(disputes))
}

func (r *DisputeRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "disputes")
}

func (r *DisputeRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.db, "disputes")
}
