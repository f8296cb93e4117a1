package postgres

import (
	"context"

	"github.com/chrisdamba/surplussim/internal/models"
)

var reservationColumns = []string{
	"id", "bundle_id", "user_id", "amount_due", "reservation_time", "collection_status", "collection_time",
}

type ReservationRepository struct {
	db DB
}

func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func ReservationRows(reservations []models.Reservation) [][]any {
	rows := make([][]any, 0, len(reservations))
	for _, res := range reservations {
		rows = append(rows, []any{
			res.ID,
			res.BundleID,
			res.UserID,
			res.AmountDue,
			res.ReservationTime,
			res.CollectionStatus,
			res.CollectionTime,
		})
	}
	return rows
}

func (r *ReservationRepository) BulkCreate(ctx context.Context, reservations []models.Reservation) error {
	return copyRows(ctx, r.db, "reservations", reservationColumns, ReservationRows(reservations))
}

// GetCollectedByUserID returns the user's collected reservations, oldest
// collection first.
func (r *ReservationRepository) GetCollectedByUserID(ctx context.Context, userID string) ([]models.Reservation, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, bundle_id, user_id, amount_due::float8, reservation_time, collection_status, collection_time
        FROM reservations
        WHERE user_id = $1 AND collection_status = $2
        ORDER BY collection_time`, userID, models.CollectionStatusCollected)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(
			&res.ID,
			&res.BundleID,
			&res.UserID,
			&res.AmountDue,
			&res.ReservationTime,
			&res.CollectionStatus,
			&res.CollectionTime,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *ReservationRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "reservations")
}

func (r *ReservationRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.db, "reservations")
}
