package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/chrisdamba/surplussim/internal/models"
)

var userColumns = []string{"id", "username", "email", "streak", "date_last_collection"}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func UserRows(users []models.User) [][]any {
	rows := make([][]any, 0, len(users))
	for _, u := range users {
		rows = append(rows, []any{u.ID, u.Username, u.Email, int32(u.Streak), u.LastCollectionTime})
	}
	return rows
}

func (r *UserRepository) BulkCreate(ctx context.Context, users []models.User) error {
	return copyRows(ctx, r.db, "users", userColumns, UserRows(users))
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, username, email, streak, date_last_collection
        FROM users
        ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Streak, &u.LastCollectionTime); err != nil {
			return nil, err
		}
		if u.LastCollectionTime != nil {
			t := u.LastCollectionTime.UTC()
			u.LastCollectionTime = &t
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateStreaks writes derived loyalty state back in one batch.
func (r *UserRepository) UpdateStreaks(ctx context.Context, updates []models.StreakUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`UPDATE users SET streak = $2, date_last_collection = $3 WHERE id = $1`,
			u.UserID, int32(u.Streak), u.LastCollectionTime)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for _, u := range updates {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to update streak for user %s: %w", u.UserID, err)
		}
		if tag.RowsAffected() != 1 {
			return fmt.Errorf("failed to update streak for user %s: no such user", u.UserID)
		}
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	return count(ctx, r.db, "users")
}

func (r *UserRepository) DeleteAll(ctx context.Context) error {
	return truncate(ctx, r.db, "users")
}
