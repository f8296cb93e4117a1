package models

import (
	"time"
)

type User struct {
	ID                 string     `json:"user_id"`
	Username           string     `json:"username"`
	Email              string     `json:"email"`
	Streak             int        `json:"streak"`
	LastCollectionTime *time.Time `json:"date_last_collection"`
}

// StreakUpdate is the derived loyalty state for one user.
type StreakUpdate struct {
	UserID             string
	Streak             int
	LastCollectionTime *time.Time
}

func (u User) StreakUpdate() StreakUpdate {
	return StreakUpdate{UserID: u.ID, Streak: u.Streak, LastCollectionTime: u.LastCollectionTime}
}
