package models

import "time"

// Todo status values.
const (
	TodoStatusPending   = "pending"
	TodoStatusCompleted = "completed"
)

// Todo represents a single todo item owned by a user.
type Todo struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TodoStats aggregates todo counts for one user.
type TodoStats struct {
	Total     int
	Completed int
	Pending   int
}
