package domain

import "time"

// Todo is a to-do item owned by exactly one user. The owner is the only
// identity that can see or act on it.
type Todo struct {
	ID          string
	Title       string
	Description *string
	Completed   bool
	UserID      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoUpdate carries a partial update. Nil fields are left untouched.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
}
