package repository

import (
	"context"

	"todo-server/internal/domain"
)

// TodoRepository exposes persistence operations for Todo aggregates.
//
// Every owner-scoped operation carries both the row id and the owner id in
// the same statement predicate. Ownership is never checked in a second
// step, so a row can never be read or mutated by id alone.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) error
	// Get returns ErrNotFound when the row is absent or owned by another user.
	Get(ctx context.Context, id, userID string) (*domain.Todo, error)
	// ListByUser returns the user's todos ordered by creation time, oldest first.
	ListByUser(ctx context.Context, userID string) ([]domain.Todo, error)
	// Update applies the non-nil fields of upd and refreshes updated_at in a
	// single conditional statement. ErrNotFound when zero rows matched.
	Update(ctx context.Context, id, userID string, upd domain.TodoUpdate) error
	// Delete removes the row under the same ownership predicate as Update.
	Delete(ctx context.Context, id, userID string) error
}
