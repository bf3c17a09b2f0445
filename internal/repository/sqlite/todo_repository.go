package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
INSERT INTO todos (id, title, description, completed, user_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		todo.ID,
		todo.Title,
		nullString(todo.Description),
		todo.Completed,
		todo.UserID,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) Get(ctx context.Context, id, userID string) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, completed, user_id, created_at, updated_at
FROM todos
WHERE id = ? AND user_id = ?`,
		id,
		userID,
	)
	return scanTodo(row)
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, description, completed, user_id, created_at, updated_at
FROM todos
WHERE user_id = ?
ORDER BY created_at ASC, rowid ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, *todo)
	}

	return todos, rows.Err()
}

// Update builds a SET clause from the non-nil fields of upd. The WHERE
// clause always carries both the id and the owner, so an update against a
// row owned by someone else matches zero rows and is indistinguishable
// from a missing row.
func (r *TodoRepository) Update(ctx context.Context, id, userID string, upd domain.TodoUpdate) error {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 6)

	if upd.Title != nil {
		sets = append(sets, "title=?")
		args = append(args, *upd.Title)
	}
	if upd.Description != nil {
		sets = append(sets, "description=?")
		args = append(args, *upd.Description)
	}
	if upd.Completed != nil {
		sets = append(sets, "completed=?")
		args = append(args, *upd.Completed)
	}
	sets = append(sets, "updated_at=?")
	args = append(args, time.Now().UTC())
	args = append(args, id, userID)

	query := fmt.Sprintf(`
UPDATE todos
SET %s
WHERE id=? AND user_id=?`, strings.Join(sets, ", "))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("todo update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("update todo: %w", repository.ErrNotFound)
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("todo delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("delete todo: %w", repository.ErrNotFound)
	}
	return nil
}

func scanTodo(scanner interface {
	Scan(dest ...any) error
}) (*domain.Todo, error) {
	var (
		todo        domain.Todo
		description sql.NullString
	)

	if err := scanner.Scan(
		&todo.ID,
		&todo.Title,
		&description,
		&todo.Completed,
		&todo.UserID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}

	if description.Valid {
		todo.Description = &description.String
	}
	return &todo, nil
}

func nullString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
