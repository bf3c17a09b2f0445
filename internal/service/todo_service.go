package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"todo-server/internal/domain"
	"todo-server/internal/repository"
)

const maxTitleLength = 255

// TodoService coordinates todo operations for a single authenticated user.
// Every method takes the owner's user id explicitly; there is no ambient
// request state at this layer, which keeps it a pure function of
// (user, input) and testable without a live identity provider.
type TodoService interface {
	List(ctx context.Context, userID string) ([]domain.Todo, error)
	Create(ctx context.Context, userID, title string, description *string) (*domain.Todo, error)
	Get(ctx context.Context, userID, id string) (*domain.Todo, error)
	Update(ctx context.Context, userID, id string, upd domain.TodoUpdate) (*domain.Todo, error)
	Delete(ctx context.Context, userID, id string) error
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) List(ctx context.Context, userID string) ([]domain.Todo, error) {
	return s.todos.ListByUser(ctx, userID)
}

func (s *todoService) Create(ctx context.Context, userID, title string, description *string) (*domain.Todo, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	todo := &domain.Todo{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Completed:   false,
		UserID:      userID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Get(ctx context.Context, userID, id string) (*domain.Todo, error) {
	return s.todos.Get(ctx, id, userID)
}

func (s *todoService) Update(ctx context.Context, userID, id string, upd domain.TodoUpdate) (*domain.Todo, error) {
	if upd.Title != nil {
		if err := validateTitle(*upd.Title); err != nil {
			return nil, err
		}
	}

	if err := s.todos.Update(ctx, id, userID, upd); err != nil {
		return nil, err
	}
	return s.todos.Get(ctx, id, userID)
}

func (s *todoService) Delete(ctx context.Context, userID, id string) error {
	return s.todos.Delete(ctx, id, userID)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", ErrValidation, maxTitleLength)
	}
	return nil
}
