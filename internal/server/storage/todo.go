package storage

import (
	"context"

	"github.com/donelist/donelist/internal/models"
)

// TodoFilter narrows and pages a todo listing. Status and Search are
// optional; zero Limit means no limit.
type TodoFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

// TodoStorage defines the interface for todo persistence. Every read and
// write is scoped to the owning user, so foreign IDs behave as missing.
type TodoStorage interface {
	// CreateTodo creates a new todo.
	CreateTodo(ctx context.Context, todo *models.Todo) error

	// GetTodo retrieves one todo owned by userID.
	// Returns ErrTodoNotFound if it doesn't exist or belongs to someone else.
	GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error)

	// ListTodos returns the user's todos matching the filter, newest first.
	ListTodos(ctx context.Context, userID string, filter TodoFilter) ([]*models.Todo, error)

	// CountTodos returns the number of todos matching the filter,
	// ignoring Limit and Offset.
	CountTodos(ctx context.Context, userID string, filter TodoFilter) (int, error)

	// UpdateTodo persists title, content and status changes.
	// Returns ErrTodoNotFound if the todo doesn't exist for the user.
	UpdateTodo(ctx context.Context, todo *models.Todo) error

	// DeleteTodo deletes one todo owned by userID.
	// Returns ErrTodoNotFound if the todo doesn't exist for the user.
	DeleteTodo(ctx context.Context, userID, todoID string) error

	// TodoStats returns aggregate counts for the user's todos.
	TodoStats(ctx context.Context, userID string) (*models.TodoStats, error)
}
