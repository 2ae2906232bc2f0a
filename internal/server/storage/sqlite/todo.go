package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/donelist/donelist/internal/models"
	"github.com/donelist/donelist/internal/server/storage"
)

// CreateTodo creates a new todo.
func (s *Storage) CreateTodo(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, title, content, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		todo.ID,
		todo.UserID,
		todo.Title,
		todo.Content,
		todo.Status,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert todo: %w", err)
	}

	return nil
}

// GetTodo retrieves one todo scoped to its owner. Foreign todos behave
// as missing, so ownership never leaks through status codes.
func (s *Storage) GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	query := `
		SELECT id, user_id, title, content, status, created_at, updated_at
		FROM todos
		WHERE id = ? AND user_id = ?
	`

	todo := &models.Todo{}
	err := s.db.QueryRowContext(ctx, query, todoID, userID).Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Content,
		&todo.Status,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// ListTodos returns the user's todos matching the filter, newest first.
func (s *Storage) ListTodos(ctx context.Context, userID string, filter storage.TodoFilter) ([]*models.Todo, error) {
	query := `
		SELECT id, user_id, title, content, status, created_at, updated_at
		FROM todos
		WHERE user_id = ?
	`
	args := []any{userID}

	query, args = applyFilter(query, args, filter)
	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*models.Todo
	for rows.Next() {
		todo := &models.Todo{}
		if err := rows.Scan(
			&todo.ID,
			&todo.UserID,
			&todo.Title,
			&todo.Content,
			&todo.Status,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

// CountTodos returns the number of todos matching the filter.
func (s *Storage) CountTodos(ctx context.Context, userID string, filter storage.TodoFilter) (int, error) {
	query := `SELECT COUNT(*) FROM todos WHERE user_id = ?`
	args := []any{userID}

	query, args = applyFilter(query, args, filter)

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count todos: %w", err)
	}

	return count, nil
}

// UpdateTodo persists title, content and status changes.
func (s *Storage) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	query := `
		UPDATE todos
		SET title = ?, content = ?, status = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		todo.Title,
		todo.Content,
		todo.Status,
		time.Now(),
		todo.ID,
		todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	return requireTodoRow(result)
}

// DeleteTodo deletes one todo scoped to its owner.
func (s *Storage) DeleteTodo(ctx context.Context, userID, todoID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ? AND user_id = ?`, todoID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	return requireTodoRow(result)
}

// TodoStats returns aggregate counts for the user's todos.
func (s *Storage) TodoStats(ctx context.Context, userID string) (*models.TodoStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0)
		FROM todos
		WHERE user_id = ?
	`

	stats := &models.TodoStats{}
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&stats.Total, &stats.Completed, &stats.Pending)
	if err != nil {
		return nil, fmt.Errorf("failed to get todo stats: %w", err)
	}

	return stats, nil
}

// applyFilter appends the optional status and search conditions.
func applyFilter(query string, args []any, filter storage.TodoFilter) (string, []any) {
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		query += " AND (title LIKE ? OR content LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	return query, args
}

func requireTodoRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return storage.ErrTodoNotFound
	}
	return nil
}
