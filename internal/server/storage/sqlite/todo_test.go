package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donelist/donelist/internal/models"
	"github.com/donelist/donelist/internal/server/storage"
)

func newTodo(userID, title, status string) *models.Todo {
	now := time.Now().UTC()
	return &models.Todo{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   "content of " + title,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// seedOwner creates a user so the todos foreign key holds.
func seedOwner(t *testing.T, s *Storage, email string) string {
	t.Helper()
	user := newUser(email)
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user.ID
}

func TestCreateAndGetTodo(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := seedOwner(t, s, "jane@example.com")

	todo := newTodo(userID, "Buy milk", models.TodoStatusPending)
	require.NoError(t, s.CreateTodo(ctx, todo))

	got, err := s.GetTodo(ctx, userID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, got.ID)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, models.TodoStatusPending, got.Status)
}

func TestGetTodo_OwnershipScoped(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner := seedOwner(t, s, "owner@example.com")
	other := seedOwner(t, s, "other@example.com")

	todo := newTodo(owner, "Private", models.TodoStatusPending)
	require.NoError(t, s.CreateTodo(ctx, todo))

	// Someone else's ID resolves like a missing record.
	_, err := s.GetTodo(ctx, other, todo.ID)
	assert.ErrorIs(t, err, storage.ErrTodoNotFound)
}

func TestListTodos_NewestFirst(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := seedOwner(t, s, "jane@example.com")

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		todo := newTodo(userID, fmt.Sprintf("Todo %d", i), models.TodoStatusPending)
		todo.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.CreateTodo(ctx, todo))
	}

	todos, err := s.ListTodos(ctx, userID, storage.TodoFilter{})
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "Todo 2", todos[0].Title)
	assert.Equal(t, "Todo 0", todos[2].Title)
}

func TestListTodos_StatusFilter(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := seedOwner(t, s, "jane@example.com")

	require.NoError(t, s.CreateTodo(ctx, newTodo(userID, "Open", models.TodoStatusPending)))
	require.NoError(t, s.CreateTodo(ctx, newTodo(userID, "Done", models.TodoStatusCompleted)))

	todos, err := s.ListTodos(ctx, userID, storage.TodoFilter{Status: models.TodoStatusCompleted})
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Done", todos[0].Title)

	count, err := s.CountTodos(ctx, userID, storage.TodoFilter{Status: models.TodoStatusPending})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestListTodos_Search(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := seedOwner(t, s, "jane@example.com")

	groceries := newTodo(userID, "Buy groceries", models.TodoStatusPending)
	require.NoError(t, s.CreateTodo(ctx, groceries))

	report := newTodo(userID, "Write report", models.TodoStatusPending)
	report.Content = "quarterly groceries budget"
	require.NoError(t, s.CreateTodo(ctx, report))

	require.NoError(t, s.CreateTodo(ctx, newTodo(userID, "Walk the dog", models.TodoStatusPending)))

	// Search matches title or content.
	todos, err := s.ListTodos(ctx, userID, storage.TodoFilter{Search: "groceries"})
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	count, err := s.CountTodos(ctx, userID, storage.TodoFilter{Search: "groceries"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListTodos_Pagination(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := seedOwner(t, s, "jane@example.com")

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		todo := newTodo(userID, fmt.Sprintf("Todo %d", i), models.TodoStatusPending)
		todo.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, s.CreateTodo(ctx, todo))
	}

	page1, err := s.ListTodos(ctx, userID, storage.TodoFilter{Limit: 2, Offset: 0})
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "Todo 4", page1[0].Title)

	page3, err := s.ListTodos(ctx, userID, storage.TodoFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "Todo 0", page3[0].Title)

	// Count ignores paging.
	count, err := s.CountTodos(ctx, userID, storage.TodoFilter{Limit: 2, Offset: 4})
	require.NoError(t, err)
	assert.Equal(t, 5, count)
}

func TestUpdateTodo(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := seedOwner(t, s, "jane@example.com")

	todo := newTodo(userID, "Buy milk", models.TodoStatusPending)
	require.NoError(t, s.CreateTodo(ctx, todo))

	todo.Title = "Buy oat milk"
	todo.Status = models.TodoStatusCompleted
	require.NoError(t, s.UpdateTodo(ctx, todo))

	got, err := s.GetTodo(ctx, userID, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", got.Title)
	assert.Equal(t, models.TodoStatusCompleted, got.Status)
}

func TestUpdateTodo_OwnershipScoped(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	owner := seedOwner(t, s, "owner@example.com")
	other := seedOwner(t, s, "other@example.com")

	todo := newTodo(owner, "Private", models.TodoStatusPending)
	require.NoError(t, s.CreateTodo(ctx, todo))

	hijacked := *todo
	hijacked.UserID = other
	hijacked.Title = "Hacked"
	assert.ErrorIs(t, s.UpdateTodo(ctx, &hijacked), storage.ErrTodoNotFound)

	got, err := s.GetTodo(ctx, owner, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "Private", got.Title)
}

func TestDeleteTodo(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := seedOwner(t, s, "jane@example.com")

	todo := newTodo(userID, "Buy milk", models.TodoStatusPending)
	require.NoError(t, s.CreateTodo(ctx, todo))

	require.NoError(t, s.DeleteTodo(ctx, userID, todo.ID))
	assert.ErrorIs(t, s.DeleteTodo(ctx, userID, todo.ID), storage.ErrTodoNotFound)
}

func TestTodoStats(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	userID := seedOwner(t, s, "jane@example.com")
	other := seedOwner(t, s, "other@example.com")

	require.NoError(t, s.CreateTodo(ctx, newTodo(userID, "A", models.TodoStatusPending)))
	require.NoError(t, s.CreateTodo(ctx, newTodo(userID, "B", models.TodoStatusPending)))
	require.NoError(t, s.CreateTodo(ctx, newTodo(userID, "C", models.TodoStatusCompleted)))
	require.NoError(t, s.CreateTodo(ctx, newTodo(other, "D", models.TodoStatusCompleted)))

	stats, err := s.TodoStats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 1, stats.Completed)
	assert.Equal(t, 2, stats.Pending)
}

func TestTodoStats_Empty(t *testing.T) {
	s := newTestStorage(t)
	userID := seedOwner(t, s, "jane@example.com")

	stats, err := s.TodoStats(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.Completed)
	assert.Zero(t, stats.Pending)
}
