package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/donelist/donelist/internal/models"
	"github.com/donelist/donelist/internal/server/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// withUser attaches a user the way the auth middleware does.
func withUser(r *http.Request, user *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), UserKey, user))
}

func testUser(t *testing.T) *models.User {
	t.Helper()
	now := time.Now()
	return &models.User{
		ID:        "user-1",
		Fullname:  "Jane Doe",
		Email:     "jane@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users map[string]*models.User // ID -> User

	createError error
	getError    error
	updateError error

	setTokenCalls   int
	clearTokenCalls int
	passwordUpdates map[string]string // userID -> new hash
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{
		users:           make(map[string]*models.User),
		passwordUpdates: make(map[string]string),
	}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone, nil
}

func (m *mockUserStorage) GetUserByIDWithPassword(ctx context.Context, userID string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[userID]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, user := range m.users {
		if user.ResetTokenHash != nil && *user.ResetTokenHash == tokenHash &&
			user.ResetTokenExpiresAt != nil && user.ResetTokenExpiresAt.After(now) {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateProfile(ctx context.Context, user *models.User) error {
	if m.updateError != nil {
		return m.updateError
	}
	stored, ok := m.users[user.ID]
	if !ok {
		return storage.ErrUserNotFound
	}
	for id, u := range m.users {
		if id != user.ID && u.Email == user.Email {
			return storage.ErrUserAlreadyExists
		}
	}
	stored.Fullname = user.Fullname
	stored.Email = user.Email
	stored.ProfileImageURL = user.ProfileImageURL
	return nil
}

func (m *mockUserStorage) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	if m.updateError != nil {
		return m.updateError
	}
	user, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	m.passwordUpdates[userID] = passwordHash
	return nil
}

func (m *mockUserStorage) SetResetToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	if m.updateError != nil {
		return m.updateError
	}
	user, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	user.ResetTokenHash = &tokenHash
	user.ResetTokenExpiresAt = &expiresAt
	m.setTokenCalls++
	return nil
}

func (m *mockUserStorage) ClearResetToken(ctx context.Context, userID string) error {
	user, ok := m.users[userID]
	if !ok {
		return storage.ErrUserNotFound
	}
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	m.clearTokenCalls++
	return nil
}

func (m *mockUserStorage) DeleteUser(ctx context.Context, userID string) error {
	if _, ok := m.users[userID]; !ok {
		return storage.ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}

// mockTodoStorage is a mock implementation of TodoStorage for testing
type mockTodoStorage struct {
	todos []*models.Todo // newest first, like the real store

	createError error
	listError   error
	statsError  error
}

func (m *mockTodoStorage) CreateTodo(ctx context.Context, todo *models.Todo) error {
	if m.createError != nil {
		return m.createError
	}
	m.todos = append([]*models.Todo{todo}, m.todos...)
	return nil
}

func (m *mockTodoStorage) GetTodo(ctx context.Context, userID, todoID string) (*models.Todo, error) {
	for _, todo := range m.todos {
		if todo.UserID == userID && todo.ID == todoID {
			clone := *todo
			return &clone, nil
		}
	}
	return nil, storage.ErrTodoNotFound
}

func (m *mockTodoStorage) matching(userID string, filter storage.TodoFilter) []*models.Todo {
	var result []*models.Todo
	for _, todo := range m.todos {
		if todo.UserID != userID {
			continue
		}
		if filter.Status != "" && todo.Status != filter.Status {
			continue
		}
		result = append(result, todo)
	}
	return result
}

func (m *mockTodoStorage) ListTodos(ctx context.Context, userID string, filter storage.TodoFilter) ([]*models.Todo, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	result := m.matching(userID, filter)
	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return nil, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (m *mockTodoStorage) CountTodos(ctx context.Context, userID string, filter storage.TodoFilter) (int, error) {
	if m.listError != nil {
		return 0, m.listError
	}
	return len(m.matching(userID, filter)), nil
}

func (m *mockTodoStorage) UpdateTodo(ctx context.Context, todo *models.Todo) error {
	for i, stored := range m.todos {
		if stored.UserID == todo.UserID && stored.ID == todo.ID {
			clone := *todo
			m.todos[i] = &clone
			return nil
		}
	}
	return storage.ErrTodoNotFound
}

func (m *mockTodoStorage) DeleteTodo(ctx context.Context, userID, todoID string) error {
	for i, todo := range m.todos {
		if todo.UserID == userID && todo.ID == todoID {
			m.todos = append(m.todos[:i], m.todos[i+1:]...)
			return nil
		}
	}
	return storage.ErrTodoNotFound
}

func (m *mockTodoStorage) TodoStats(ctx context.Context, userID string) (*models.TodoStats, error) {
	if m.statsError != nil {
		return nil, m.statsError
	}
	stats := &models.TodoStats{}
	for _, todo := range m.todos {
		if todo.UserID != userID {
			continue
		}
		stats.Total++
		if todo.Status == models.TodoStatusCompleted {
			stats.Completed++
		} else {
			stats.Pending++
		}
	}
	return stats, nil
}

// mockMailer records sent mail and can fail on demand.
type mockMailer struct {
	sendError error

	sentTo      []string
	sentSubject []string
	sentBody    []string
}

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.sendError != nil {
		return m.sendError
	}
	m.sentTo = append(m.sentTo, to)
	m.sentSubject = append(m.sentSubject, subject)
	m.sentBody = append(m.sentBody, body)
	return nil
}
