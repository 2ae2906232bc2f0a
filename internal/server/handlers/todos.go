package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/donelist/donelist/internal/models"
	"github.com/donelist/donelist/internal/server/storage"
	"github.com/donelist/donelist/internal/validation"
	"github.com/donelist/donelist/pkg/api"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// TodoHandler handles per-user todo CRUD. All routes sit behind the auth
// middleware, so the owner is always the context user.
type TodoHandler struct {
	logger *slog.Logger
	todos  storage.TodoStorage
}

// NewTodoHandler creates the todo handler.
func NewTodoHandler(logger *slog.Logger, todos storage.TodoStorage) *TodoHandler {
	return &TodoHandler{
		logger: logger,
		todos:  todos,
	}
}

// List handles GET /api/todos with pagination, status filter and search.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	page := queryInt(r, "page", defaultPage)
	limit := queryInt(r, "limit", defaultLimit)

	filter := storage.TodoFilter{
		Status: r.URL.Query().Get("status"),
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}

	todos, err := h.todos.ListTodos(ctx, user.ID, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list todos", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	total, err := h.todos.CountTodos(ctx, user.ID, filter)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count todos", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	pagination := api.Pagination{}
	if page*limit < total {
		pagination.Next = &api.PageInfo{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		pagination.Prev = &api.PageInfo{Page: page - 1, Limit: limit}
	}

	payload := make([]api.TodoPayload, 0, len(todos))
	for _, todo := range todos {
		payload = append(payload, todoPayload(todo))
	}

	RespondJSON(w, http.StatusOK, api.TodoListResponse{
		Success:    true,
		Count:      len(payload),
		Pagination: pagination,
		Data:       payload,
	})
}

// Get handles GET /api/todos/{id}.
func (h *TodoHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	todo, err := h.todos.GetTodo(ctx, user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.respondTodoError(ctx, w, err)
		return
	}

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data:    todoPayload(todo),
	})
}

// Create handles POST /api/todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req api.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create-todo request", slog.Any("error", err))
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateCreateTodo(&req); len(errs) > 0 {
		RespondValidationErrors(w, errs)
		return
	}

	now := time.Now()
	todo := &models.Todo{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Title:     req.Title,
		Content:   req.Content,
		Status:    req.Status,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.todos.CreateTodo(ctx, todo); err != nil {
		h.logger.ErrorContext(ctx, "failed to create todo", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.InfoContext(ctx, "todo created",
		slog.String("user_id", user.ID),
		slog.String("todo_id", todo.ID))

	RespondJSON(w, http.StatusCreated, api.Response{
		Success: true,
		Message: "Todo created successfully",
		Data:    todoPayload(todo),
	})
}

// Update handles PUT /api/todos/{id} as a partial update.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	var req api.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update-todo request", slog.Any("error", err))
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if errs := validation.ValidateUpdateTodo(&req); len(errs) > 0 {
		RespondValidationErrors(w, errs)
		return
	}

	todo, err := h.todos.GetTodo(ctx, user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.respondTodoError(ctx, w, err)
		return
	}

	if req.Title != nil {
		todo.Title = *req.Title
	}
	if req.Content != nil {
		todo.Content = *req.Content
	}
	if req.Status != nil {
		todo.Status = *req.Status
	}

	if err := h.todos.UpdateTodo(ctx, todo); err != nil {
		h.respondTodoError(ctx, w, err)
		return
	}

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Todo updated successfully",
		Data:    todoPayload(todo),
	})
}

// Delete handles DELETE /api/todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	if err := h.todos.DeleteTodo(ctx, user.ID, chi.URLParam(r, "id")); err != nil {
		h.respondTodoError(ctx, w, err)
		return
	}

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Todo deleted successfully",
	})
}

// Toggle handles PATCH /api/todos/{id}/toggle, flipping the status.
func (h *TodoHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	todo, err := h.todos.GetTodo(ctx, user.ID, chi.URLParam(r, "id"))
	if err != nil {
		h.respondTodoError(ctx, w, err)
		return
	}

	if todo.Status == models.TodoStatusPending {
		todo.Status = models.TodoStatusCompleted
	} else {
		todo.Status = models.TodoStatusPending
	}

	if err := h.todos.UpdateTodo(ctx, todo); err != nil {
		h.respondTodoError(ctx, w, err)
		return
	}

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Message: "Todo status toggled successfully",
		Data:    todoPayload(todo),
	})
}

// Stats handles GET /api/todos/stats/summary.
func (h *TodoHandler) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)
	if user == nil {
		RespondError(w, http.StatusUnauthorized, "Not authorized to access this route")
		return
	}

	stats, err := h.todos.TodoStats(ctx, user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get todo stats", slog.Any("error", err))
		RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var rate float64
	if stats.Total > 0 {
		rate = math.Round(float64(stats.Completed)/float64(stats.Total)*100*100) / 100
	}

	RespondJSON(w, http.StatusOK, api.Response{
		Success: true,
		Data: api.TodoStatsPayload{
			Total:          stats.Total,
			Completed:      stats.Completed,
			Pending:        stats.Pending,
			CompletionRate: rate,
		},
	})
}

func (h *TodoHandler) respondTodoError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrTodoNotFound) {
		RespondError(w, http.StatusNotFound, "Todo not found")
		return
	}
	h.logger.ErrorContext(ctx, "todo storage error", slog.Any("error", err))
	RespondError(w, http.StatusInternalServerError, "internal server error")
}

func todoPayload(todo *models.Todo) api.TodoPayload {
	return api.TodoPayload{
		ID:        todo.ID,
		Title:     todo.Title,
		Content:   todo.Content,
		Status:    todo.Status,
		CreatedAt: todo.CreatedAt,
		UpdatedAt: todo.UpdatedAt,
	}
}

// queryInt parses a positive integer query parameter with a fallback.
func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
