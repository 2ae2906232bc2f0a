package api

import "time"

// CreateTodoRequest represents a request to create a todo.
type CreateTodoRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status,omitempty"`
}

// UpdateTodoRequest is a partial update; nil fields are left unchanged.
type UpdateTodoRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Status  *string `json:"status,omitempty"`
}

// TodoPayload is the wire representation of a todo record.
type TodoPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageInfo points at an adjacent page of a listing.
type PageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries next/prev page pointers when they exist.
type Pagination struct {
	Next *PageInfo `json:"next,omitempty"`
	Prev *PageInfo `json:"prev,omitempty"`
}

// TodoListResponse is the envelope for GET /api/todos.
type TodoListResponse struct {
	Success    bool          `json:"success"`
	Count      int           `json:"count"`
	Pagination Pagination    `json:"pagination"`
	Data       []TodoPayload `json:"data"`
}

// TodoResponse is the typed envelope for single-todo endpoints.
type TodoResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    TodoPayload `json:"data"`
}

// TodoStatsPayload summarizes a user's todos.
type TodoStatsPayload struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completionRate"`
}

// TodoStatsResponse is the typed envelope for GET /api/todos/stats/summary.
type TodoStatsResponse struct {
	Success bool             `json:"success"`
	Data    TodoStatsPayload `json:"data"`
}
