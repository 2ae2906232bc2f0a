package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donelist/donelist/internal/models"
	"github.com/donelist/donelist/pkg/api"
)

func TestValidateCreateTodo_Valid(t *testing.T) {
	req := &api.CreateTodoRequest{
		Title:   "  Buy milk ",
		Content: "Two liters",
	}

	errs := ValidateCreateTodo(req)
	assert.Empty(t, errs)
	assert.Equal(t, "Buy milk", req.Title)
	assert.Equal(t, models.TodoStatusPending, req.Status)
}

func TestValidateCreateTodo_ExplicitStatus(t *testing.T) {
	req := &api.CreateTodoRequest{
		Title:   "Buy milk",
		Content: "Two liters",
		Status:  models.TodoStatusCompleted,
	}

	assert.Empty(t, ValidateCreateTodo(req))
	assert.Equal(t, models.TodoStatusCompleted, req.Status)
}

func TestValidateCreateTodo_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     api.CreateTodoRequest
		field   string
		message string
	}{
		{
			name:    "missing title",
			req:     api.CreateTodoRequest{Content: "c"},
			field:   "title",
			message: "Title is required",
		},
		{
			name:    "long title",
			req:     api.CreateTodoRequest{Title: strings.Repeat("a", 201), Content: "c"},
			field:   "title",
			message: "Title cannot exceed 200 characters",
		},
		{
			name:    "missing content",
			req:     api.CreateTodoRequest{Title: "t"},
			field:   "content",
			message: "Content is required",
		},
		{
			name:    "long content",
			req:     api.CreateTodoRequest{Title: "t", Content: strings.Repeat("a", 1001)},
			field:   "content",
			message: "Content cannot exceed 1000 characters",
		},
		{
			name:    "bad status",
			req:     api.CreateTodoRequest{Title: "t", Content: "c", Status: "done"},
			field:   "status",
			message: "Status must be either pending or completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCreateTodo(&tt.req)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, tt.message, errs[0].Message)
		})
	}
}

func TestValidateCreateTodo_CollectsAllErrors(t *testing.T) {
	errs := ValidateCreateTodo(&api.CreateTodoRequest{Status: "done"})
	assert.Len(t, errs, 3)
}

func TestValidateUpdateTodo(t *testing.T) {
	// Nothing set, nothing checked.
	assert.Empty(t, ValidateUpdateTodo(&api.UpdateTodoRequest{}))

	title := " New title "
	req := &api.UpdateTodoRequest{Title: &title}
	assert.Empty(t, ValidateUpdateTodo(req))
	assert.Equal(t, "New title", *req.Title)

	empty := ""
	errs := ValidateUpdateTodo(&api.UpdateTodoRequest{Title: &empty})
	require.Len(t, errs, 1)
	assert.Equal(t, "Title is required", errs[0].Message)

	badStatus := "archived"
	errs = ValidateUpdateTodo(&api.UpdateTodoRequest{Status: &badStatus})
	require.Len(t, errs, 1)
	assert.Equal(t, "status", errs[0].Field)
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, isValidURL("https://example.com/pic.png"))
	assert.True(t, isValidURL("http://example.com"))
	assert.False(t, isValidURL("ftp://example.com"))
	assert.False(t, isValidURL("example.com"))
	assert.False(t, isValidURL("https://"))
	assert.False(t, isValidURL("://bad"))
}
