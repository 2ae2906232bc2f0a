package validation

import (
	"net/url"
	"strings"

	"github.com/donelist/donelist/pkg/api"

	"github.com/donelist/donelist/internal/models"
)

const (
	// MaxTitleLen is the maximum todo title length.
	MaxTitleLen = 200
	// MaxContentLen is the maximum todo content length.
	MaxContentLen = 1000
)

func checkTitle(title string) string {
	switch {
	case title == "":
		return "Title is required"
	case len(title) > MaxTitleLen:
		return "Title cannot exceed 200 characters"
	}
	return ""
}

func checkContent(content string) string {
	switch {
	case content == "":
		return "Content is required"
	case len(content) > MaxContentLen:
		return "Content cannot exceed 1000 characters"
	}
	return ""
}

func checkStatus(status string) string {
	if status != models.TodoStatusPending && status != models.TodoStatusCompleted {
		return "Status must be either pending or completed"
	}
	return ""
}

// ValidateCreateTodo normalizes and validates a create request. An empty
// status defaults to pending.
func ValidateCreateTodo(req *api.CreateTodoRequest) []api.FieldError {
	req.Title = strings.TrimSpace(req.Title)
	if req.Status == "" {
		req.Status = models.TodoStatusPending
	}

	var errs []api.FieldError
	if msg := checkTitle(req.Title); msg != "" {
		errs = append(errs, api.FieldError{Field: "title", Message: msg})
	}
	if msg := checkContent(req.Content); msg != "" {
		errs = append(errs, api.FieldError{Field: "content", Message: msg})
	}
	if msg := checkStatus(req.Status); msg != "" {
		errs = append(errs, api.FieldError{Field: "status", Message: msg})
	}
	return errs
}

// ValidateUpdateTodo validates a partial update. Only fields present in
// the request are checked.
func ValidateUpdateTodo(req *api.UpdateTodoRequest) []api.FieldError {
	var errs []api.FieldError
	if req.Title != nil {
		*req.Title = strings.TrimSpace(*req.Title)
		if msg := checkTitle(*req.Title); msg != "" {
			errs = append(errs, api.FieldError{Field: "title", Message: msg})
		}
	}
	if req.Content != nil {
		if msg := checkContent(*req.Content); msg != "" {
			errs = append(errs, api.FieldError{Field: "content", Message: msg})
		}
	}
	if req.Status != nil {
		if msg := checkStatus(*req.Status); msg != "" {
			errs = append(errs, api.FieldError{Field: "status", Message: msg})
		}
	}
	return errs
}

// isValidURL reports whether s parses as an absolute http(s) URL.
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
