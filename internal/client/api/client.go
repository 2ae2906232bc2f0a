// Package api implements the typed HTTP client for the donelist REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/donelist/donelist/pkg/api"
)

// Client is an HTTP client for the donelist server.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new API client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates a new account and returns the user plus a token.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthData, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp.Data, nil
}

// Login authenticates and returns the user plus a token.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthData, error) {
	var resp api.AuthResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp.Data, nil
}

// Me returns the authenticated user's public projection.
func (c *Client) Me(ctx context.Context) (*api.UserPayload, error) {
	var resp api.MeResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/auth/me", nil, &resp); err != nil {
		return nil, fmt.Errorf("me request failed: %w", err)
	}
	return &resp.Data.User, nil
}

// ForgotPassword asks the server to send a reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := api.ForgotPasswordRequest{Email: email}
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/forgot-password", req, nil); err != nil {
		return fmt.Errorf("forgot-password request failed: %w", err)
	}
	return nil
}

// ResetPassword consumes a reset token and sets a new password.
func (c *Client) ResetPassword(ctx context.Context, token, password string) (*api.AuthData, error) {
	var resp api.AuthResponse
	path := "/api/auth/reset-password/" + url.PathEscape(token)
	req := api.ResetPasswordRequest{Password: password}
	if err := c.doRequest(ctx, http.MethodPut, path, req, &resp); err != nil {
		return nil, fmt.Errorf("reset-password request failed: %w", err)
	}
	return &resp.Data, nil
}

// ChangePassword rotates the authenticated user's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	req := api.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := c.doRequest(ctx, http.MethodPut, "/api/auth/change-password", req, nil); err != nil {
		return fmt.Errorf("change-password request failed: %w", err)
	}
	return nil
}

// ListTodos returns a page of the user's todos.
func (c *Client) ListTodos(ctx context.Context, page, limit int, status string) (*api.TodoListResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if status != "" {
		q.Set("status", status)
	}

	path := "/api/todos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp api.TodoListResponse
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("list-todos request failed: %w", err)
	}
	return &resp, nil
}

// CreateTodo creates a new todo.
func (c *Client) CreateTodo(ctx context.Context, req api.CreateTodoRequest) (*api.TodoPayload, error) {
	var resp api.TodoResponse
	if err := c.doRequest(ctx, http.MethodPost, "/api/todos", req, &resp); err != nil {
		return nil, fmt.Errorf("create-todo request failed: %w", err)
	}
	return &resp.Data, nil
}

// ToggleTodo flips a todo between pending and completed.
func (c *Client) ToggleTodo(ctx context.Context, id string) (*api.TodoPayload, error) {
	var resp api.TodoResponse
	path := "/api/todos/" + url.PathEscape(id) + "/toggle"
	if err := c.doRequest(ctx, http.MethodPatch, path, nil, &resp); err != nil {
		return nil, fmt.Errorf("toggle-todo request failed: %w", err)
	}
	return &resp.Data, nil
}

// DeleteTodo deletes a todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	path := "/api/todos/" + url.PathEscape(id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete-todo request failed: %w", err)
	}
	return nil
}

// TodoStats returns aggregate counts for the user's todos.
func (c *Client) TodoStats(ctx context.Context) (*api.TodoStatsPayload, error) {
	var resp api.TodoStatsResponse
	if err := c.doRequest(ctx, http.MethodGet, "/api/todos/stats/summary", nil, &resp); err != nil {
		return nil, fmt.Errorf("todo-stats request failed: %w", err)
	}
	return &resp.Data, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp api.Response
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			return fmt.Errorf("server error (%d): %s", resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
