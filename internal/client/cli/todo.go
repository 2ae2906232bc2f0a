package cli

import (
	"context"
	"fmt"

	"github.com/donelist/donelist/internal/models"
	"github.com/donelist/donelist/pkg/api"
)

func (c *Cli) runList(ctx context.Context, args []string) error {
	if _, err := c.loadSession(ctx); err != nil {
		return err
	}

	status := ""
	if len(args) > 0 {
		status = args[0]
		if status != models.TodoStatusPending && status != models.TodoStatusCompleted {
			return fmt.Errorf("unknown status %q (expected pending or completed)", status)
		}
	}

	resp, err := c.apiClient.ListTodos(ctx, 0, 0, status)
	if err != nil {
		return err
	}

	if len(resp.Data) == 0 {
		fmt.Println("No todos found.")
		return nil
	}

	for _, todo := range resp.Data {
		mark := " "
		if todo.Status == models.TodoStatusCompleted {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s\n", mark, todo.ID, todo.Title)
		if todo.Content != "" {
			fmt.Printf("        %s\n", todo.Content)
		}
	}
	fmt.Printf("\n%d todo(s)\n", resp.Count)

	return nil
}

func (c *Cli) runAdd(ctx context.Context, args []string) error {
	if _, err := c.loadSession(ctx); err != nil {
		return err
	}

	title, err := readInput("Title: ")
	if err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}

	content, err := readInput("Content (optional): ")
	if err != nil {
		return fmt.Errorf("failed to read content: %w", err)
	}

	todo, err := c.apiClient.CreateTodo(ctx, api.CreateTodoRequest{
		Title:   title,
		Content: content,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created todo %s\n", todo.ID)
	return nil
}

func (c *Cli) runDone(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: donelist done <id>")
	}
	if _, err := c.loadSession(ctx); err != nil {
		return err
	}

	todo, err := c.apiClient.ToggleTodo(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Todo %s is now %s\n", todo.ID, todo.Status)
	return nil
}

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: donelist rm <id>")
	}
	if _, err := c.loadSession(ctx); err != nil {
		return err
	}

	if err := c.apiClient.DeleteTodo(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println("Todo deleted.")
	return nil
}

func (c *Cli) runStats(ctx context.Context) error {
	if _, err := c.loadSession(ctx); err != nil {
		return err
	}

	stats, err := c.apiClient.TodoStats(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Total:      %d\n", stats.Total)
	fmt.Printf("Completed:  %d\n", stats.Completed)
	fmt.Printf("Pending:    %d\n", stats.Pending)
	fmt.Printf("Completion: %.2f%%\n", stats.CompletionRate)

	return nil
}
