package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/donelist/donelist/internal/client/storage"
	"github.com/donelist/donelist/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	fmt.Println("=== Register ===")
	fmt.Println()

	fullname, err := readInput("Full name: ")
	if err != nil {
		return fmt.Errorf("failed to read full name: %w", err)
	}

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	fmt.Println()
	fmt.Println("Registering...")

	data, err := c.apiClient.Register(ctx, api.RegisterRequest{
		Fullname: fullname,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	if err := c.saveSession(ctx, data); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Registration successful!")
	fmt.Printf("Logged in as %s <%s>\n", data.User.Fullname, data.User.Email)

	return nil
}

func (c *Cli) runLogin(ctx context.Context) error {
	fmt.Println("=== Login ===")
	fmt.Println()

	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Println()
	fmt.Println("Authenticating...")

	data, err := c.apiClient.Login(ctx, api.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}

	if err := c.saveSession(ctx, data); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Login successful!")
	fmt.Printf("Logged in as %s <%s>\n", data.User.Fullname, data.User.Email)

	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.sessions.DeleteSession(ctx); err != nil {
		if err == storage.ErrSessionNotFound {
			fmt.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}

	fmt.Println("Logged out.")
	return nil
}

func (c *Cli) runWhoami(ctx context.Context) error {
	session, err := c.loadSession(ctx)
	if err != nil {
		return err
	}

	// The saved session may be stale, confirm with the server.
	user, err := c.apiClient.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Fullname: %s\n", user.Fullname)
	fmt.Printf("Email:    %s\n", user.Email)
	fmt.Printf("User ID:  %s\n", user.ID)
	fmt.Printf("Since:    %s\n", session.SavedAt.Format(time.RFC3339))

	return nil
}

func (c *Cli) runForgotPassword(ctx context.Context) error {
	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	if err := c.apiClient.ForgotPassword(ctx, email); err != nil {
		return err
	}

	fmt.Println("Reset email sent. Check your inbox for the reset link.")
	return nil
}

func (c *Cli) runResetPassword(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: donelist reset-password <token>")
	}
	token := args[0]

	password, err := readPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	data, err := c.apiClient.ResetPassword(ctx, token, password)
	if err != nil {
		return err
	}

	if err := c.saveSession(ctx, data); err != nil {
		return err
	}

	fmt.Println("Password reset successful. You are now logged in.")
	return nil
}

func (c *Cli) runChangePassword(ctx context.Context) error {
	if _, err := c.loadSession(ctx); err != nil {
		return err
	}

	current, err := readPassword("Current password: ")
	if err != nil {
		return fmt.Errorf("failed to read current password: %w", err)
	}

	next, err := readPassword("New password: ")
	if err != nil {
		return fmt.Errorf("failed to read new password: %w", err)
	}

	if err := c.apiClient.ChangePassword(ctx, current, next); err != nil {
		return err
	}

	fmt.Println("Password changed.")
	return nil
}

func (c *Cli) saveSession(ctx context.Context, data *api.AuthData) error {
	c.apiClient.SetToken(data.Token)

	session := &storage.Session{
		Token:    data.Token,
		UserID:   data.User.ID,
		Email:    data.User.Email,
		Fullname: data.User.Fullname,
		SavedAt:  time.Now(),
	}
	if err := c.sessions.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
