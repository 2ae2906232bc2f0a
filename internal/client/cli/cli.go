// Package cli implements the interactive command-line client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/donelist/donelist/internal/client/api"
	"github.com/donelist/donelist/internal/client/storage"
)

type Cli struct {
	apiClient *api.Client
	sessions  storage.SessionStorage
}

func New(apiClient *api.Client, sessions storage.SessionStorage) *Cli {
	return &Cli{
		apiClient: apiClient,
		sessions:  sessions,
	}
}

// Run dispatches a command. Commands that need authentication load the
// saved session and attach its token to the API client first.
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "register":
		err = c.runRegister(ctx)
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "whoami":
		err = c.runWhoami(ctx)
	case "forgot-password":
		err = c.runForgotPassword(ctx)
	case "reset-password":
		err = c.runResetPassword(ctx, args)
	case "change-password":
		err = c.runChangePassword(ctx)
	case "list":
		err = c.runList(ctx, args)
	case "add":
		err = c.runAdd(ctx, args)
	case "done":
		err = c.runDone(ctx, args)
	case "rm":
		err = c.runDelete(ctx, args)
	case "stats":
		err = c.runStats(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadSession loads the saved session and configures the API client token.
func (c *Cli) loadSession(ctx context.Context) (*storage.Session, error) {
	session, err := c.sessions.GetSession(ctx)
	if err != nil {
		if err == storage.ErrSessionNotFound {
			return nil, fmt.Errorf("not logged in. Please run 'donelist login' first")
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	c.apiClient.SetToken(session.Token)
	return session, nil
}

func PrintUsage() {
	fmt.Println("Donelist Client")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  donelist [OPTIONS] COMMAND")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version      Show version information")
	fmt.Println("  --server URL   Server URL (default: http://localhost:8080)")
	fmt.Println("  --db PATH      Path to local session database (default: donelist-client.db)")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register                Register a new account")
	fmt.Println("  login                   Login to server")
	fmt.Println("  logout                  Logout and remove the saved session")
	fmt.Println("  whoami                  Show the logged-in user")
	fmt.Println("  forgot-password         Request a password reset email")
	fmt.Println("  reset-password <token>  Reset password using an emailed token")
	fmt.Println("  change-password         Change password while logged in")
	fmt.Println("  list [status]           List todos (optionally: pending, completed)")
	fmt.Println("  add                     Add a new todo")
	fmt.Println("  done <id>               Toggle a todo between pending and completed")
	fmt.Println("  rm <id>                 Delete a todo")
	fmt.Println("  stats                   Show todo statistics")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  donelist register")
	fmt.Println("  donelist login")
	fmt.Println("  donelist add")
	fmt.Println("  donelist list pending")
	fmt.Println("  donelist done b692f5c0-2d88-4aa1-a9e1-13aa6e4976d5")
	fmt.Println("  donelist --server https://example.com login")
}

// readInput reads one line from stdin.
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// readPassword reads a password without echoing it.
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(passwordBytes), nil
}
