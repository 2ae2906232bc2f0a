package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/donelist/donelist/internal/server/config"
	"github.com/donelist/donelist/internal/server/mail"
	"github.com/donelist/donelist/internal/server/storage/sqlite"
)

const shutdownTimeout = 10 * time.Second

// Run opens the database, assembles the router and serves until ctx is
// canceled, then shuts down gracefully. A database that cannot be
// reached at boot is a fatal error.
func Run(ctx context.Context, logger *slog.Logger, cfg config.Config, version string) error {
	store, err := sqlite.New(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	mailer := mail.NewSendGridMailer(cfg.MailAPIKey, cfg.MailEndpoint, cfg.MailFrom, cfg.MailFromName)

	router := NewRouter(logger, cfg, Stores{Users: store, Todos: store}, mailer, version)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}

	return nil
}
