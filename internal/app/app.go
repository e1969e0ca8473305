// Package app assembles the configured application and runs its lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/sunriselabs/sunrise/internal/config"
	"github.com/sunriselabs/sunrise/internal/database/client"
	"github.com/sunriselabs/sunrise/internal/handler"
)

// App holds the wired application.
type App struct {
	Config   *config.Config
	logger   *slog.Logger
	dbClient *client.Client
	handler  *handler.Handler
}

// NewApp assembles an App from its dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger, dbClient *client.Client, h *handler.Handler) *App {
	return &App{
		Config:   cfg,
		logger:   logger,
		dbClient: dbClient,
		handler:  h,
	}
}

// Logger exposes the application logger for the entrypoint.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves HTTP until a termination signal arrives, then releases
// resources.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := runServer(ctx, a.Config, a.handler, a.logger)

	if closeErr := a.Shutdown(); closeErr != nil {
		a.logger.Error("shutdown error", "error", closeErr)
	}

	return err
}

// Shutdown closes the application's resources.
func (a *App) Shutdown() error {
	if a.dbClient != nil {
		if err := a.dbClient.Close(); err != nil {
			return fmt.Errorf("close database: %w", err)
		}
	}
	return nil
}
