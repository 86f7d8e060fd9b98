package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cufc/member-api/internal/bootstrap"
	"github.com/cufc/member-api/internal/config"
	"github.com/cufc/member-api/internal/member"
	"github.com/cufc/member-api/internal/router"
	"github.com/cufc/member-api/internal/shared/database"
	"github.com/cufc/member-api/internal/shared/logger"
	"github.com/cufc/member-api/internal/shared/token"
	"github.com/cufc/member-api/internal/shared/validator"
)

func main() {
	// Parse command line flags
	env := parseFlags()

	// Initialize logger
	logger.Setup(env)
	slog.Info("server initialization started", "env", env)

	// Run application
	if err := run(env); err != nil {
		slog.Error("server initialization failed", "error", err)
		os.Exit(1)
	}

	slog.Info("server shutdown complete", "env", env)
}

// parseFlags parses command line arguments
func parseFlags() string {
	env := flag.String("env", "local", "Environment (local|dev|production)")
	flag.Parse()
	return *env
}

// run contains the main application logic
func run(env string) error {
	// Create root context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.Info("configuration loaded")

	// Connect to the document store; a failure here is fatal
	db, err := database.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to datastore: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("failed to close datastore connection", "error", err)
		}
	}()

	// Create the unique indexes backing the email/identity invariants
	indexCtx, indexCancel := context.WithTimeout(ctx, 10*time.Second)
	defer indexCancel()
	if err := member.EnsureIndexes(indexCtx, db); err != nil {
		return fmt.Errorf("failed to ensure member indexes: %w", err)
	}

	// Setup server
	srv := setupServer(cfg, db)

	// Start server with graceful shutdown
	return startWithGracefulShutdown(ctx, srv, cfg.Server.GracefulTimeout)
}

// setupServer initializes and configures the HTTP server
func setupServer(cfg *config.Config, db *database.DB) *bootstrap.Server {
	// Bootstrap server with common setup
	boot := bootstrap.NewBootstrap(cfg)
	ginEngine := boot.SetupEngine()

	// Register common validators
	if err := validator.RegisterAll(); err != nil {
		slog.Error("failed to register shared validators", "error", err)
		panic(err)
	}

	// Token verifier against the identity provider's key set
	verifier := token.NewJWKSVerifier(cfg)

	// Setup application-specific routes
	router.Setup(ginEngine, cfg, db, verifier)

	slog.Info("server setup complete",
		"env", cfg.App.Env,
	)

	return bootstrap.New(cfg, ginEngine)
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func startWithGracefulShutdown(ctx context.Context, srv *bootstrap.Server, gracefulTimeout time.Duration) error {
	// Channel to receive server errors
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		serverErrors <- srv.Start()
	}()

	// Channel to receive OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Wait for either server error or interrupt signal
	select {
	case err := <-serverErrors:
		// Server failed to start or stopped unexpectedly
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case sig := <-quit:
		// Received shutdown signal
		slog.Info("shutdown signal received", "signal", sig.String())

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(ctx, gracefulTimeout)
		defer cancel()

		// Attempt graceful shutdown
		slog.Info("server shutting down...")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced server shutdown: %w", err)
		}
		return nil
	}
}
