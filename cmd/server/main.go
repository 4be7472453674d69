package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cylinderlog/internal/config"
	"cylinderlog/internal/facility"
	"cylinderlog/internal/logging"
	"cylinderlog/internal/session"
	"cylinderlog/internal/web"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"store_database", cfg.Store.Database,
		"store_collection", cfg.Store.Collection,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	// Load the facility list (built-in defaults unless a file overrides them)
	facilities, err := facility.Load(cfg.Facility.File)
	if err != nil {
		slog.Error("failed to load facility list", "error", err)
		os.Exit(1)
	}
	slog.Info("facilities loaded", "count", len(facilities.Names()))

	// Session registry with background expiry sweeper
	sessions := session.NewManager(cfg.Session.TTL)
	sweepCtx, cancelSweeper := context.WithCancel(context.Background())
	go sessions.StartSweeper(sweepCtx, 10*time.Minute)

	// No store connection is opened here: every operation dials with the
	// signed-in user's credentials and closes its connection afterwards.
	server := web.NewServer(cfg, sessions, facilities, web.MongoStoreFactory(cfg.Store))

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")
		cancelSweeper()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	// Start server (uses addr from config internally)
	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
