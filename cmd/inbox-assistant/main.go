package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/inbox-assistant/internal/adapters/mongostore"
	"github.com/mikey/inbox-assistant/internal/config"
	"github.com/mikey/inbox-assistant/internal/core"
	"github.com/mikey/inbox-assistant/internal/di"
	"github.com/mikey/inbox-assistant/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	cfg *config.Config,
	httpServer *server.HTTPServer,
	store *mongostore.Store,
	llm core.TextGenerator,
	cache core.EnrichmentCache,
) error {
	defer logger.Sync()

	// Start the HTTP server
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start(cfg.GetString("server.listen_address"))
	}()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("HTTP server stopped unexpectedly", zap.Error(err))
	case <-sigCh:
		logger.Info("Shutting down...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := llm.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if stopper, ok := cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}
	if err := store.Close(ctx); err != nil {
		logger.Error("Failed to close document store", zap.Error(err))
	}

	logger.Info("Shutdown complete")
	return nil
}
