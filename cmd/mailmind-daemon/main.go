package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/config"
	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/di"
	"github.com/mikey/mailmind/internal/dom"
	"github.com/mikey/mailmind/internal/ports"
)

func main() {
	configFile := flag.String("config", "", "Path to config file")
	flag.Parse()

	// Build the dependency injection container
	container, err := di.BuildContainer(*configFile)
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
	cfg *config.Config,
	logger *zap.Logger,
	service *core.DigestService,
	notifier ports.Notifier,
	summarizer core.Summarizer,
	cache core.SummaryCache,
	src dom.Source,
) error {
	defer logger.Sync()

	interval := cfg.GetViper().GetDuration("daemon.interval")
	if interval <= 0 {
		return fmt.Errorf("invalid daemon.interval %q", cfg.GetString("daemon.interval"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("Starting digest loop", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		runOnce(ctx, logger, service, notifier)
		select {
		case <-ctx.Done():
			shutdown(logger, summarizer, cache, src)
			return nil
		case <-ticker.C:
		}
	}
}

// runOnce builds and delivers a single digest; failures are logged and the
// loop carries on
func runOnce(ctx context.Context, logger *zap.Logger, service *core.DigestService, notifier ports.Notifier) {
	digest, err := service.BuildDigest(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Error("Failed to build digest", zap.Error(err))
		}
		return
	}
	if err := notifier.Deliver(ctx, digest); err != nil {
		logger.Error("Failed to deliver digest", zap.Error(err))
		return
	}
	logger.Info("Digest delivered",
		zap.Int("messages", len(digest.Extraction.Messages)),
		zap.Int("entries", len(digest.Entries)))
}

func shutdown(logger *zap.Logger, summarizer core.Summarizer, cache core.SummaryCache, src dom.Source) {
	logger.Info("Shutting down...")

	// Close any resources that need closing
	if closer, ok := summarizer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if closer, ok := src.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close document source", zap.Error(err))
		}
	}

	// Stop the cache if needed
	if stopper, ok := cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
}
