package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/di"
	"github.com/mikey/mailmind/internal/dom"
	"github.com/mikey/mailmind/internal/ports"
)

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Summarise today's emails and deliver the digest once",
	RunE:  runDigest,
}

func init() {
	f := digestCmd.Flags()
	f.StringVar(&flags.Provider, "provider", "", "LLM provider (gemini, openai, bedrock)")
	f.IntVar(&flags.MaxSummaries, "max-summaries", 0, "Maximum number of emails to summarise")
	f.BoolVar(&flags.NoCache, "no-cache", false, "Always ask the model")
	f.StringVar(&flags.Notify, "notify", "", "Delivery (console, smtp)")
}

func runDigest(cmd *cobra.Command, _ []string) error {
	flags.Out = cmd.OutOrStdout()
	container, err := di.BuildCLIContainer(&flags)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}

	return container.Invoke(func(
		logger *zap.Logger,
		src dom.Source,
		service *core.DigestService,
		summarizer core.Summarizer,
		cache core.SummaryCache,
		notifier ports.Notifier,
	) error {
		defer logger.Sync()
		defer closeSource(logger, src)
		defer release(logger, summarizer, cache)

		start := time.Now()
		digest, err := service.BuildDigest(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("build digest: %w", err)
		}
		logger.Debug("Digest built",
			zap.Int("entries", len(digest.Entries)),
			zap.Duration("took", time.Since(start)))

		return notifier.Deliver(commandContext(cmd), digest)
	})
}

// release closes the model client and stops cache cleanup
func release(logger *zap.Logger, summarizer core.Summarizer, cache core.SummaryCache) {
	if closer, ok := summarizer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}
	if stopper, ok := cache.(interface{ Stop() }); ok {
		stopper.Stop()
	}
}
