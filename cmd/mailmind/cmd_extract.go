package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/di"
	"github.com/mikey/mailmind/internal/dom"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Print today's inbox rows as JSON",
	RunE:  runExtract,
}

func runExtract(cmd *cobra.Command, _ []string) error {
	container, err := di.BuildCLIContainer(&flags)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}

	return container.Invoke(func(logger *zap.Logger, src dom.Source, extractor core.Extractor) error {
		defer logger.Sync()
		defer closeSource(logger, src)

		result := extractor.ExtractMessagesReceivedToday(commandContext(cmd))
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	})
}

func closeSource(logger *zap.Logger, src dom.Source) {
	if closer, ok := src.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close document source", zap.Error(err))
		}
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
