package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/di"
	"github.com/mikey/mailmind/internal/dom"
)

var replyCmd = &cobra.Command{
	Use:   "reply",
	Short: "Draft a reply to the opened message",
	Long:  "Reads the body of the message open in the mail view and prints a short\nreply drafted by the configured LLM. Nothing is sent.",
	RunE:  runReply,
}

func init() {
	replyCmd.Flags().StringVar(&flags.Provider, "provider", "", "LLM provider (gemini, openai, bedrock)")
}

func runReply(cmd *cobra.Command, _ []string) error {
	container, err := di.BuildCLIContainer(&flags)
	if err != nil {
		return fmt.Errorf("build container: %w", err)
	}

	return container.Invoke(func(
		logger *zap.Logger,
		src dom.Source,
		service *core.ReplyService,
		summarizer core.Summarizer,
	) error {
		defer logger.Sync()
		defer closeSource(logger, src)
		defer release(logger, summarizer, nil)

		draft, err := service.DraftReply(commandContext(cmd))
		if errors.Is(err, core.ErrNoOpenMessage) {
			return fmt.Errorf("no message is open; open one or pass --url")
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), draft.Text)
		return err
	})
}
