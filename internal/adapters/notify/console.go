package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
)

// ConsoleNotifier prints digests to a terminal
type ConsoleNotifier struct {
	out     io.Writer
	logger  *zap.Logger
	verbose bool
}

// NewConsoleNotifier creates a notifier writing to out, or stdout when nil
func NewConsoleNotifier(out io.Writer, logger *zap.Logger, verbose bool) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{
		out:     out,
		logger:  logger,
		verbose: verbose,
	}
}

// Deliver prints the digest
func (n *ConsoleNotifier) Deliver(ctx context.Context, d *core.Digest) error {
	n.logger.Debug("Printing digest", zap.Int("entries", len(d.Entries)))
	if err := RenderText(n.out, d, n.verbose); err != nil {
		return fmt.Errorf("failed to print digest: %w", err)
	}
	return nil
}
