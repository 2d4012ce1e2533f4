package ports

import (
	"context"

	"github.com/mikey/mailmind/internal/core"
)

// Notifier defines the interface for delivering digests
type Notifier interface {
	// Deliver hands one digest to its audience
	Deliver(ctx context.Context, d *core.Digest) error
}
