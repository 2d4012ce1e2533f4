package extract

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/dom"
	"github.com/mikey/mailmind/internal/retry"
)

// ErrNotReady is returned when no readiness marker appeared in time
var ErrNotReady = errors.New("mailbox view not ready")

// Gate polls a source until the mailbox view has rendered
type Gate struct {
	markers  []string
	poll     retry.Policy
	attempts retry.Policy
	sleep    retry.Sleeper
	logger   *zap.Logger
}

// NewGate creates a readiness gate. poll bounds one wait, attempts bounds
// the outer retry loop around it.
func NewGate(markers []string, poll, attempts retry.Policy, sleep retry.Sleeper, logger *zap.Logger) *Gate {
	return &Gate{
		markers:  markers,
		poll:     poll,
		attempts: attempts,
		sleep:    sleep,
		logger:   logger,
	}
}

// WaitUntilReady polls for any readiness marker at a fixed interval
func (g *Gate) WaitUntilReady(ctx context.Context, src dom.Source) error {
	state, err := retry.Do(ctx, g.poll, g.sleep, func(ctx context.Context, _ int) bool {
		return g.ready(ctx, src)
	})
	if err != nil {
		return err
	}
	if state != retry.Succeeded {
		return fmt.Errorf("%w after %d polls", ErrNotReady, g.poll.MaxAttempts)
	}
	return nil
}

// WaitWithRetries repeats WaitUntilReady with linearly growing pauses
func (g *Gate) WaitWithRetries(ctx context.Context, src dom.Source) error {
	var lastErr error
	state, err := retry.Do(ctx, g.attempts, g.sleep, func(ctx context.Context, n int) bool {
		lastErr = g.WaitUntilReady(ctx, src)
		if lastErr != nil {
			g.logger.Info("Mailbox load attempt failed", zap.Int("attempt", n), zap.Error(lastErr))
			return false
		}
		return true
	})
	if err != nil {
		return err
	}
	if state != retry.Succeeded {
		return fmt.Errorf("gave up after %d attempts: %w", g.attempts.MaxAttempts, lastErr)
	}
	return nil
}

func (g *Gate) ready(ctx context.Context, src dom.Source) bool {
	doc, err := src.Snapshot(ctx)
	if err != nil {
		g.logger.Debug("Snapshot failed while waiting for mailbox", zap.Error(err))
		return false
	}
	for _, marker := range g.markers {
		if doc.Query(marker) != nil {
			g.logger.Debug("Mailbox view detected", zap.String("marker", marker))
			return true
		}
	}
	return false
}

// Default readiness timings
const (
	DefaultPollInterval = 500 * time.Millisecond
	DefaultMaxPolls     = 30
	DefaultLoadAttempts = 5
	DefaultLoadBackoff  = time.Second
)
