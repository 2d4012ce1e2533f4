// Package extract mines inbox rows out of a loosely structured webmail
// document and keeps the ones received today.
package extract

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/dom"
	"github.com/mikey/mailmind/internal/retry"
	"github.com/mikey/mailmind/internal/timetext"
)

// DefaultEmptyRetryDelay is the pause before rescanning a view with no rows
const DefaultEmptyRetryDelay = time.Second

// Options tunes timings and limits of an Engine
type Options struct {
	PollInterval    time.Duration
	MaxPolls        int
	LoadAttempts    int
	LoadBackoff     time.Duration
	EmptyRetryDelay time.Duration
	MaxRows         int
}

// DefaultOptions returns the timings the Gmail view is tuned for
func DefaultOptions() Options {
	return Options{
		PollInterval:    DefaultPollInterval,
		MaxPolls:        DefaultMaxPolls,
		LoadAttempts:    DefaultLoadAttempts,
		LoadBackoff:     DefaultLoadBackoff,
		EmptyRetryDelay: DefaultEmptyRetryDelay,
		MaxRows:         DefaultMaxRows,
	}
}

// Engine runs readiness, row discovery, field extraction and the today
// filter against a document source. It keeps no state between calls.
type Engine struct {
	source    dom.Source
	gate      *Gate
	locator   *Locator
	extractor *RowExtractor
	opts      Options
	now       func() time.Time
	sleep     retry.Sleeper
	logger    *zap.Logger
}

// Option customises an Engine
type Option func(*Engine)

// WithClock sets the reference time source for the today filter
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSleeper replaces real-time waits
func WithSleeper(s retry.Sleeper) Option {
	return func(e *Engine) { e.sleep = s }
}

// WithProfile replaces the Gmail signatures
func WithProfile(p Profile) Option {
	return func(e *Engine) { e.applyProfile(p) }
}

// NewEngine creates a new extraction engine
func NewEngine(source dom.Source, opts Options, logger *zap.Logger, options ...Option) *Engine {
	e := &Engine{
		source: source,
		opts:   opts,
		now:    time.Now,
		sleep:  retry.Sleep,
		logger: logger,
	}
	e.applyProfile(GmailProfile())
	for _, o := range options {
		o(e)
	}
	// The gate needs the final sleeper.
	e.gate.sleep = e.sleep
	return e
}

func (e *Engine) applyProfile(p Profile) {
	e.gate = NewGate(
		p.ReadinessMarkers,
		retry.Fixed(e.opts.MaxPolls, e.opts.PollInterval),
		retry.Linear(e.opts.LoadAttempts, e.opts.LoadBackoff),
		e.sleep,
		e.logger,
	)
	e.locator = NewLocator(p, e.opts.MaxRows, e.logger)
	e.extractor = NewRowExtractor(p, e.logger)
}

// ExtractMessagesReceivedToday scans the current document. It never returns
// an error: readiness failures and empty views are explained in Diagnostic.
func (e *Engine) ExtractMessagesReceivedToday(ctx context.Context) (result core.ExtractionResult) {
	result.Messages = []core.MessageRecord{}
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Extraction aborted", zap.Any("panic", r))
			result = core.ExtractionResult{
				Messages:   []core.MessageRecord{},
				Diagnostic: fmt.Sprintf("Extraction aborted: %v", r),
			}
		}
	}()

	if err := e.gate.WaitWithRetries(ctx, e.source); err != nil {
		e.logger.Warn("Mailbox view never became ready", zap.Error(err))
		result.Diagnostic = fmt.Sprintf("Inbox view not ready: %v", err)
		return result
	}

	rows, strategy, err := e.locate(ctx)
	if err != nil {
		result.Diagnostic = fmt.Sprintf("Row scan interrupted: %v", err)
		return result
	}
	if len(rows) == 0 {
		result.Diagnostic = "No email rows found in inbox view"
		return result
	}
	result.RowsScanned = len(rows)
	result.Strategy = strategy

	now := e.now()
	for _, row := range rows {
		rec, ok := e.extractor.Extract(row)
		if !ok || !timetext.IsToday(rec.TimeText, now) {
			continue
		}
		result.Messages = append(result.Messages, rec)
		if rec.IsUnread {
			result.UnreadCount++
		}
	}

	e.logger.Info("Inbox scanned",
		zap.String("strategy", strategy),
		zap.Int("rows", len(rows)),
		zap.Int("today", len(result.Messages)),
		zap.Int("unread", result.UnreadCount))
	result.Diagnostic = fmt.Sprintf("Processed %d rows, found %d today's emails", len(rows), len(result.Messages))
	return result
}

// locate scans a fresh snapshot, rescanning once after a pause when the view
// has no rows yet.
func (e *Engine) locate(ctx context.Context) ([]dom.Node, string, error) {
	var rows []dom.Node
	var strategy string
	_, err := retry.Do(ctx, retry.Fixed(2, e.opts.EmptyRetryDelay), e.sleep, func(ctx context.Context, n int) bool {
		doc, err := e.source.Snapshot(ctx)
		if err != nil {
			e.logger.Debug("Snapshot failed", zap.Int("scan", n), zap.Error(err))
			return false
		}
		rows, strategy = e.locator.LocateRows(doc)
		if len(rows) == 0 {
			e.logger.Info("No email rows found", zap.Int("scan", n))
		}
		return len(rows) > 0
	})
	return rows, strategy, err
}
