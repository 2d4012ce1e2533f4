// Package browser provides a live document source backed by a Chrome tab.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/dom"
	"github.com/mikey/mailmind/internal/dom/htmldoc"
)

// snapshotScript serialises a clone of the page. Computed font weights of the
// live elements are copied onto the clone so bold rows survive serialisation.
const snapshotScript = `(() => {
  const src = document.documentElement;
  const clone = src.cloneNode(true);
  const a = src.getElementsByTagName('*');
  const b = clone.getElementsByTagName('*');
  for (let i = 0; i < a.length && i < b.length; i++) {
    const w = getComputedStyle(a[i]).fontWeight;
    if (w && w !== '400' && w !== 'normal') {
      b[i].setAttribute('` + dom.ComputedWeightAttr + `', w);
    }
  }
  return clone.outerHTML;
})()`

// Config holds the browser connection settings
type Config struct {
	URL             string
	RemoteURL       string
	Headless        bool
	UserDataDir     string
	SnapshotTimeout time.Duration
}

// Source snapshots the DOM of a Chrome tab
type Source struct {
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	logger  *zap.Logger
}

// NewSource connects to (or launches) Chrome and opens the configured URL
func NewSource(cfg Config, logger *zap.Logger) (*Source, error) {
	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if cfg.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteURL)
		logger.Info("Attaching to running browser", zap.String("remote_url", cfg.RemoteURL))
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", cfg.Headless),
			chromedp.Flag("disable-gpu", true),
		)
		if cfg.UserDataDir != "" {
			opts = append(opts, chromedp.UserDataDir(cfg.UserDataDir))
		}
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
		logger.Info("Launching browser", zap.Bool("headless", cfg.Headless))
	}

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	cancel := func() {
		browserCancel()
		allocCancel()
	}

	if cfg.URL != "" {
		if err := chromedp.Run(browserCtx, chromedp.Navigate(cfg.URL)); err != nil {
			cancel()
			return nil, fmt.Errorf("failed to open %s: %w", cfg.URL, err)
		}
	}

	timeout := cfg.SnapshotTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Source{
		ctx:     browserCtx,
		cancel:  cancel,
		timeout: timeout,
		logger:  logger,
	}, nil
}

// Snapshot captures the current page state as a parsed document
func (s *Source) Snapshot(ctx context.Context) (dom.Document, error) {
	runCtx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	// Propagate caller cancellation into the browser context.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var page string
	if err := chromedp.Run(runCtx, chromedp.Evaluate(snapshotScript, &page)); err != nil {
		return nil, fmt.Errorf("failed to snapshot page: %w", err)
	}
	s.logger.Debug("Captured page snapshot", zap.Int("bytes", len(page)))

	doc, err := htmldoc.ParseString(page)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Close shuts down the browser tab and allocator
func (s *Source) Close() error {
	s.cancel()
	return nil
}
