package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/config"
	"github.com/mikey/mailmind/internal/dom"
	"github.com/mikey/mailmind/internal/dom/browser"
	"github.com/mikey/mailmind/internal/dom/htmldoc"
	"github.com/mikey/mailmind/internal/extract"
)

// SourceFactory creates document sources and the extraction engine over them
type SourceFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger) *SourceFactory {
	return &SourceFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSource opens the configured document host
func (f *SourceFactory) CreateSource() (dom.Source, error) {
	sourceCfg := f.cfg.GetSource()

	switch sourceCfg.Type {
	case "browser":
		browserCfg := f.cfg.GetBrowser()
		return browser.NewSource(browser.Config{
			URL:             browserCfg.URL,
			RemoteURL:       browserCfg.RemoteURL,
			Headless:        browserCfg.Headless,
			UserDataDir:     browserCfg.UserDataDir,
			SnapshotTimeout: browserCfg.SnapshotTimeout,
		}, f.logger)
	case "file":
		if sourceCfg.FilePath == "" {
			return nil, fmt.Errorf("source.file_path is required for file sources")
		}
		return htmldoc.NewFileSource(sourceCfg.FilePath), nil
	default:
		return nil, fmt.Errorf("unsupported source type: %s", sourceCfg.Type)
	}
}

// CreateEngine builds an extraction engine over src
func (f *SourceFactory) CreateEngine(src dom.Source) *extract.Engine {
	ex := f.cfg.GetExtract()
	opts := extract.DefaultOptions()
	if ex.ReadyPollInterval > 0 {
		opts.PollInterval = ex.ReadyPollInterval
	}
	if ex.ReadyMaxPolls > 0 {
		opts.MaxPolls = ex.ReadyMaxPolls
	}
	if ex.ReadyRetries > 0 {
		opts.LoadAttempts = ex.ReadyRetries
	}
	if ex.ReadyBackoff > 0 {
		opts.LoadBackoff = ex.ReadyBackoff
	}
	if ex.EmptyRetryDelay > 0 {
		opts.EmptyRetryDelay = ex.EmptyRetryDelay
	}
	if ex.MaxRows > 0 {
		opts.MaxRows = ex.MaxRows
	}

	return extract.NewEngine(src, opts, f.logger, extract.WithProfile(f.profile()))
}

// CreateMessageReader builds a reader for the message open in src
func (f *SourceFactory) CreateMessageReader(src dom.Source) *extract.MessageReader {
	return extract.NewMessageReader(src, f.profile(), f.logger)
}

func (f *SourceFactory) profile() extract.Profile {
	ex := f.cfg.GetExtract()
	return extract.GmailProfile().WithOverrides(ex.ReadinessMarkers, ex.RowSelectors)
}
