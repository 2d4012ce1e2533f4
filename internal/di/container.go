package di

import (
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/config"
	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/dom"
	"github.com/mikey/mailmind/internal/extract"
	"github.com/mikey/mailmind/internal/factory"
	"github.com/mikey/mailmind/internal/logging"
	"github.com/mikey/mailmind/internal/mute"
	"github.com/mikey/mailmind/internal/ports"
	"github.com/mikey/mailmind/internal/utils"
)

// BuildContainer creates and configures a dependency injection container for
// the daemon
func BuildContainer(configFile string) (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(func() (*config.Config, error) {
		return config.Load(configFile)
	}); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register notifier factory; console digests go to stdout
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *factory.NotifierFactory {
		return factory.NewNotifierFactory(cfg, logger, nil, false)
	}); err != nil {
		return nil, err
	}

	if err := provideServices(container); err != nil {
		return nil, err
	}
	return container, nil
}

// provideServices registers everything downstream of configuration, logger
// and notifier factory.
func provideServices(container *dig.Container) error {
	// Register factories
	for _, ctor := range []interface{}{
		factory.NewLLMFactory,
		factory.NewCacheFactory,
		factory.NewSourceFactory,
	} {
		if err := container.Provide(ctor); err != nil {
			return err
		}
	}

	// Register text processor
	if err := container.Provide(utils.NewTextProcessor); err != nil {
		return err
	}

	// Register LLM client and the roles it plays
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateClient()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(c core.LLMClient) core.Summarizer {
		return c
	}); err != nil {
		return err
	}
	if err := container.Provide(func(c core.LLMClient) core.Replier {
		return c
	}); err != nil {
		return err
	}

	// Register summary cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.SummaryCache, error) {
		return f.CreateSummaryCache()
	}); err != nil {
		return err
	}

	// Register document source and engine
	if err := container.Provide(func(f *factory.SourceFactory) (dom.Source, error) {
		return f.CreateSource()
	}); err != nil {
		return err
	}
	if err := container.Provide(func(f *factory.SourceFactory, src dom.Source) *extract.Engine {
		return f.CreateEngine(src)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(e *extract.Engine) core.Extractor {
		return e
	}); err != nil {
		return err
	}

	// Register open message reader
	if err := container.Provide(func(f *factory.SourceFactory, src dom.Source) core.MessageReader {
		return f.CreateMessageReader(src)
	}); err != nil {
		return err
	}

	// Register mute checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.MuteChecker {
		return mute.NewChecker(cfg.GetDigest().MutedDomains, logger)
	}); err != nil {
		return err
	}

	// Register digest service
	if err := container.Provide(func(
		cfg *config.Config,
		extractor core.Extractor,
		summarizer core.Summarizer,
		cache core.SummaryCache,
		muter core.MuteChecker,
		logger *zap.Logger,
	) *core.DigestService {
		cacheCfg := cfg.GetCache()
		digestCfg := cfg.GetDigest()
		return core.NewDigestService(
			extractor,
			summarizer,
			cache,
			muter,
			logger,
			cacheCfg.Enabled,
			cacheCfg.TTL,
			digestCfg.MaxSummaries,
			digestCfg.Pace,
		)
	}); err != nil {
		return err
	}

	// Register reply service
	if err := container.Provide(core.NewReplyService); err != nil {
		return err
	}

	// Register notifier
	if err := container.Provide(func(f *factory.NotifierFactory) (ports.Notifier, error) {
		return f.CreateNotifier()
	}); err != nil {
		return err
	}

	return nil
}
