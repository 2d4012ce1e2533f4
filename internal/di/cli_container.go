package di

import (
	"io"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/config"
	"github.com/mikey/mailmind/internal/factory"
	"github.com/mikey/mailmind/internal/logging"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	ConfigFile string
	Verbose    bool
	JSONLog    bool

	// Document source overrides
	InputFile string
	RemoteURL string
	URL       string
	Headless  bool

	// Summary overrides
	Provider     string
	MaxSummaries int
	NoCache      bool
	Notify       string

	// Out receives rendered output; nil means stdout
	Out io.Writer
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		cfg, err := config.Load(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		if used := cfg.GetViper().ConfigFileUsed(); used != "" {
			logger.Info("Loaded configuration from file", zap.String("file", used))
		}
		applyFlags(cfg, flags)
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register notifier factory
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger, flags *CLIFlags) *factory.NotifierFactory {
		return factory.NewNotifierFactory(cfg, logger, flags.Out, flags.Verbose)
	}); err != nil {
		return nil, err
	}

	if err := provideServices(container); err != nil {
		return nil, err
	}
	return container, nil
}

// applyFlags lets explicit command line flags win over file and environment
func applyFlags(cfg *config.Config, flags *CLIFlags) {
	v := cfg.GetViper()
	if flags.InputFile != "" {
		v.Set("source.type", "file")
		v.Set("source.file_path", flags.InputFile)
	}
	if flags.RemoteURL != "" {
		v.Set("browser.remote_url", flags.RemoteURL)
	}
	if flags.URL != "" {
		v.Set("browser.url", flags.URL)
	}
	if flags.Headless {
		v.Set("browser.headless", true)
	}
	if flags.Provider != "" {
		v.Set("llm.provider", flags.Provider)
	}
	if flags.MaxSummaries > 0 {
		v.Set("digest.max_summaries", flags.MaxSummaries)
	}
	if flags.NoCache {
		v.Set("cache.enabled", false)
	}
	if flags.Notify != "" {
		v.Set("notify.type", flags.Notify)
	}
}
