package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/adapters/bedrock"
	"github.com/mikey/mailmind/internal/adapters/gemini"
	"github.com/mikey/mailmind/internal/adapters/openai"
	"github.com/mikey/mailmind/internal/config"
	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/utils"
)

// LLMFactory creates model clients
type LLMFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewLLMFactory creates a new LLM factory
func NewLLMFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *LLMFactory {
	return &LLMFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a model client for the configured provider
func (f *LLMFactory) CreateClient() (core.LLMClient, error) {
	provider := f.cfg.GetLLM().Provider
	f.logger.Info("Creating LLM client", zap.String("provider", provider))

	var (
		client core.LLMClient
		err    error
	)
	switch provider {
	case "bedrock":
		client, err = bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	case "gemini":
		client, err = gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	case "openai":
		client, err = openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateClient()
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}
