package gemini

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/config"
	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/utils"
)

// Factory creates new instances of GeminiClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for GeminiClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateClient creates a new GeminiClient
func (f *Factory) CreateClient() (*GeminiClient, error) {
	replyCfg := f.cfg.GetReply()
	geminiCfg := f.cfg.GetGemini()
	if geminiCfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	return NewGeminiClient(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		GenerationSettings{
			MaxTokens:   geminiCfg.MaxTokens,
			Temperature: geminiCfg.Temperature,
			TopP:        geminiCfg.TopP,
			TopK:        geminiCfg.TopK,
		},
		core.ReplyOptions{MaxTokens: replyCfg.MaxTokens, Temperature: replyCfg.Temperature},
		geminiCfg.MaxBodySize,
		f.logger,
		f.textProcessor,
	)
}
