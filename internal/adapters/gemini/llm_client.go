package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/utils"
)

// GenerationSettings are the sampling parameters applied to a model
type GenerationSettings struct {
	MaxTokens   int
	Temperature float32
	TopP        float32
	TopK        int
}

// GeminiClient is an implementation of the Summarizer and Replier interfaces
// using Google Gemini
type GeminiClient struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	replyModel    *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(
	apiKey string,
	modelName string,
	settings GenerationSettings,
	reply core.ReplyOptions,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	configureModel(model, settings)

	replySettings := settings
	replySettings.MaxTokens = reply.MaxTokens
	replySettings.Temperature = reply.Temperature
	replyModel := client.GenerativeModel(modelName)
	configureModel(replyModel, replySettings)

	return &GeminiClient{
		client:        client,
		model:         model,
		replyModel:    replyModel,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// configureModel applies sampling settings; a zero TopK leaves the model default
func configureModel(model *genai.GenerativeModel, s GenerationSettings) {
	model.SetTemperature(s.Temperature)
	model.SetTopP(s.TopP)
	if s.TopK > 0 {
		model.SetTopK(int32(s.TopK))
	}
	model.SetMaxOutputTokens(int32(s.MaxTokens))
}

// Close closes the Gemini client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Summarize asks Gemini for a one or two sentence synopsis of the message
func (c *GeminiClient) Summarize(ctx context.Context, msg *core.MessageRecord) (*core.Summary, error) {
	content := c.textProcessor.PromptContent(msg.Preview, msg.Subject, c.maxBodySize)
	prompt := core.SummaryPrompt(msg, content)

	text, err := c.generate(ctx, c.model, prompt)
	if err != nil {
		return nil, err
	}
	summary := core.CleanSummary(text)
	if summary == "" {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	c.logger.Debug("Generated summary",
		zap.String("model", c.modelName),
		zap.Int("length", len(summary)))

	return &core.Summary{
		Text:        summary,
		ModelUsed:   c.modelName,
		GeneratedAt: time.Now(),
	}, nil
}

// DraftReply asks Gemini for a short professional answer to body
func (c *GeminiClient) DraftReply(ctx context.Context, body string) (*core.ReplyDraft, error) {
	prompt := core.ReplyPrompt(c.textProcessor.ProcessText(body, c.maxBodySize))

	text, err := c.generate(ctx, c.replyModel, prompt)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Generated reply",
		zap.String("model", c.modelName),
		zap.Int("length", len(text)))

	return &core.ReplyDraft{
		Text:        strings.TrimSpace(text),
		ModelUsed:   c.modelName,
		GeneratedAt: time.Now(),
	}, nil
}

func (c *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	return responseText(resp), nil
}

// responseText joins the text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
