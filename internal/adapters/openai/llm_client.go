package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/utils"
)

// OpenAIClient is an implementation of the Summarizer and Replier interfaces
// using OpenAI
type OpenAIClient struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	reply         core.ReplyOptions
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	reply core.ReplyOptions,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		reply:         reply,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Summarize asks a chat model for a one or two sentence synopsis of the message
func (c *OpenAIClient) Summarize(ctx context.Context, msg *core.MessageRecord) (*core.Summary, error) {
	content := c.textProcessor.PromptContent(msg.Preview, msg.Subject, c.maxBodySize)

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize emails for a daily inbox digest. Reply with plain text only.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: core.SummaryPrompt(msg, content),
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	summary := core.CleanSummary(resp.Choices[0].Message.Content)
	if summary == "" {
		return nil, fmt.Errorf("empty response from OpenAI")
	}

	c.logger.Debug("Generated summary",
		zap.String("model", c.modelName),
		zap.String("processing_id", resp.ID))

	return &core.Summary{
		Text:        summary,
		ModelUsed:   c.modelName,
		GeneratedAt: time.Now(),
	}, nil
}

// DraftReply asks a chat model for a short professional answer to body
func (c *OpenAIClient) DraftReply(ctx context.Context, body string) (*core.ReplyDraft, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: core.ReplyPrompt(c.textProcessor.ProcessText(body, c.maxBodySize)),
			},
		},
		MaxTokens:   c.reply.MaxTokens,
		Temperature: c.reply.Temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}

	var text string
	if len(resp.Choices) > 0 {
		text = strings.TrimSpace(resp.Choices[0].Message.Content)
	}

	c.logger.Debug("Generated reply",
		zap.String("model", c.modelName),
		zap.String("processing_id", resp.ID))

	return &core.ReplyDraft{
		Text:        text,
		ModelUsed:   c.modelName,
		GeneratedAt: time.Now(),
	}, nil
}
