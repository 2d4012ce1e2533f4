package bedrock

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/utils"
)

// BedrockClient is an implementation of the Summarizer and Replier interfaces
// using Amazon Bedrock
type BedrockClient struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTokens     int
	temperature   float32
	topP          float32
	reply         core.ReplyOptions
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewBedrockClient creates a new Bedrock client
func NewBedrockClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTokens int,
	temperature float32,
	topP float32,
	reply core.ReplyOptions,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *BedrockClient {
	return &BedrockClient{
		client:        client,
		modelID:       modelID,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		reply:         reply,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// Summarize invokes the configured Bedrock model for a short synopsis
func (c *BedrockClient) Summarize(ctx context.Context, msg *core.MessageRecord) (*core.Summary, error) {
	content := c.textProcessor.PromptContent(msg.Preview, msg.Subject, c.maxBodySize)
	prompt := core.SummaryPrompt(msg, content)

	text, err := c.invoke(ctx, prompt, c.maxTokens, c.temperature)
	if err != nil {
		return nil, err
	}
	summary := core.CleanSummary(text)
	if summary == "" {
		return nil, fmt.Errorf("empty response from Bedrock model %s", c.modelID)
	}

	c.logger.Debug("Generated summary",
		zap.String("model", c.modelID),
		zap.Int("length", len(summary)))

	return &core.Summary{
		Text:        summary,
		ModelUsed:   c.modelID,
		GeneratedAt: time.Now(),
	}, nil
}

// DraftReply invokes the configured Bedrock model for a short answer to body
func (c *BedrockClient) DraftReply(ctx context.Context, body string) (*core.ReplyDraft, error) {
	prompt := core.ReplyPrompt(c.textProcessor.ProcessText(body, c.maxBodySize))

	text, err := c.invoke(ctx, prompt, c.reply.MaxTokens, c.reply.Temperature)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Generated reply",
		zap.String("model", c.modelID),
		zap.Int("length", len(text)))

	return &core.ReplyDraft{
		Text:        strings.TrimSpace(text),
		ModelUsed:   c.modelID,
		GeneratedAt: time.Now(),
	}, nil
}

func (c *BedrockClient) invoke(ctx context.Context, prompt string, maxTokens int, temperature float32) (string, error) {
	payload, err := c.buildPayload(prompt, maxTokens, temperature)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request payload: %w", err)
	}

	resp, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		Body:        payload,
		Accept:      aws.String("application/json"),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}
	return c.parseCompletion(resp.Body)
}

func (c *BedrockClient) buildPayload(prompt string, maxTokens int, temperature float32) ([]byte, error) {
	switch {
	case c.isAnthropicModel():
		return json.Marshal(map[string]interface{}{
			"prompt":               "\n\nHuman: " + prompt + "\n\nAssistant:",
			"max_tokens_to_sample": maxTokens,
			"temperature":          temperature,
			"top_p":                c.topP,
		})
	case c.isAmazonTitanModel():
		return json.Marshal(map[string]interface{}{
			"inputText": prompt,
			"textGenerationConfig": map[string]interface{}{
				"maxTokenCount": maxTokens,
				"temperature":   temperature,
				"topP":          c.topP,
			},
		})
	default:
		return json.Marshal(map[string]interface{}{
			"prompt":      prompt,
			"max_tokens":  maxTokens,
			"temperature": temperature,
			"top_p":       c.topP,
		})
	}
}

func (c *BedrockClient) parseCompletion(body []byte) (string, error) {
	switch {
	case c.isAnthropicModel():
		var claudeResp struct {
			Completion string `json:"completion"`
		}
		if err := json.Unmarshal(body, &claudeResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Claude response: %w", err)
		}
		return claudeResp.Completion, nil
	case c.isAmazonTitanModel():
		var titanResp struct {
			Results []struct {
				OutputText string `json:"outputText"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &titanResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal Titan response: %w", err)
		}
		if len(titanResp.Results) == 0 {
			return "", fmt.Errorf("empty response from Titan model")
		}
		return titanResp.Results[0].OutputText, nil
	default:
		var genericResp struct {
			Output   string `json:"output"`
			Text     string `json:"text"`
			Response string `json:"response"`
		}
		if err := json.Unmarshal(body, &genericResp); err != nil {
			return "", fmt.Errorf("failed to unmarshal generic response: %w", err)
		}
		for _, text := range []string{genericResp.Output, genericResp.Text, genericResp.Response} {
			if text != "" {
				return text, nil
			}
		}
		return string(body), nil
	}
}

// isAnthropicModel checks if the model is an Anthropic Claude model
func (c *BedrockClient) isAnthropicModel() bool {
	return strings.HasPrefix(c.modelID, "anthropic.claude")
}

// isAmazonTitanModel checks if the model is an Amazon Titan model
func (c *BedrockClient) isAmazonTitanModel() bool {
	return strings.HasPrefix(c.modelID, "amazon.titan")
}
