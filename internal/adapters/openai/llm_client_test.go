package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/utils"
)

// newTestClient serves reply from a fake chat endpoint and records the request
func newTestClient(t *testing.T, reply string, got *openai.ChatCompletionRequest) *OpenAIClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID: "chatcmpl-1",
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
			}},
		})
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	logger := zap.NewNop()
	return NewOpenAIClient(
		openai.NewClientWithConfig(cfg),
		"gpt-4o-mini",
		200, 0.4, 1,
		core.ReplyOptions{MaxTokens: 300, Temperature: 0.6},
		2048,
		logger,
		utils.NewTextProcessor(logger),
	)
}

func TestDraftReply(t *testing.T) {
	var req openai.ChatCompletionRequest
	c := newTestClient(t, "  Thursday works for me.\n", &req)

	draft, err := c.DraftReply(context.Background(), "Can we meet Thursday?")
	if err != nil {
		t.Fatalf("DraftReply: %v", err)
	}
	if draft.Text != "Thursday works for me." || draft.ModelUsed != "gpt-4o-mini" {
		t.Errorf("draft = %+v", draft)
	}
	if req.MaxTokens != 300 || req.Temperature != 0.6 {
		t.Errorf("request settings = max_tokens %d, temperature %v", req.MaxTokens, req.Temperature)
	}
	if len(req.Messages) != 1 || req.Messages[0].Content != core.ReplyPrompt("Can we meet Thursday?") {
		t.Errorf("messages = %+v", req.Messages)
	}
}

func TestSummarizeUsesSummarySettings(t *testing.T) {
	var req openai.ChatCompletionRequest
	c := newTestClient(t, "Summary: Alice asks to move the review.", &req)

	got, err := c.Summarize(context.Background(), &core.MessageRecord{
		Sender:  "alice@example.com",
		Subject: "Review",
		Preview: "Can we move it?",
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got.Text != "Alice asks to move the review." {
		t.Errorf("Text = %q", got.Text)
	}
	if req.MaxTokens != 200 || req.Temperature != 0.4 {
		t.Errorf("request settings = max_tokens %d, temperature %v", req.MaxTokens, req.Temperature)
	}
}
