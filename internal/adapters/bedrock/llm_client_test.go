package bedrock

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/utils"
)

var testReply = core.ReplyOptions{MaxTokens: 300, Temperature: 0.6}

func newTestClient(modelID string) *BedrockClient {
	return newClientWithRuntime(nil, modelID)
}

func newClientWithRuntime(rt *bedrockruntime.Client, modelID string) *BedrockClient {
	logger := zap.NewNop()
	return NewBedrockClient(rt, modelID, 200, 0.4, 1, testReply, 2048, logger, utils.NewTextProcessor(logger))
}

func TestBuildPayload(t *testing.T) {
	tests := []struct {
		model string
		key   string
	}{
		{"anthropic.claude-v2", "max_tokens_to_sample"},
		{"amazon.titan-text-express-v1", "textGenerationConfig"},
		{"meta.llama3-8b-instruct-v1:0", "max_tokens"},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			payload, err := newTestClient(tt.model).buildPayload("hello", 200, 0.4)
			if err != nil {
				t.Fatalf("buildPayload: %v", err)
			}
			var fields map[string]interface{}
			if err := json.Unmarshal(payload, &fields); err != nil {
				t.Fatal(err)
			}
			if _, ok := fields[tt.key]; !ok {
				t.Errorf("payload %s lacks %q", payload, tt.key)
			}
		})
	}
}

func TestAnthropicPromptFraming(t *testing.T) {
	payload, _ := newTestClient("anthropic.claude-v2").buildPayload("hello", 200, 0.4)
	var fields struct {
		Prompt string `json:"prompt"`
	}
	if err := json.Unmarshal(payload, &fields); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(fields.Prompt, "\n\nHuman: hello") || !strings.HasSuffix(fields.Prompt, "\n\nAssistant:") {
		t.Errorf("prompt = %q", fields.Prompt)
	}
}

func TestParseCompletion(t *testing.T) {
	tests := []struct {
		model   string
		body    string
		want    string
		wantErr bool
	}{
		{"anthropic.claude-v2", `{"completion":" Lunch moved to noon."}`, " Lunch moved to noon.", false},
		{"amazon.titan-text-lite-v1", `{"results":[{"outputText":"Invoice due Friday."}]}`, "Invoice due Friday.", false},
		{"amazon.titan-text-lite-v1", `{"results":[]}`, "", true},
		{"meta.llama3", `{"text":"Call Bob."}`, "Call Bob.", false},
		{"meta.llama3", `{"other":1}`, `{"other":1}`, false},
		{"anthropic.claude-v2", `not json`, "", true},
	}
	for _, tt := range tests {
		got, err := newTestClient(tt.model).parseCompletion([]byte(tt.body))
		if (err != nil) != tt.wantErr {
			t.Errorf("%s %s: err = %v, wantErr %v", tt.model, tt.body, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%s %s: got %q, want %q", tt.model, tt.body, got, tt.want)
		}
	}
}

func TestDraftReply(t *testing.T) {
	var path string
	var sent struct {
		Prompt      string  `json:"prompt"`
		MaxTokens   int     `json:"max_tokens_to_sample"`
		Temperature float32 `json:"temperature"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &sent); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"completion":" Happy to help, Thursday works. "}`)
	}))
	defer srv.Close()

	rt := bedrockruntime.New(bedrockruntime.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(srv.URL),
		Credentials:  aws.AnonymousCredentials{},
	})
	c := newClientWithRuntime(rt, "anthropic.claude-v2")

	draft, err := c.DraftReply(context.Background(), "Can we meet Thursday?")
	if err != nil {
		t.Fatalf("DraftReply: %v", err)
	}
	if draft.Text != "Happy to help, Thursday works." || draft.ModelUsed != "anthropic.claude-v2" {
		t.Errorf("draft = %+v", draft)
	}
	if !strings.HasSuffix(path, "/model/anthropic.claude-v2/invoke") {
		t.Errorf("path = %q", path)
	}
	if sent.MaxTokens != 300 || sent.Temperature != 0.6 {
		t.Errorf("reply settings = %d, %v", sent.MaxTokens, sent.Temperature)
	}
	if !strings.Contains(sent.Prompt, core.ReplyPrompt("Can we meet Thursday?")) {
		t.Errorf("prompt = %q", sent.Prompt)
	}
}
