package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestConfigureModel(t *testing.T) {
	model := &genai.GenerativeModel{}
	configureModel(model, GenerationSettings{MaxTokens: 300, Temperature: 0.6, TopP: 1, TopK: 32})

	cfg := model.GenerationConfig
	if cfg.TopK == nil || *cfg.TopK != 32 {
		t.Errorf("TopK = %v, want 32", cfg.TopK)
	}
	if cfg.MaxOutputTokens == nil || *cfg.MaxOutputTokens != 300 {
		t.Errorf("MaxOutputTokens = %v, want 300", cfg.MaxOutputTokens)
	}
	if cfg.Temperature == nil || *cfg.Temperature != 0.6 {
		t.Errorf("Temperature = %v, want 0.6", cfg.Temperature)
	}
}

func TestConfigureModelWithoutTopK(t *testing.T) {
	model := &genai.GenerativeModel{}
	configureModel(model, GenerationSettings{MaxTokens: 200, Temperature: 0.4, TopP: 1})
	if model.GenerationConfig.TopK != nil {
		t.Errorf("TopK = %d, want unset", *model.GenerationConfig.TopK)
	}
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text("Thanks, "), genai.Text("see you then.")}},
		}},
	}
	if got := responseText(resp); got != "Thanks, see you then." {
		t.Errorf("responseText = %q", got)
	}
	if got := responseText(&genai.GenerateContentResponse{}); got != "" {
		t.Errorf("responseText(empty) = %q", got)
	}
}
