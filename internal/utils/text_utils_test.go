package utils

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{"no limit", "hello", 0, "hello"},
		{"within limit", "hello", 5, "hello"},
		{"cut", "hello world", 5, "hello" + TruncationMarker},
		{"multibyte boundary", "héllo", 2, "h" + TruncationMarker},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tp.TruncateText(tt.text, tt.max); got != tt.want {
				t.Errorf("TruncateText(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
			}
		})
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())
	if got := tp.SanitizeUTF8("ok\xffay"); got != "okay" {
		t.Errorf("SanitizeUTF8 = %q, want okay", got)
	}
}

func TestPromptContent(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())
	if got := tp.PromptContent("  the preview ", "subject", 100); got != "the preview" {
		t.Errorf("PromptContent = %q", got)
	}
	if got := tp.PromptContent("", "subject only", 100); got != "subject only" {
		t.Errorf("PromptContent fallback = %q", got)
	}
	if got := tp.PromptContent(strings.Repeat("a", 50), "", 10); !strings.HasSuffix(got, TruncationMarker) {
		t.Errorf("PromptContent did not truncate: %q", got)
	}
}
