package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/dom"
)

// MessageReader pulls the body of the opened message out of the mail view
type MessageReader struct {
	source  dom.Source
	profile Profile
	logger  *zap.Logger
}

// NewMessageReader creates a reader over source
func NewMessageReader(source dom.Source, profile Profile, logger *zap.Logger) *MessageReader {
	return &MessageReader{
		source:  source,
		profile: profile,
		logger:  logger,
	}
}

// ReadOpenMessage returns the trimmed text of the first body selector with
// content, or "" when no message is open
func (r *MessageReader) ReadOpenMessage(ctx context.Context) (string, error) {
	doc, err := r.source.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to snapshot mail view: %w", err)
	}
	if doc == nil {
		return "", nil
	}

	for _, sel := range r.profile.MessageBodySelectors {
		if body := bodyText(doc, sel); body != "" {
			r.logger.Debug("Found open message", zap.String("selector", sel), zap.Int("length", len(body)))
			return body, nil
		}
	}
	return "", nil
}

func bodyText(doc dom.Document, sel string) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()
	el := doc.Query(sel)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
