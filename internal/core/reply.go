package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrNoOpenMessage is returned when the mail view shows no message body
var ErrNoOpenMessage = errors.New("no open message")

// ReplyService drafts a reply to the message open in the mail view
type ReplyService struct {
	reader  MessageReader
	replier Replier
	logger  *zap.Logger
}

// NewReplyService creates a new reply service
func NewReplyService(reader MessageReader, replier Replier, logger *zap.Logger) *ReplyService {
	return &ReplyService{
		reader:  reader,
		replier: replier,
		logger:  logger,
	}
}

// DraftReply reads the open message and asks the model for an answer
func (s *ReplyService) DraftReply(ctx context.Context) (*ReplyDraft, error) {
	body, err := s.reader.ReadOpenMessage(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read open message: %w", err)
	}
	if body == "" {
		return nil, ErrNoOpenMessage
	}
	s.logger.Debug("Drafting reply", zap.Int("body_length", len(body)))

	draft, err := s.replier.DraftReply(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("failed to draft reply: %w", err)
	}
	if strings.TrimSpace(draft.Text) == "" {
		s.logger.Warn("Model returned an empty reply", zap.String("model", draft.ModelUsed))
		draft.Text = DefaultReply
	}
	return draft, nil
}
