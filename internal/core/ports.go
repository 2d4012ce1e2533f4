package core

import (
	"context"
)

// Extractor scans the inbox view for messages received today
type Extractor interface {
	// ExtractMessagesReceivedToday never fails; problems are reported in the
	// result's diagnostic
	ExtractMessagesReceivedToday(ctx context.Context) ExtractionResult
}

// Summarizer defines the interface for generating message summaries
type Summarizer interface {
	// Summarize produces a short synopsis of one message
	Summarize(ctx context.Context, msg *MessageRecord) (*Summary, error)
}

// Replier drafts answers to a message body
type Replier interface {
	DraftReply(ctx context.Context, body string) (*ReplyDraft, error)
}

// LLMClient is a model provider able to both summarise and reply
type LLMClient interface {
	Summarizer
	Replier
}

// MessageReader returns the body of the message currently open in the mail
// view, or "" when none is open
type MessageReader interface {
	ReadOpenMessage(ctx context.Context) (string, error)
}

// SummaryCache defines the interface for caching generated summaries
type SummaryCache interface {
	// Get retrieves a cached entry by message fingerprint
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// MuteChecker decides which senders are never summarised
type MuteChecker interface {
	IsMuted(sender string) bool
}
