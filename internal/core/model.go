package core

import (
	"time"
)

// MessageRecord is one inbox row as read from the document
type MessageRecord struct {
	Sender   string `json:"sender"`
	Subject  string `json:"subject"`
	Preview  string `json:"preview"`
	TimeText string `json:"time"`
	IsUnread bool   `json:"isUnread"`
}

// IsNoise reports whether the record carries none of the identifying fields.
// Header rows and compose buttons end up here.
func (m MessageRecord) IsNoise() bool {
	return m.Sender == "" && m.Subject == "" && m.Preview == ""
}

// ExtractionResult is the outcome of one scan of the inbox view
type ExtractionResult struct {
	Messages    []MessageRecord `json:"emails"`
	UnreadCount int             `json:"unreadCount"`
	Diagnostic  string          `json:"debug"`
	RowsScanned int             `json:"rowsScanned"`
	Strategy    string          `json:"strategy,omitempty"`
}

// Summary is a generated synopsis of one message
type Summary struct {
	Text        string
	ModelUsed   string
	GeneratedAt time.Time
}

// Summary sources recorded on digest entries
const (
	SourceModel = "model"
	SourceCache = "cache"
	SourceMuted = "muted"
	SourceError = "error"
)

// DigestEntry pairs a message with its summary
type DigestEntry struct {
	Message MessageRecord `json:"message"`
	Summary string        `json:"summary"`
	Source  string        `json:"source"`
	Model   string        `json:"model,omitempty"`
}

// Digest is the daily overview handed to a notifier
type Digest struct {
	GeneratedAt time.Time        `json:"generatedAt"`
	Extraction  ExtractionResult `json:"extraction"`
	Entries     []DigestEntry    `json:"entries"`
}

// CacheEntry is a stored summary keyed by message fingerprint
type CacheEntry struct {
	Key       string
	Summary   string
	ModelUsed string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// ReplyDraft is a suggested answer to the message open in the mail view
type ReplyDraft struct {
	Text        string    `json:"text"`
	ModelUsed   string    `json:"model"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// ReplyOptions are the generation settings for reply drafts. Replies run
// warmer and longer than summaries.
type ReplyOptions struct {
	MaxTokens   int
	Temperature float32
}
