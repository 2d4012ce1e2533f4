package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/retry"
)

// DefaultMaxSummaries bounds how many messages one digest summarises
const DefaultMaxSummaries = 10

// DigestService is the core service turning today's inbox into a digest
type DigestService struct {
	extractor    Extractor
	summarizer   Summarizer
	cache        SummaryCache
	muter        MuteChecker
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	maxSummaries int
	pace         time.Duration
	now          func() time.Time
	sleep        retry.Sleeper
}

// NewDigestService creates a new digest service
func NewDigestService(
	extractor Extractor,
	summarizer Summarizer,
	cache SummaryCache,
	muter MuteChecker,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	maxSummaries int,
	pace time.Duration,
) *DigestService {
	if maxSummaries <= 0 {
		maxSummaries = DefaultMaxSummaries
	}
	return &DigestService{
		extractor:    extractor,
		summarizer:   summarizer,
		cache:        cache,
		muter:        muter,
		logger:       logger,
		cacheEnabled: cacheEnabled && cache != nil,
		cacheTTL:     cacheTTL,
		maxSummaries: maxSummaries,
		pace:         pace,
		now:          time.Now,
		sleep:        retry.Sleep,
	}
}

// SetClock replaces the time source and the pause between model calls
func (s *DigestService) SetClock(now func() time.Time, sleep retry.Sleeper) {
	s.now = now
	s.sleep = sleep
}

// BuildDigest extracts today's messages and summarises the first of them.
// Summaries that fail are recorded on their entry; only cancellation aborts.
func (s *DigestService) BuildDigest(ctx context.Context) (*Digest, error) {
	result := s.extractor.ExtractMessagesReceivedToday(ctx)
	s.logger.Info("Extracted today's messages",
		zap.Int("count", len(result.Messages)),
		zap.Int("unread", result.UnreadCount),
		zap.String("debug", result.Diagnostic))

	digest := &Digest{
		GeneratedAt: s.now(),
		Extraction:  result,
		Entries:     []DigestEntry{},
	}

	limit := min(len(result.Messages), s.maxSummaries)
	for i := 0; i < limit; i++ {
		entry, calledModel := s.Summarize(ctx, &result.Messages[i])
		digest.Entries = append(digest.Entries, entry)

		if calledModel && i < limit-1 {
			if err := s.sleep(ctx, s.pace); err != nil {
				return digest, fmt.Errorf("digest interrupted: %w", err)
			}
		}
	}
	return digest, ctx.Err()
}

// Summarize produces the digest entry for one message. The boolean reports
// whether the model was called.
func (s *DigestService) Summarize(ctx context.Context, msg *MessageRecord) (DigestEntry, bool) {
	entry := DigestEntry{Message: *msg}

	if s.muter != nil && s.muter.IsMuted(msg.Sender) {
		s.logger.Info("Skipping summary for muted sender",
			zap.String("sender", msg.Sender),
			zap.String("action", "mute_bypass"))
		entry.Summary = "Sender is muted"
		entry.Source = SourceMuted
		return entry, false
	}

	key := Fingerprint(msg)
	if s.cacheEnabled {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			s.logger.Debug("Cache hit for message", zap.String("fingerprint", key))
			entry.Summary = cached.Summary
			entry.Source = SourceCache
			entry.Model = cached.ModelUsed
			return entry, false
		}
	}

	summary, err := s.summarizer.Summarize(ctx, msg)
	if err != nil {
		s.logger.Warn("Failed to summarize message",
			zap.String("sender", msg.Sender),
			zap.Error(err))
		entry.Summary = "Unable to generate summary - " + err.Error()
		entry.Source = SourceError
		return entry, true
	}

	entry.Summary = summary.Text
	entry.Source = SourceModel
	entry.Model = summary.ModelUsed

	if s.cacheEnabled {
		now := s.now()
		cached := &CacheEntry{
			Key:       key,
			Summary:   summary.Text,
			ModelUsed: summary.ModelUsed,
			CreatedAt: now,
			ExpiresAt: now.Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, cached); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}
	return entry, true
}
