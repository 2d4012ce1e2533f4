package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(zap.NewNop(), 0)
	defer c.Stop()

	now := time.Date(2025, time.September, 6, 14, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	fresh := &core.CacheEntry{Key: "a", Summary: "Lunch at noon.", ModelUsed: "m", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	stale := &core.CacheEntry{Key: "b", Summary: "old", ModelUsed: "m", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)}
	for _, e := range []*core.CacheEntry{fresh, stale} {
		if err := c.Set(ctx, e); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	got, err := c.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(fresh, got); diff != "" {
		t.Errorf("Get mismatch (-want +got):\n%s", diff)
	}
	if _, err := c.Get(ctx, "b"); !errors.Is(err, ErrExpired) {
		t.Errorf("Get(expired) err = %v, want ErrExpired", err)
	}
	if _, err := c.Get(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) err = %v, want ErrNotFound", err)
	}

	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("Len after cleanup = %d, want 1", c.Len())
	}
	if err := c.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len after delete = %d, want 0", c.Len())
	}
}

func TestMemoryCacheStoresCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(zap.NewNop(), 0)
	entry := &core.CacheEntry{Key: "k", Summary: "first", ExpiresAt: time.Now().Add(time.Hour)}
	_ = c.Set(ctx, entry)
	entry.Summary = "mutated"

	got, _ := c.Get(ctx, "k")
	if got.Summary != "first" {
		t.Errorf("Summary = %q, want first", got.Summary)
	}
}

func TestSQLiteCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewSQLiteCache(filepath.Join(t.TempDir(), "cache.db"), zap.NewNop(), 0)
	if err != nil {
		t.Fatalf("NewSQLiteCache: %v", err)
	}
	defer c.Stop()

	now := time.Now().Truncate(time.Second)
	entry := &core.CacheEntry{Key: "fp", Summary: "Invoice due Friday.", ModelUsed: "gemini", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	if err := c.Set(ctx, entry); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := c.Get(ctx, "fp")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Summary != entry.Summary || got.ModelUsed != "gemini" || !got.ExpiresAt.Equal(entry.ExpiresAt) {
		t.Errorf("Get = %+v", got)
	}

	expired := &core.CacheEntry{Key: "old", Summary: "x", ModelUsed: "m", CreatedAt: now, ExpiresAt: now.Add(-time.Hour)}
	if err := c.Set(ctx, expired); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := c.Get(ctx, "old"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(expired) err = %v, want ErrNotFound", err)
	}
	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if err := c.Delete(ctx, "fp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := c.Get(ctx, "fp"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(deleted) err = %v, want ErrNotFound", err)
	}
}
