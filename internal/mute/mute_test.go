package mute

import (
	"testing"

	"go.uber.org/zap"
)

func TestIsMuted(t *testing.T) {
	c := NewChecker([]string{" News.Example.com ", "", "ads.io"}, zap.NewNop())
	tests := []struct {
		sender string
		want   bool
	}{
		{"digest@news.example.com", true},
		{"DIGEST@NEWS.EXAMPLE.COM", true},
		{"Weekly <digest@news.example.com>", true},
		{"promo@mail.ads.io", true},
		{"someone@badads.io", false},
		{"friend@example.com", false},
		{"Alice", false},
		{"trailing@", false},
	}
	for _, tt := range tests {
		if got := c.IsMuted(tt.sender); got != tt.want {
			t.Errorf("IsMuted(%q) = %v, want %v", tt.sender, got, tt.want)
		}
	}
}

func TestEmptyChecker(t *testing.T) {
	var nilChecker *Checker
	if nilChecker.IsMuted("a@b.com") {
		t.Error("nil checker muted a sender")
	}
	if NewChecker(nil, nil).IsMuted("a@b.com") {
		t.Error("empty checker muted a sender")
	}
}
