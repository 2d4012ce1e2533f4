package di

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mikey/mailmind/internal/config"
	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/ports"
)

const inboxPage = `<html><body><div role="main"><table><tbody>
<tr class="zA zE">
  <td><span class="yP" email="a@b.com">Alice</span></td>
  <td><span class="bog">Hi</span><span class="y2">Hello</span></td>
  <td class="xW"><span>Today</span></td>
</tr>
</tbody></table></div></body></html>`

func TestApplyFlags(t *testing.T) {
	cfg := config.NewFromViper(config.NewEmptyViper())
	applyFlags(cfg, &CLIFlags{
		InputFile:    "/tmp/inbox.html",
		URL:          "https://mail.example.com/#inbox/abc",
		Provider:     "openai",
		MaxSummaries: 3,
		NoCache:      true,
		Notify:       "smtp",
	})

	if src := cfg.GetSource(); src.Type != "file" || src.FilePath != "/tmp/inbox.html" {
		t.Errorf("GetSource = %+v", src)
	}
	if got := cfg.GetBrowser().URL; got != "https://mail.example.com/#inbox/abc" {
		t.Errorf("browser URL = %q", got)
	}
	if cfg.GetLLM().Provider != "openai" || cfg.GetDigest().MaxSummaries != 3 {
		t.Errorf("provider/max summaries not applied")
	}
	if cfg.GetCache().Enabled {
		t.Error("cache still enabled")
	}
	if cfg.GetString("notify.type") != "smtp" {
		t.Error("notifier not applied")
	}
}

func TestCLIContainerExtractsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.html")
	if err := os.WriteFile(path, []byte(inboxPage), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	container, err := BuildCLIContainer(&CLIFlags{InputFile: path, Out: &out})
	if err != nil {
		t.Fatalf("BuildCLIContainer: %v", err)
	}

	err = container.Invoke(func(extractor core.Extractor, notifier ports.Notifier) error {
		result := extractor.ExtractMessagesReceivedToday(context.Background())
		if len(result.Messages) != 1 || result.Messages[0].Sender != "a@b.com" {
			t.Errorf("result = %+v", result)
		}
		return notifier.Deliver(context.Background(), &core.Digest{Extraction: result})
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !strings.Contains(out.String(), "Emails today: 1 (1 unread)") {
		t.Errorf("console output = %q", out.String())
	}
}
