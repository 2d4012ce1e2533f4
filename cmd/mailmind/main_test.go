package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mikey/mailmind/internal/core"
)

const page = `<html><body><div role="main"><table><tbody>
<tr class="zA zE">
  <td><span class="yP" email="ops@example.com">Ops</span></td>
  <td><span class="bog">Deploy done</span><span class="y2">All green</span></td>
  <td class="xW"><span>Today</span></td>
</tr>
<tr class="zA">
  <td><span class="yP" email="old@example.com">Old</span></td>
  <td><span class="bog">Last week</span><span class="y2">Stale</span></td>
  <td class="xW"><span>Yesterday</span></td>
</tr>
</tbody></table></div></body></html>`

func TestExtract_FileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inbox.html")
	if err := os.WriteFile(path, []byte(page), 0o600); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"extract", "--file", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flags.InputFile = ""
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("extract: %v", err)
	}

	var got core.ExtractionResult
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out.String())
	}
	want := []core.MessageRecord{{
		Sender:   "ops@example.com",
		Subject:  "Deploy done",
		Preview:  "All green",
		TimeText: "Today",
		IsUnread: true,
	}}
	if diff := cmp.Diff(want, got.Messages); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if got.UnreadCount != 1 {
		t.Errorf("UnreadCount = %d, want 1", got.UnreadCount)
	}
}

const openedMessage = `<html><body><div role="main">
<div class="ii gt"><div class="a3s aiL">Can you send the slides before Friday?</div></div>
</div></body></html>`

func TestReply_DraftsFromOpenMessage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "message.html")
	if err := os.WriteFile(path, []byte(openedMessage), 0o600); err != nil {
		t.Fatal(err)
	}

	var prompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Messages) > 0 {
			prompt = req.Messages[len(req.Messages)-1].Content
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","choices":[{"message":{"role":"assistant","content":"Sure, I'll send them Thursday."}}]}`))
	}))
	defer srv.Close()

	t.Setenv("MAILMIND_OPENAI_API_KEY", "test-key")
	t.Setenv("MAILMIND_OPENAI_BASE_URL", srv.URL+"/v1")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"reply", "--file", path, "--provider", "openai"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flags.InputFile = ""
		flags.Provider = ""
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("reply: %v", err)
	}
	if got := out.String(); got != "Sure, I'll send them Thursday.\n" {
		t.Errorf("output = %q", got)
	}
	if !strings.Contains(prompt, "Can you send the slides before Friday?") {
		t.Errorf("prompt = %q", prompt)
	}
}
