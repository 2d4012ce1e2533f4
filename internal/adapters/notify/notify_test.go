package notify

import (
	"bytes"
	"context"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
)

var refNow = time.Date(2025, time.September, 6, 14, 0, 0, 0, time.UTC)

func sampleDigest() *core.Digest {
	msgs := []core.MessageRecord{
		{Sender: "a@b.com", Subject: "Hi", Preview: "Hello", TimeText: "10:30 AM", IsUnread: true},
		{TimeText: "9:00 AM", Preview: "snippet"},
		{Sender: "c@d.com", Subject: "Third", TimeText: "8:00 AM"},
	}
	return &core.Digest{
		GeneratedAt: refNow,
		Extraction: core.ExtractionResult{
			Messages:    msgs,
			UnreadCount: 1,
			Diagnostic:  "Processed 5 rows, found 3 today's emails",
		},
		Entries: []core.DigestEntry{
			{Message: msgs[0], Summary: "Alice says hello.", Source: core.SourceModel, Model: "m"},
			{Message: msgs[1], Summary: "Unable to generate summary - boom", Source: core.SourceError},
		},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderText(&buf, sampleDigest(), true); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Emails today: 3 (1 unread)",
		"Debug: Processed 5 rows, found 3 today's emails",
		"[UNREAD] a@b.com  10:30 AM",
		"Summary: Alice says hello.",
		"Unknown Sender  9:00 AM",
		"Subject: No Subject",
		"... and 1 more not summarised",
		"Showing 3 emails received today only",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestRenderTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	d := &core.Digest{GeneratedAt: refNow, Extraction: core.ExtractionResult{Diagnostic: "No email rows found in inbox view"}}
	if err := RenderText(&buf, d, false); err != nil {
		t.Fatalf("RenderText: %v", err)
	}
	if !strings.Contains(buf.String(), "No emails received today.") {
		t.Errorf("output = %q", buf.String())
	}
	if strings.Contains(buf.String(), "Showing") {
		t.Errorf("empty digest carries a footer: %q", buf.String())
	}
}

func TestConsoleNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewConsoleNotifier(&buf, zap.NewNop(), false)
	if err := n.Deliver(context.Background(), sampleDigest()); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if strings.Contains(buf.String(), "Debug:") {
		t.Error("non-verbose output includes the diagnostic")
	}
}

type captureBackend struct {
	mu   sync.Mutex
	from string
	to   []string
	data []byte
}

func (b *captureBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &captureSession{b: b}, nil
}

type captureSession struct {
	b *captureBackend
}

func (s *captureSession) Reset()        {}
func (s *captureSession) Logout() error { return nil }

func (s *captureSession) Mail(from string, _ *smtp.MailOptions) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.from = from
	return nil
}

func (s *captureSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.to = append(s.b.to, to)
	return nil
}

func (s *captureSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	s.b.data = data
	return nil
}

func TestSMTPNotifier(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	be := &captureBackend{}
	srv := smtp.NewServer(be)
	srv.Domain = "localhost"
	go srv.Serve(l)
	defer srv.Close()

	n := NewSMTPNotifier(SMTPConfig{
		Address: l.Addr().String(),
		From:    "mailmind@localhost",
		To:      []string{"me@example.com"},
		Subject: "Inbox",
	}, zap.NewNop())
	if err := n.Deliver(context.Background(), sampleDigest()); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	be.mu.Lock()
	defer be.mu.Unlock()
	if be.from != "mailmind@localhost" || len(be.to) != 1 || be.to[0] != "me@example.com" {
		t.Errorf("envelope = %q -> %v", be.from, be.to)
	}
	body := string(be.data)
	for _, want := range []string{"Subject: Inbox (3)", "Content-Type: text/plain; charset=utf-8", "Showing 3 emails received today only"} {
		if !strings.Contains(body, want) {
			t.Errorf("message lacks %q:\n%s", want, body)
		}
	}
}

func TestSMTPNotifierNoRecipients(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Address: "127.0.0.1:1"}, zap.NewNop())
	if err := n.Deliver(context.Background(), sampleDigest()); err == nil {
		t.Error("Deliver without recipients succeeded")
	}
}
