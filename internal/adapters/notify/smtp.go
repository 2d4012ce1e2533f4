package notify

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"net"
	"os"
	"strings"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
)

// SMTPConfig holds the relay settings for digest mails
type SMTPConfig struct {
	Address  string
	Username string
	Password string
	From     string
	To       []string
	Subject  string
}

// SMTPNotifier mails digests through an SMTP relay
type SMTPNotifier struct {
	cfg    SMTPConfig
	logger *zap.Logger
	dial   func(ctx context.Context, network, addr string) (net.Conn, error)
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(cfg SMTPConfig, logger *zap.Logger) *SMTPNotifier {
	d := &net.Dialer{Timeout: 10 * time.Second}
	return &SMTPNotifier{
		cfg:    cfg,
		logger: logger,
		dial:   d.DialContext,
	}
}

// Deliver sends the digest as a plain-text mail
func (n *SMTPNotifier) Deliver(ctx context.Context, d *core.Digest) error {
	if len(n.cfg.To) == 0 {
		return fmt.Errorf("no digest recipients configured")
	}

	body, err := n.compose(d)
	if err != nil {
		return err
	}

	conn, err := n.dial(ctx, "tcp", n.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP relay: %w", err)
	}
	deadline := time.Now().Add(30 * time.Second)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := conn.SetDeadline(deadline); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set connection deadline: %w", err)
	}

	c := smtp.NewClient(conn)
	defer c.Close()

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	if err := c.Hello(hostname); err != nil {
		return fmt.Errorf("EHLO failed: %w", err)
	}

	if n.cfg.Username != "" {
		if err := c.Auth(sasl.NewPlainClient("", n.cfg.Username, n.cfg.Password)); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := c.Mail(n.cfg.From, nil); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}

	recipientOK := false
	for _, recipient := range n.cfg.To {
		if err := c.Rcpt(recipient, nil); err != nil {
			n.logger.Warn("RCPT TO failed for recipient",
				zap.String("recipient", recipient),
				zap.Error(err))
			continue
		}
		recipientOK = true
	}
	if !recipientOK {
		return fmt.Errorf("all recipients were rejected")
	}

	wc, err := c.Data()
	if err != nil {
		return fmt.Errorf("DATA command failed: %w", err)
	}
	if _, err := wc.Write(body); err != nil {
		wc.Close()
		return fmt.Errorf("failed to send digest: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	if err := c.Quit(); err != nil {
		// The relay already accepted the message.
		n.logger.Warn("QUIT command failed", zap.Error(err))
	}

	n.logger.Info("Digest mailed",
		zap.Strings("recipients", n.cfg.To),
		zap.Int("entries", len(d.Entries)))
	return nil
}

func (n *SMTPNotifier) compose(d *core.Digest) ([]byte, error) {
	var text bytes.Buffer
	if err := RenderText(&text, d, false); err != nil {
		return nil, fmt.Errorf("failed to render digest: %w", err)
	}

	subject := n.cfg.Subject
	if subject == "" {
		subject = "Today's inbox digest"
	}
	subject = fmt.Sprintf("%s (%d)", subject, len(d.Extraction.Messages))

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", n.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", strings.Join(n.cfg.To, ", "))
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	fmt.Fprintf(&msg, "Date: %s\r\n", d.GeneratedAt.Format(time.RFC1123Z))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
	msg.WriteString(strings.ReplaceAll(text.String(), "\n", "\r\n"))
	return msg.Bytes(), nil
}
