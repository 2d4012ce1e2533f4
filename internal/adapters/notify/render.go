// Package notify delivers digests to people.
package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/mikey/mailmind/internal/core"
)

// RenderText writes the plain-text form of a digest. verbose adds the
// extraction diagnostic.
func RenderText(w io.Writer, d *core.Digest, verbose bool) error {
	var b strings.Builder
	ex := d.Extraction

	fmt.Fprintf(&b, "=== Today's Inbox (%s) ===\n", d.GeneratedAt.Format("Mon Jan 2 15:04"))
	fmt.Fprintf(&b, "Emails today: %d (%d unread)\n", len(ex.Messages), ex.UnreadCount)
	if verbose {
		fmt.Fprintf(&b, "Debug: %s\n", ex.Diagnostic)
	}

	if len(ex.Messages) == 0 {
		b.WriteString("\nNo emails received today.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	for _, e := range d.Entries {
		b.WriteString("\n")
		marker := ""
		if e.Message.IsUnread {
			marker = "[UNREAD] "
		}
		fmt.Fprintf(&b, "%s%s  %s\n", marker, orDefault(e.Message.Sender, "Unknown Sender"), e.Message.TimeText)
		fmt.Fprintf(&b, "Subject: %s\n", orDefault(e.Message.Subject, "No Subject"))
		fmt.Fprintf(&b, "Summary: %s\n", e.Summary)
		if verbose && e.Source != "" {
			fmt.Fprintf(&b, "Source: %s %s\n", e.Source, e.Model)
		}
	}

	if rest := len(ex.Messages) - len(d.Entries); rest > 0 {
		fmt.Fprintf(&b, "\n... and %d more not summarised\n", rest)
	}
	fmt.Fprintf(&b, "\nShowing %d emails received today only\n", len(ex.Messages))

	_, err := io.WriteString(w, b.String())
	return err
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
