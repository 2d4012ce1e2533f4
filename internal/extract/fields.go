package extract

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/core"
	"github.com/mikey/mailmind/internal/dom"
	"github.com/mikey/mailmind/internal/timetext"
)

// RowExtractor reads message fields out of a row node
type RowExtractor struct {
	profile Profile
	logger  *zap.Logger
}

// NewRowExtractor creates a new row extractor
func NewRowExtractor(p Profile, logger *zap.Logger) *RowExtractor {
	return &RowExtractor{
		profile: p,
		logger:  logger,
	}
}

// Extract builds a record from the row. The boolean is false when the row
// carries no sender, subject or preview.
func (x *RowExtractor) Extract(row dom.Node) (core.MessageRecord, bool) {
	rec := core.MessageRecord{
		Sender:   x.field("sender", row, x.sender),
		Subject:  x.field("subject", row, x.subject),
		Preview:  x.field("preview", row, x.preview),
		TimeText: x.field("time", row, x.timeText),
		IsUnread: x.isUnread(row),
	}
	if rec.IsNoise() {
		return core.MessageRecord{}, false
	}

	x.logger.Debug("Extracted row",
		zap.String("sender", clip(rec.Sender, 20)),
		zap.String("subject", clip(rec.Subject, 30)),
		zap.String("time", rec.TimeText),
		zap.Bool("unread", rec.IsUnread))
	return rec, true
}

// field runs one lookup chain; a panic from a stale or odd node empties the
// field and nothing else.
func (x *RowExtractor) field(name string, row dom.Node, lookup func(dom.Node) string) (value string) {
	defer func() {
		if r := recover(); r != nil {
			x.logger.Debug("Field extraction failed", zap.String("field", name), zap.Any("panic", r))
			value = ""
		}
	}()
	return lookup(row)
}

func (x *RowExtractor) sender(row dom.Node) string {
	for _, sel := range x.profile.SenderSelectors {
		el := row.Query(sel)
		if el == nil {
			continue
		}
		for _, attr := range x.profile.SenderAttrs {
			if v := strings.TrimSpace(el.Attr(attr)); v != "" {
				return v
			}
		}
		if v := strings.TrimSpace(el.Text()); v != "" {
			return v
		}
	}
	return emailAddress.FindString(row.Text())
}

func (x *RowExtractor) subject(row dom.Node) string {
	return firstText(row, x.profile.SubjectSelectors)
}

func (x *RowExtractor) preview(row dom.Node) string {
	return firstText(row, x.profile.PreviewSelectors)
}

func firstText(row dom.Node, selectors []string) string {
	for _, sel := range selectors {
		el := row.Query(sel)
		if el == nil {
			continue
		}
		if v := strings.TrimSpace(el.Text()); v != "" {
			return v
		}
	}
	return ""
}

func (x *RowExtractor) timeText(row dom.Node) string {
	for _, sel := range x.profile.TimeSelectors {
		el := row.Query(sel)
		if el == nil {
			continue
		}
		// The tooltip usually holds the full timestamp.
		for _, candidate := range []string{el.Attr("title"), el.Text()} {
			if v := timetext.Normalize(candidate); timetext.IsValid(v) {
				return v
			}
		}
	}

	if label := row.Attr("aria-label"); label != "" {
		for _, pattern := range x.profile.LabelTimePatterns {
			matches := pattern.FindAllString(label, -1)
			if len(matches) == 0 {
				continue
			}
			// Labels end with the timestamp.
			if v := timetext.Normalize(matches[len(matches)-1]); timetext.IsValid(v) {
				return v
			}
		}
	}

	if x.profile.TextTimePattern != nil {
		return timetext.Normalize(x.profile.TextTimePattern.FindString(row.Text()))
	}
	return ""
}

// isUnread stops at the first indicator that fires. A panicking indicator
// counts as not firing.
func (x *RowExtractor) isUnread(row dom.Node) bool {
	indicators := []func(dom.Node) bool{
		x.hasUnreadClass,
		hasBoldWeight,
		x.hasUnreadLabel,
	}
	for _, indicator := range indicators {
		if safeIndicator(indicator, row) {
			return true
		}
	}
	return false
}

func safeIndicator(indicator func(dom.Node) bool, row dom.Node) (fired bool) {
	defer func() {
		if recover() != nil {
			fired = false
		}
	}()
	return indicator(row)
}

func (x *RowExtractor) hasUnreadClass(row dom.Node) bool {
	for _, class := range x.profile.UnreadClasses {
		if row.HasClass(class) || row.Query("."+class) != nil {
			return true
		}
	}
	return false
}

var boldCandidates = `[style*="font-weight"], [` + dom.ComputedWeightAttr + `], b, strong`

func hasBoldWeight(row dom.Node) bool {
	if isBold(row.Style("font-weight")) {
		return true
	}
	for _, el := range row.QueryAll(boldCandidates) {
		if isBold(el.Style("font-weight")) {
			return true
		}
	}
	return false
}

func isBold(weight string) bool {
	weight = strings.ToLower(strings.TrimSpace(weight))
	switch weight {
	case "bold", "bolder":
		return true
	}
	n, err := strconv.Atoi(weight)
	return err == nil && n >= 600
}

func (x *RowExtractor) hasUnreadLabel(row dom.Node) bool {
	return x.profile.UnreadLabel != "" &&
		strings.Contains(strings.ToLower(row.Attr("aria-label")), x.profile.UnreadLabel)
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
