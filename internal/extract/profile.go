package extract

import "regexp"

// Profile is the set of structural signatures describing one webmail UI.
// Every list is ordered, most reliable first.
type Profile struct {
	// ReadinessMarkers indicate the mailbox view has rendered.
	ReadinessMarkers []string

	// RowSignatures are tried in order; the first matching any node is used.
	RowSignatures []string
	// ChromeMarkers are text fragments of navigation elements, not messages.
	ChromeMarkers []string
	// MinRowText is the shortest text a signature-matched row may carry.
	MinRowText int

	// GridTables select tabular message lists.
	GridTables string
	// MinCells is the fewest cells a grid row must have.
	MinCells int

	// ThreadNodes select elements carrying a thread identifier.
	ThreadNodes string

	// LabelledNodes select elements with an accessible label worth checking,
	// LabelMarkers are the substrings that make such a label a row.
	LabelledNodes string
	LabelMarkers  []string

	SenderSelectors  []string
	SenderAttrs      []string
	SubjectSelectors []string
	PreviewSelectors []string
	TimeSelectors    []string

	// LabelTimePatterns scan an accessible label for a timestamp; the last
	// match of the first productive pattern is used.
	LabelTimePatterns []*regexp.Regexp
	// TextTimePattern is the final fallback over the row's raw text.
	TextTimePattern *regexp.Regexp

	UnreadClasses []string
	UnreadLabel   string

	// MessageBodySelectors locate the body of an opened message.
	MessageBodySelectors []string
}

var emailAddress = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)

// GmailProfile returns the signatures of the Gmail web inbox
func GmailProfile() Profile {
	return Profile{
		ReadinessMarkers: []string{
			`[role="main"]`,
			`.nH`,
			`[gh="tl"]`,
			`.aeJ`,
			`.AO`,
			`.Tm.aeJ`,
			`[jscontroller="SoVkNd"]`,
		},
		RowSignatures: []string{
			`tr[jsaction*="mouseenter"]`,
			`tr[jsaction*="click"]`,
			`.zA`,
			`[data-legacy-thread-id]`,
			`.Cp`,
			`tr.zA`,
			`tr.yW`,
			`.yW`,
			`[role="listitem"]`,
			`[jsmodel="SzKmE"]`,
		},
		ChromeMarkers: []string{"Compose", "Sent"},
		MinRowText:    10,
		GridTables:    `table[role="grid"], table.F`,
		MinCells:      3,
		ThreadNodes:   `[data-thread-id], [data-legacy-thread-id]`,
		LabelledNodes: `[aria-label*="email"], [aria-label*="message"], [aria-label*="conversation"]`,
		LabelMarkers:  []string{"@", "unread", "from"},
		SenderSelectors: []string{
			`[email]`,
			`.yW`,
			`.yP`,
			`[name]`,
			`.go span[email]`,
			`.bA4 span`,
			`.a4W span`,
			`.yX span`,
		},
		SenderAttrs: []string{"email", "name", "title"},
		SubjectSelectors: []string{
			`.bog`,
			`[data-thread-perm-id] .y6 span`,
			`.y6 span`,
			`.y6`,
			`.aYS`,
			`.Zt`,
			`.a4W .ao9`,
			`.bqe span`,
		},
		PreviewSelectors: []string{
			`.y2`,
			`.bog + span`,
			`.y6 + .y2`,
			`.aYS + .y2`,
			`.Zt + span`,
			`.snippetText`,
		},
		TimeSelectors: []string{
			`time`,
			`td.xW span`,
			`.xW span`,
			`.xY span`,
			`[title*=":"]`,
			`.xz`,
			`.g3 span`,
			`.byg span`,
			`span[title]`,
			`.xY`,
			`.xW`,
		},
		LabelTimePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)`),
			regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2}(?:,\s*\d{4})?\b`),
			regexp.MustCompile(`\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)(?:\s+\d{4})?\b`),
			regexp.MustCompile(`(?i)\byesterday\b`),
			regexp.MustCompile(`(?i)\btoday\b`),
			regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
		},
		TextTimePattern: regexp.MustCompile(`\b\d{1,2}:\d{2}\s*(?:AM|PM|am|pm)\b`),
		UnreadClasses:   []string{"zE"},
		UnreadLabel:     "unread",
		MessageBodySelectors: []string{
			`.ii.gt .a3s.aiL`,
			`.a3s.aiL`,
			`[data-message-id] .a3s`,
			`.ii.gt div[dir="ltr"]`,
			`.hx .ii.gt div`,
		},
	}
}

// WithOverrides returns a copy using any non-empty replacement lists
func (p Profile) WithOverrides(readiness, rows []string) Profile {
	if len(readiness) > 0 {
		p.ReadinessMarkers = readiness
	}
	if len(rows) > 0 {
		p.RowSignatures = rows
	}
	return p
}
