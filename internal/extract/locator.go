package extract

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/mikey/mailmind/internal/dom"
)

// DefaultMaxRows caps how many rows one scan hands to the extractor
const DefaultMaxRows = 50

// Strategy finds candidate rows in a document
type Strategy struct {
	Name string
	Find func(doc dom.Document) []dom.Node
}

// Locator tries its strategies in order and keeps the first non-empty result
type Locator struct {
	strategies []Strategy
	maxRows    int
	logger     *zap.Logger
}

// NewLocator creates a locator for the profile
func NewLocator(p Profile, maxRows int, logger *zap.Logger) *Locator {
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}
	return &Locator{
		strategies: p.strategies(),
		maxRows:    maxRows,
		logger:     logger,
	}
}

// LocateRows returns the rows found by the first productive strategy and
// that strategy's name. No rows yields (nil, "").
func (l *Locator) LocateRows(doc dom.Document) ([]dom.Node, string) {
	for i, s := range l.strategies {
		rows := l.run(s, doc)
		if len(rows) == 0 {
			continue
		}
		l.logger.Debug("Row strategy matched",
			zap.Int("strategy", i+1),
			zap.String("name", s.Name),
			zap.Int("rows", len(rows)))
		if len(rows) > l.maxRows {
			rows = rows[:l.maxRows]
		}
		return rows, s.Name
	}
	return nil, ""
}

// run isolates a failing strategy so the next one still gets its turn.
func (l *Locator) run(s Strategy, doc dom.Document) (rows []dom.Node) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Debug("Row strategy failed", zap.String("name", s.Name), zap.Any("panic", r))
			rows = nil
		}
	}()
	return s.Find(doc)
}

func (p Profile) strategies() []Strategy {
	return []Strategy{
		{Name: "signature", Find: p.bySignature},
		{Name: "grid", Find: p.byGrid},
		{Name: "thread", Find: p.byThread},
		{Name: "label", Find: p.byLabel},
	}
}

// bySignature uses the first signature matching anything, then drops
// navigation chrome and near-empty nodes.
func (p Profile) bySignature(doc dom.Document) []dom.Node {
	for _, sel := range p.RowSignatures {
		nodes := doc.QueryAll(sel)
		if len(nodes) == 0 {
			continue
		}
		var rows []dom.Node
		for _, n := range nodes {
			if p.looksLikeMessage(n.Text()) {
				rows = append(rows, n)
			}
		}
		return rows
	}
	return nil
}

func (p Profile) looksLikeMessage(text string) bool {
	if utf8.RuneCountInString(text) <= p.MinRowText {
		return false
	}
	for _, marker := range p.ChromeMarkers {
		if strings.Contains(text, marker) {
			return false
		}
	}
	return true
}

// byGrid reads the first grid with a body, skipping its header row.
func (p Profile) byGrid(doc dom.Document) []dom.Node {
	for _, table := range doc.QueryAll(p.GridTables) {
		trs := table.QueryAll("tr")
		if len(trs) <= 1 {
			continue
		}
		var rows []dom.Node
		for _, tr := range trs[1:] {
			if cellCount(tr) >= p.MinCells {
				rows = append(rows, tr)
			}
		}
		return rows
	}
	return nil
}

func cellCount(row dom.Node) int {
	n := 0
	for _, c := range row.Children() {
		if tag := c.Tag(); tag == "td" || tag == "th" {
			n++
		}
	}
	return n
}

func (p Profile) byThread(doc dom.Document) []dom.Node {
	return doc.QueryAll(p.ThreadNodes)
}

func (p Profile) byLabel(doc dom.Document) []dom.Node {
	var rows []dom.Node
	for _, n := range doc.QueryAll(p.LabelledNodes) {
		label := n.Attr("aria-label")
		for _, marker := range p.LabelMarkers {
			if strings.Contains(label, marker) {
				rows = append(rows, n)
				break
			}
		}
	}
	return rows
}
