// Package htmldoc implements the dom capabilities over a parsed HTML tree.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/mikey/mailmind/internal/dom"
)

// Document is an immutable parsed HTML snapshot
type Document struct {
	root *html.Node
}

// Parse reads an HTML document
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML document held in memory
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Query returns the first element matching the selector
func (d *Document) Query(selector string) dom.Node {
	return first(d.root, selector)
}

// QueryAll returns every element matching the selector in document order
func (d *Document) QueryAll(selector string) []dom.Node {
	return all(d.root, selector)
}

func compile(selector string) cascadia.Selector {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return sel
}

// all matches against the descendants of n only, mirroring querySelectorAll.
func all(n *html.Node, selector string) []dom.Node {
	sel := compile(selector)
	if sel == nil || n == nil {
		return nil
	}
	var out []dom.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		for _, m := range sel.MatchAll(c) {
			out = append(out, &Node{n: m})
		}
	}
	return out
}

func first(n *html.Node, selector string) dom.Node {
	sel := compile(selector)
	if sel == nil || n == nil {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := sel.MatchFirst(c); m != nil {
			return &Node{n: m}
		}
	}
	return nil
}
