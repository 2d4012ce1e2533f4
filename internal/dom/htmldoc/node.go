package htmldoc

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/mikey/mailmind/internal/dom"
)

// Node wraps an element of a parsed HTML tree
type Node struct {
	n *html.Node
}

// Tag returns the element name
func (e *Node) Tag() string {
	return e.n.Data
}

// Attr returns the attribute value or ""
func (e *Node) Attr(name string) string {
	for _, a := range e.n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}

// HasClass reports whether the class attribute contains the token
func (e *Node) HasClass(name string) bool {
	for _, c := range strings.Fields(e.Attr("class")) {
		if c == name {
			return true
		}
	}
	return false
}

// Text returns the text content of the subtree
func (e *Node) Text() string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.n)
	return b.String()
}

// Style resolves a property from the inline declaration, then any value the
// host captured at snapshot time, then the user-agent default for the tag.
func (e *Node) Style(property string) string {
	property = strings.ToLower(strings.TrimSpace(property))
	if v, ok := inlineStyle(e.Attr("style"))[property]; ok {
		return v
	}
	if property == "font-weight" {
		if v := e.Attr(dom.ComputedWeightAttr); v != "" {
			return v
		}
		switch e.n.Data {
		case "b", "strong", "th":
			return "bold"
		}
	}
	return ""
}

// Children returns the direct element children
func (e *Node) Children() []dom.Node {
	var out []dom.Node
	for c := e.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Node{n: c})
		}
	}
	return out
}

// Query returns the first matching descendant
func (e *Node) Query(selector string) dom.Node {
	return first(e.n, selector)
}

// QueryAll returns the matching descendants
func (e *Node) QueryAll(selector string) []dom.Node {
	return all(e.n, selector)
}

// inlineStyle parses a style attribute into lower-case property names.
func inlineStyle(decl string) map[string]string {
	props := make(map[string]string)
	for _, part := range strings.Split(decl, ";") {
		name, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		if name != "" {
			props[name] = strings.TrimSpace(value)
		}
	}
	return props
}
