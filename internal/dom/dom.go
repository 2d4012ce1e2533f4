// Package dom defines the structural-query capabilities the inbox engine needs
// from a document host. Implementations must be read-only: nothing in the
// engine mutates the tree it is handed.
package dom

import "context"

// ComputedWeightAttr carries a computed font-weight captured by a live host
// at snapshot time.
const ComputedWeightAttr = "data-computed-font-weight"

// Node is an opaque handle to one element of a document tree. A Node carries
// no identity guarantee across snapshots.
type Node interface {
	// Tag returns the lower-case element name.
	Tag() string

	// Attr returns the attribute value, or "" when absent.
	Attr(name string) string

	// HasClass reports whether the element carries the class token.
	HasClass(name string) bool

	// Text returns the concatenated text content of the subtree.
	Text() string

	// Style returns the computed value of a CSS property, or "" when unknown.
	Style(property string) string

	// Children returns the direct element children in document order.
	Children() []Node

	// Query returns the first descendant matching the selector, or nil.
	// Invalid selectors match nothing.
	Query(selector string) Node

	// QueryAll returns all descendants matching the selector in document order.
	QueryAll(selector string) []Node
}

// Document is one snapshot of the host tree.
type Document interface {
	Query(selector string) Node
	QueryAll(selector string) []Node
}

// Source yields fresh snapshots of a live document. Each call must reflect
// the host's current state; callers never assume two snapshots are equal.
type Source interface {
	Snapshot(ctx context.Context) (Document, error)
}
