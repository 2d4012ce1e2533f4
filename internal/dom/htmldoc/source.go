package htmldoc

import (
	"context"
	"fmt"
	"os"

	"github.com/mikey/mailmind/internal/dom"
)

// FileSource re-reads an HTML file on every snapshot
type FileSource struct {
	path string
}

// NewFileSource creates a new file-backed source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Snapshot parses the current contents of the file
func (s *FileSource) Snapshot(ctx context.Context) (dom.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// StaticSource always returns the same parsed document
type StaticSource struct {
	Doc *Document
}

// Snapshot returns the wrapped document
func (s StaticSource) Snapshot(ctx context.Context) (dom.Document, error) {
	if s.Doc == nil {
		return nil, fmt.Errorf("no document loaded")
	}
	return s.Doc, nil
}
