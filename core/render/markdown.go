// Package render provides output renderers for the html2md pipeline.
// This file implements the Markdown renderer, which writes the converted
// Markdown as-is, optionally preceded by YAML front matter.
package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/html2md/core"
)

// MarkdownRenderer writes Markdown. It's the simplest renderer since
// Markdown is already the canonical pipeline format.
type MarkdownRenderer struct {
	frontMatter bool
}

// NewMarkdownRenderer creates a MarkdownRenderer. With frontMatter set,
// document metadata is written as a YAML block before the Markdown.
func NewMarkdownRenderer(frontMatter bool) *MarkdownRenderer {
	return &MarkdownRenderer{frontMatter: frontMatter}
}

// Render returns the Markdown as bytes.
func (r *MarkdownRenderer) Render(conv *core.Conversion) ([]byte, error) {
	if !r.frontMatter || conv.Metadata == nil || conv.Metadata.Document.IsZero() {
		return []byte(conv.Markdown), nil
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(conv.Metadata.Document); err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding front matter: %w", err)
	}
	buf.WriteString("---\n\n")
	buf.WriteString(conv.Markdown)
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
