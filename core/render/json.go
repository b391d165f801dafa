// Package render: JSON renderer.
// Builds the structured JSON output from a conversion: the Markdown, the
// collected metadata, a summary of captured inline images and structural
// counts read back from the Markdown syntax tree.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/gaurav-prasanna/html2md/core"
)

// JSONRenderer produces structured JSON output from a conversion.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts a conversion into indented JSON. Image bytes are left
// out; the output writer stores them as separate files.
func (r *JSONRenderer) Render(conv *core.Conversion) ([]byte, error) {
	out := core.ConversionJSON{
		Source:    conv.Source,
		Markdown:  conv.Markdown,
		Metadata:  conv.Metadata,
		Warnings:  conv.Warnings,
		Structure: structure([]byte(conv.Markdown)),
	}
	for _, img := range conv.InlineImages {
		out.Images = append(out.Images, core.InlineImageSummary{
			Filename:    img.Filename,
			Format:      img.Format,
			Size:        len(img.Data),
			Description: img.Description,
			Width:       img.Width,
			Height:      img.Height,
			Source:      string(img.Source),
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// structure counts headings (ATX and setext), code blocks (fenced and
// indented), tables and list items.
func structure(src []byte) core.DocumentStructure {
	var s core.DocumentStructure
	_ = ast.Walk(parse(src), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.Heading:
			s.Headings++
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			s.CodeBlocks++
		case *east.Table:
			s.Tables++
		case *ast.ListItem:
			s.ListItems++
		}
		return ast.WalkContinue, nil
	})
	return s
}
