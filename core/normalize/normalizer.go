// Package normalize implements the Normalizer interface.
// It converts HTML into Markdown, which serves as the canonical
// intermediate format for all downstream renderers, and gathers the
// metadata and inline images the converter collects on the same pass.
package normalize

import (
	"fmt"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/convert"
)

// Config selects the side channels collected during normalization.
type Config struct {
	Metadata     core.MetadataConfig
	InlineImages bool
	Images       core.InlineImageConfig
}

// MarkdownNormalizer converts HTML to Markdown using the html2md converter.
type MarkdownNormalizer struct {
	conv *convert.Converter
	cfg  Config
}

// New creates a MarkdownNormalizer. Metadata is collected when the
// converter's ExtractMetadata option is set.
func New(conv *convert.Converter, cfg Config) *MarkdownNormalizer {
	return &MarkdownNormalizer{conv: conv, cfg: cfg}
}

// Normalize converts one HTML document into Markdown.
func (n *MarkdownNormalizer) Normalize(doc core.Document) (*core.Conversion, error) {
	withMeta := n.conv.Options().ExtractMetadata

	var conv *core.Conversion
	switch {
	case withMeta && n.cfg.InlineImages:
		c, err := n.conv.ConvertAll(doc.HTML, n.cfg.Metadata, n.cfg.Images)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", doc.Source, err)
		}
		conv = c
	case withMeta:
		res, err := n.conv.ConvertWithMetadata(doc.HTML, n.cfg.Metadata)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", doc.Source, err)
		}
		conv = &core.Conversion{Markdown: res.Markdown, Metadata: &res.Metadata}
	case n.cfg.InlineImages:
		res, err := n.conv.ConvertWithInlineImages(doc.HTML, n.cfg.Images)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", doc.Source, err)
		}
		conv = &core.Conversion{Markdown: res.Markdown, InlineImages: res.InlineImages, Warnings: res.Warnings}
	default:
		markdown, err := n.conv.Convert(doc.HTML)
		if err != nil {
			return nil, fmt.Errorf("converting %s: %w", doc.Source, err)
		}
		conv = &core.Conversion{Markdown: markdown}
	}
	conv.Source = doc.Source
	return conv, nil
}
