package normalize

import (
	"testing"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/convert"
)

const page = `<html><head><title>Doc</title></head><body><h1>Hi</h1>` +
	`<p><img src="data:image/svg+xml,%3Csvg%3E%3C/svg%3E" alt="s"></p></body></html>`

func newNormalizer(t *testing.T, extractMetadata, images bool) *MarkdownNormalizer {
	t.Helper()
	opts := core.DefaultOptions()
	opts.ExtractMetadata = extractMetadata
	conv, err := convert.New(&opts, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return New(conv, Config{
		Metadata:     core.DefaultMetadataConfig(),
		InlineImages: images,
		Images:       core.DefaultInlineImageConfig(),
	})
}

func TestNormalize_Plain(t *testing.T) {
	conv, err := newNormalizer(t, false, false).Normalize(core.Document{Source: "a.html", HTML: page})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Source != "a.html" {
		t.Errorf("expected source %q, got %q", "a.html", conv.Source)
	}
	if conv.Metadata != nil || conv.InlineImages != nil {
		t.Errorf("expected no side channels, got %+v", conv)
	}
	if conv.Markdown == "" {
		t.Error("expected markdown")
	}
}

func TestNormalize_MetadataAndImages(t *testing.T) {
	conv, err := newNormalizer(t, true, true).Normalize(core.Document{Source: "-", HTML: page})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Metadata == nil || conv.Metadata.Document.Title != "Doc" {
		t.Fatalf("expected document title, got %+v", conv.Metadata)
	}
	if len(conv.Metadata.Headers) != 1 {
		t.Errorf("expected 1 header, got %d", len(conv.Metadata.Headers))
	}
	if len(conv.InlineImages) != 1 || conv.InlineImages[0].Format != "svg" {
		t.Errorf("expected one svg image, got %+v", conv.InlineImages)
	}
}

func TestNormalize_ImagesOnly(t *testing.T) {
	conv, err := newNormalizer(t, false, true).Normalize(core.Document{Source: "-", HTML: page})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conv.Metadata != nil {
		t.Errorf("expected no metadata, got %+v", conv.Metadata)
	}
	if len(conv.InlineImages) != 1 {
		t.Errorf("expected 1 image, got %d", len(conv.InlineImages))
	}
}

func TestNormalize_EncodingError(t *testing.T) {
	_, err := newNormalizer(t, false, false).Normalize(core.Document{Source: "bad.html", HTML: "\xff"})
	if !core.IsKind(err, core.KindEncoding) {
		t.Errorf("expected an encoding error, got %v", err)
	}
}
