// Package convert turns an HTML document into Markdown in a single walk of
// the parse tree.
//
// A conversion normalizes line endings, checks the input is UTF-8, optionally
// pre-cleans it with the sanitizer in core/extract, parses it with
// golang.org/x/net/html and walks the tree once. Metadata and inline image
// collectors observe that same walk. The output is tidied, optionally wrapped
// and ends in exactly one newline, except in inline mode.
//
// Every call owns its state, so a Converter may be used from many goroutines
// at once.
package convert

import (
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/collect"
	"github.com/gaurav-prasanna/html2md/core/extract"
	"github.com/gaurav-prasanna/html2md/core/text"
)

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Converter converts HTML with a fixed set of options.
type Converter struct {
	opts      core.Options
	sanitizer core.Sanitizer
	logger    *slog.Logger
}

// New validates opts and creates a Converter. A nil opts means
// core.DefaultOptions and a nil logger discards everything.
func New(opts *core.Options, logger *slog.Logger) (*Converter, error) {
	o := core.DefaultOptions()
	if opts != nil {
		o = *opts
	}
	if err := o.Validate(); err != nil {
		return nil, core.WrapError(core.KindOther, err, "invalid options")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	c := &Converter{opts: o, logger: logger}
	if o.Preprocessing.Enabled {
		c.sanitizer = extract.New(o.Preprocessing)
	}
	return c, nil
}

// Convert converts input to Markdown.
func (c *Converter) Convert(input string) (string, error) {
	return c.convert(input, nil, nil)
}

// ConvertWithInlineImages converts input and captures data URI images and
// inline svg elements in the same walk.
func (c *Converter) ConvertWithInlineImages(input string, cfg core.InlineImageConfig) (*core.InlineImageResult, error) {
	images := collect.NewImageCollector(cfg)
	markdown, err := c.convert(input, nil, images)
	if err != nil {
		return nil, err
	}
	captured, warnings := images.Finish()
	for _, w := range warnings {
		c.logger.Debug("inline image skipped", "index", w.Index, "reason", w.Message)
	}
	return &core.InlineImageResult{Markdown: markdown, InlineImages: captured, Warnings: warnings}, nil
}

// ConvertWithMetadata converts input and collects document metadata,
// headers, links, images and structured data in the same walk.
func (c *Converter) ConvertWithMetadata(input string, cfg core.MetadataConfig) (*core.MetadataResult, error) {
	meta := collect.NewMetadataCollector(cfg)
	markdown, err := c.convert(input, meta, nil)
	if err != nil {
		return nil, err
	}
	return &core.MetadataResult{Markdown: markdown, Metadata: meta.Finish()}, nil
}

// ConvertAll runs both collectors over one walk and returns everything as a
// core.Conversion with an empty Source.
func (c *Converter) ConvertAll(input string, metaCfg core.MetadataConfig, imageCfg core.InlineImageConfig) (*core.Conversion, error) {
	meta := collect.NewMetadataCollector(metaCfg)
	images := collect.NewImageCollector(imageCfg)
	markdown, err := c.convert(input, meta, images)
	if err != nil {
		return nil, err
	}
	m := meta.Finish()
	captured, warnings := images.Finish()
	for _, w := range warnings {
		c.logger.Debug("inline image skipped", "index", w.Index, "reason", w.Message)
	}
	return &core.Conversion{Markdown: markdown, Metadata: &m, InlineImages: captured, Warnings: warnings}, nil
}

func (c *Converter) convert(input string, meta collect.MetadataObserver, images collect.ImageObserver) (string, error) {
	input = lineEndings.Replace(input)
	if !utf8.ValidString(input) {
		return "", core.Errorf(core.KindEncoding, "input is not valid UTF-8 at byte offset %d", invalidOffset(input))
	}
	if c.opts.StripNewlines {
		input = strings.ReplaceAll(input, "\n", " ")
	}
	if c.sanitizer != nil {
		cleaned, err := c.sanitizer.Sanitize(input)
		if err != nil {
			return "", core.WrapError(core.KindOther, err, "sanitizing input")
		}
		c.logger.Debug("preprocessing applied", "preset", c.opts.Preprocessing.Preset)
		input = cleaned
	}

	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return "", core.WrapError(core.KindOther, err, "parsing HTML")
	}

	w := newWalker(&c.opts, meta, images, c.logger)
	markdown, err := w.run(doc)
	if err != nil {
		return "", err
	}

	markdown = text.Tidy(markdown)
	if c.opts.Wrap {
		markdown = text.Wrap(markdown, c.opts.WrapWidth)
	}
	if c.opts.ConvertAsInline {
		return strings.TrimSpace(markdown), nil
	}
	if markdown == "" {
		return "", nil
	}
	return markdown + "\n", nil
}

func invalidOffset(s string) int {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				return i
			}
		}
	}
	return len(s)
}

// Convert converts input with opts. A nil opts means core.DefaultOptions.
func Convert(input string, opts *core.Options) (string, error) {
	c, err := New(opts, nil)
	if err != nil {
		return "", err
	}
	return c.Convert(input)
}

// ConvertWithInlineImages converts input with opts and captures inline
// images.
func ConvertWithInlineImages(input string, opts *core.Options, cfg core.InlineImageConfig) (*core.InlineImageResult, error) {
	c, err := New(opts, nil)
	if err != nil {
		return nil, err
	}
	return c.ConvertWithInlineImages(input, cfg)
}

// ConvertWithMetadata converts input with opts and collects metadata.
func ConvertWithMetadata(input string, opts *core.Options, cfg core.MetadataConfig) (*core.MetadataResult, error) {
	c, err := New(opts, nil)
	if err != nil {
		return nil, err
	}
	return c.ConvertWithMetadata(input, cfg)
}

// Options returns a copy of the converter's options.
func (c *Converter) Options() core.Options {
	return c.opts
}
