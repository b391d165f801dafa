package convert

import (
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/collect"
	"github.com/gaurav-prasanna/html2md/core/dom"
	"github.com/gaurav-prasanna/html2md/core/hocr"
	"github.com/gaurav-prasanna/html2md/core/text"
)

var newlineRunRegexp = regexp.MustCompile(` *\n[ \n]*`)

// walker converts one parse tree. It owns every piece of per-call state and
// is discarded when the call returns.
type walker struct {
	opts   *core.Options
	ctx    *Context
	out    *output
	cache  *dom.Cache
	meta   collect.MetadataObserver
	images collect.ImageObserver
	logger *slog.Logger

	hocr       bool
	hocrBlocks map[*html.Node]bool
}

func newWalker(opts *core.Options, meta collect.MetadataObserver, images collect.ImageObserver, logger *slog.Logger) *walker {
	if meta == nil {
		meta = collect.NopMetadata{}
	}
	if images == nil {
		images = collect.NopImages{}
	}
	return &walker{
		opts:   opts,
		ctx:    newContext(opts),
		out:    newOutput(0),
		meta:   meta,
		images: images,
		logger: logger,
	}
}

// run walks the whole document and checks that every list it opened was
// closed.
func (w *walker) run(doc *html.Node) (string, error) {
	if hocr.Detect(doc) {
		w.hocr = true
		if w.opts.HOCRSpatialTables {
			w.hocrBlocks = make(map[*html.Node]bool)
			for _, b := range hocr.Blocks(doc) {
				w.hocrBlocks[b] = true
			}
		}
		w.logger.Debug("hocr document detected", "blocks", len(w.hocrBlocks), "spatial_tables", w.opts.HOCRSpatialTables)
	}
	w.cache = dom.NewCache(w.hocr)

	if err := w.walk(doc); err != nil {
		return "", err
	}
	if d := w.ctx.listDepth(); d != 0 {
		return "", core.Errorf(core.KindInternal, "list stack not empty after walk: depth %d", d)
	}
	return w.out.String(), nil
}

func (w *walker) walk(n *html.Node) error {
	switch n.Type {
	case html.DocumentNode:
		return w.children(n)
	case html.TextNode:
		w.text(n)
		return nil
	case html.ElementNode:
		return w.element(n)
	}
	return nil
}

func (w *walker) children(n *html.Node) error {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := w.walk(c); err != nil {
			return err
		}
	}
	return nil
}

// capture runs fn against a fresh output seeded with seed and returns what
// fn wrote.
func (w *walker) capture(seed byte, fn func() error) (string, error) {
	saved := w.out
	w.out = newOutput(seed)
	err := fn()
	s := w.out.String()
	w.out = saved
	return s, err
}

// captureInline converts n's children as if they were written in place.
func (w *walker) captureInline(n *html.Node) (string, error) {
	return w.capture(w.out.last(), func() error { return w.children(n) })
}

// captureBlock converts n's children as a standalone block.
func (w *walker) captureBlock(n *html.Node) (string, error) {
	return w.capture('\n', func() error { return w.children(n) })
}

func (w *walker) element(n *html.Node) error {
	if w.hocrBlocks[n] && w.hocrTable(n) {
		return nil
	}
	if _, ok := dom.Attr(n, "itemscope"); ok {
		w.meta.OnMicrodata(n)
	}

	cat := categoryOf(n.DataAtom)
	if w.ctx.inPre {
		return w.inPre(n, cat)
	}
	if cat.inlineFormat() && w.cache.Facts(n).EmptyInline {
		if n.FirstChild != nil {
			w.out.space()
		}
		return nil
	}

	w.ctx.enter(n)
	defer w.ctx.leave()

	switch cat {
	case catDrop:
		return nil
	case catRoot:
		w.meta.OnRoot(n)
		return w.children(n)
	case catHead:
		w.meta.OnHead(n)
		return nil
	case catScript:
		if t, _ := dom.Attr(n, "type"); strings.EqualFold(strings.TrimSpace(t), "application/ld+json") {
			w.meta.OnJSONLD(dom.TextContent(n))
		}
		return nil
	case catRaw:
		return w.raw(n)
	case catBlock:
		return w.block(n)
	case catSummary:
		return w.summary(n)
	case catHeading:
		return w.heading(n)
	case catBlockquote:
		return w.blockquote(n)
	case catPre:
		return w.pre(n)
	case catRule:
		w.rule()
		return nil
	case catBreak:
		w.lineBreak()
		return nil
	case catList:
		return w.list(n)
	case catListItem:
		return w.orphanListItem(n)
	case catDefList:
		return w.definitionList(n)
	case catDefTerm:
		return w.definitionTerm(n)
	case catDefDesc:
		return w.definitionDesc(n)
	case catTable:
		return w.table(n)
	case catStrong:
		return w.strong(n)
	case catEmphasis:
		return w.emphasis(n)
	case catStrike:
		return w.wrap(n, "~~", "~~")
	case catCode:
		return w.code(n)
	case catQuote:
		return w.wrap(n, `"`, `"`)
	case catAbbr:
		return w.abbr(n)
	case catMark:
		return w.mark(n)
	case catSub:
		return w.script(n, w.opts.SubSymbol, "sub")
	case catSup:
		return w.script(n, w.opts.SupSymbol, "sup")
	case catLink:
		return w.link(n)
	case catImage:
		w.image(n)
		return nil
	case catMedia:
		return w.media(n)
	case catSource:
		w.source(n)
		return nil
	case catInput:
		w.input(n)
		return nil
	}

	if w.hocr && w.cache.Facts(n).HOCR == hocr.Line {
		if err := w.children(n); err != nil {
			return err
		}
		if !w.ctx.inline && !w.out.atLineStart() {
			w.out.trimTrailingSpace()
			w.out.WriteString("\n")
		}
		return nil
	}
	return w.children(n)
}

// inPre handles elements inside preformatted text: markup is dropped and
// only text and line breaks survive.
func (w *walker) inPre(n *html.Node, cat category) error {
	switch cat {
	case catBreak:
		w.out.WriteString("\n")
		return nil
	case catDrop, catScript, catHead:
		return nil
	}
	return w.children(n)
}

func (w *walker) escape(s string) string {
	return text.Escape(s, w.opts.EscapeMisc, w.opts.EscapeAsterisks, w.opts.EscapeUnderscores)
}

// text writes a text node. Inside pre it is copied verbatim. Whitespace-only
// nodes next to a block boundary are dropped; between inline siblings they
// become one space, or stay as written in strict mode.
func (w *walker) text(n *html.Node) {
	s := n.Data
	if w.ctx.inPre {
		w.out.WriteString(s)
		return
	}
	strict := w.opts.WhitespaceMode == core.WhitespaceStrict

	if text.IsBlank(s) {
		if w.cache.PrevIsBlock(n) || w.cache.NextIsBlock(n) {
			return
		}
		if strict && !w.ctx.inline {
			w.out.WriteString(s)
			return
		}
		w.out.space()
		return
	}

	if !strict || w.ctx.inCode {
		s = text.NormalizeWhitespace(s)
		s = newlineRunRegexp.ReplaceAllString(s, "\n")
	}
	if w.ctx.inline || w.ctx.inCode || w.ctx.inHeading {
		s = strings.ReplaceAll(s, "\n", " ")
	}
	if w.out.atLineStart() || w.out.last() == ' ' {
		s = strings.TrimLeft(s, " \n")
	}
	if s == "" {
		return
	}
	if !w.ctx.inCode {
		s = w.escape(s)
	}
	w.out.WriteString(s)
}

// blockStart separates a block from what precedes it. In inline mode blocks
// collapse to spaces; inside a table cell they are split by single newlines
// that the cell later turns into <br> or spaces.
func (w *walker) blockStart() {
	switch {
	case w.ctx.inline:
		w.out.space()
	case w.ctx.inTableCell:
		w.out.ensureNewline()
	default:
		w.out.ensureBlankLine()
	}
}

func (w *walker) blockEnd() {
	w.blockStart()
}

// nearestTag returns the closest ancestor among atoms and its tag name.
func (w *walker) nearestTag(atoms ...atom.Atom) (*html.Node, string) {
	n := w.ctx.nearest(atoms...)
	if n == nil {
		return nil, ""
	}
	return n, n.Data
}
