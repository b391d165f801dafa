package convert

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/dom"
	"github.com/gaurav-prasanna/html2md/core/text"
)

// wrap surrounds the converted children with open and close markers. The
// children's boundary whitespace is moved outside the markers.
func (w *walker) wrap(n *html.Node, open, close string) error {
	if w.ctx.inCode {
		return w.children(n)
	}
	content, err := w.captureInline(n)
	if err != nil {
		return err
	}
	w.writeWrapped(content, open, close)
	return nil
}

func (w *walker) writeWrapped(content, open, close string) {
	prefix, suffix, trimmed := text.Chomp(content)
	if trimmed == "" {
		if prefix != "" || suffix != "" {
			w.out.space()
		}
		return
	}
	if prefix != "" {
		w.out.space()
	}
	w.out.WriteString(open + trimmed + close + suffix)
}

func (w *walker) strong(n *html.Node) error {
	if w.ctx.hasAncestor(atom.Strong, atom.B) {
		return w.children(n)
	}
	marker := strings.Repeat(w.opts.StrongEmSymbol, 2)
	return w.wrap(n, marker, marker)
}

func (w *walker) emphasis(n *html.Node) error {
	if w.ctx.hasAncestor(atom.Em, atom.I, atom.Cite, atom.Dfn, atom.Var) {
		return w.children(n)
	}
	return w.wrap(n, w.opts.StrongEmSymbol, w.opts.StrongEmSymbol)
}

// code writes an inline code span. Its text is not escaped and the
// delimiter is one backtick longer than the longest backtick run inside.
func (w *walker) code(n *html.Node) error {
	if w.ctx.inCode {
		return w.children(n)
	}
	restore := set(&w.ctx.inCode, true)
	content, err := w.captureInline(n)
	restore()
	if err != nil {
		return err
	}
	prefix, suffix, trimmed := text.Chomp(content)
	if trimmed == "" {
		if content != "" {
			w.out.space()
		}
		return nil
	}
	delim := text.InlineCodeDelimiter(trimmed)
	if prefix != "" {
		w.out.space()
	}
	w.out.WriteString(delim + padCode(trimmed) + delim + suffix)
	return nil
}

// padCode adds a space on both sides when content starts or ends with a
// backtick, which would otherwise merge with the delimiter.
func padCode(content string) string {
	if strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") {
		return " " + content + " "
	}
	return content
}

func (w *walker) abbr(n *html.Node) error {
	content, err := w.captureInline(n)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(dom.AttrOr(n, "title", ""))
	prefix, suffix, trimmed := text.Chomp(content)
	if trimmed == "" {
		return nil
	}
	if prefix != "" {
		w.out.space()
	}
	if title != "" {
		trimmed += " (" + w.escape(title) + ")"
	}
	w.out.WriteString(trimmed + suffix)
	return nil
}

func (w *walker) mark(n *html.Node) error {
	switch w.opts.HighlightStyle {
	case core.HighlightHTML:
		return w.wrap(n, "<mark>", "</mark>")
	case core.HighlightBold:
		if w.ctx.hasAncestor(atom.Strong, atom.B) {
			return w.children(n)
		}
		marker := strings.Repeat(w.opts.StrongEmSymbol, 2)
		return w.wrap(n, marker, marker)
	case core.HighlightNone:
		return w.children(n)
	default:
		return w.wrap(n, "==", "==")
	}
}

// script writes sub/sup with the configured symbol, or as the HTML tag when
// no symbol is set.
func (w *walker) script(n *html.Node, symbol, tag string) error {
	if symbol != "" {
		return w.wrap(n, symbol, symbol)
	}
	return w.wrap(n, "<"+tag+">", "</"+tag+">")
}

func (w *walker) link(n *html.Node) error {
	if w.ctx.inLink {
		return w.children(n)
	}
	href, hasHref := dom.Attr(n, "href")
	href = strings.TrimSpace(href)
	title := strings.TrimSpace(dom.AttrOr(n, "title", ""))

	restore := set(&w.ctx.inLink, true)
	content, err := w.captureInline(n)
	restore()
	if err != nil {
		return err
	}

	if hasHref {
		w.meta.OnLink(href, dom.TextContent(n), title, dom.AttrOr(n, "rel", ""))
	}
	prefix, suffix, label := text.Chomp(content)
	if !hasHref {
		w.writeWrapped(content, "", "")
		return nil
	}
	if label == "" {
		if prefix != "" || suffix != "" {
			w.out.space()
		}
		return nil
	}

	if prefix != "" {
		w.out.space()
	}
	if w.opts.Autolinks && title == "" && !w.opts.DefaultTitle && text.Unescape(label) == href && href != "" {
		w.out.WriteString("<" + href + ">" + suffix)
		return nil
	}
	if title == "" && w.opts.DefaultTitle {
		title = href
	}
	w.out.WriteString("[" + label + "](" + destination(href) + titlePart(title) + ")" + suffix)
	return nil
}

// destination wraps an href in angle brackets when it contains characters
// that would end a Markdown link destination early.
func destination(href string) string {
	if strings.ContainsAny(href, " \t\n<>") || strings.Count(href, "(") != strings.Count(href, ")") {
		return "<" + strings.NewReplacer("<", "%3C", ">", "%3E", "\n", "").Replace(href) + ">"
	}
	return href
}

func titlePart(title string) string {
	if title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}
