package convert

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/html2md/core"
	"github.com/gaurav-prasanna/html2md/core/dom"
	"github.com/gaurav-prasanna/html2md/core/text"
)

func (w *walker) block(n *html.Node) error {
	w.blockStart()
	if err := w.children(n); err != nil {
		return err
	}
	w.blockEnd()
	return nil
}

func (w *walker) summary(n *html.Node) error {
	content, err := w.captureInline(n)
	if err != nil {
		return err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil
	}
	w.blockStart()
	marker := strings.Repeat(w.opts.StrongEmSymbol, 2)
	w.out.WriteString(marker + content + marker)
	w.blockEnd()
	return nil
}

func (w *walker) heading(n *html.Node) error {
	level := int(n.Data[1] - '0')

	defer set(&w.ctx.inHeading, true)()
	content, err := w.captureInline(n)
	if err != nil {
		return err
	}
	content = strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))

	if plain := strings.Join(strings.Fields(dom.TextContent(n)), " "); plain != "" {
		w.meta.OnHeader(level, plain, dom.AttrOr(n, "id", ""))
	}
	if content == "" {
		return nil
	}
	if w.ctx.inline || w.ctx.inTableCell {
		w.out.space()
		w.out.WriteString(content)
		w.out.space()
		return nil
	}

	w.blockStart()
	switch {
	case w.opts.HeadingStyle == core.HeadingUnderlined && level <= 2:
		underline := "="
		if level == 2 {
			underline = "-"
		}
		w.out.WriteString(content + "\n" + strings.Repeat(underline, max(text.Width(content), 1)))
	case w.opts.HeadingStyle == core.HeadingATXClosed:
		hashes := strings.Repeat("#", level)
		w.out.WriteString(hashes + " " + content + " " + hashes)
	default:
		w.out.WriteString(strings.Repeat("#", level) + " " + content)
	}
	w.blockEnd()
	return nil
}

func (w *walker) blockquote(n *html.Node) error {
	content, err := w.captureBlock(n)
	if err != nil {
		return err
	}
	content = strings.Trim(content, "\n")
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if w.ctx.inline {
		w.out.space()
		w.out.WriteString(strings.TrimSpace(content))
		return nil
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	w.blockStart()
	w.out.WriteString(strings.Join(lines, "\n"))
	w.blockEnd()
	return nil
}

func (w *walker) pre(n *html.Node) error {
	restore := set(&w.ctx.inPre, true)
	content, err := w.captureBlock(n)
	restore()
	if err != nil {
		return err
	}
	content = strings.TrimRight(content, "\n")
	if content == "" {
		return nil
	}

	if w.ctx.inline || w.ctx.inTableCell {
		flat := strings.ReplaceAll(content, "\n", " ")
		delim := text.InlineCodeDelimiter(flat)
		w.out.space()
		w.out.WriteString(delim + padCode(flat) + delim)
		return nil
	}

	fence := text.CodeFence(content, '`')
	w.blockStart()
	w.out.WriteString(fence + w.codeLanguage(n) + "\n" + content + "\n" + fence)
	w.blockEnd()
	return nil
}

// codeLanguage looks for a language-x or lang-x class on the pre element or
// its first code child, then falls back to the configured default.
func (w *walker) codeLanguage(n *html.Node) string {
	pre := goquery.NewDocumentFromNode(n).Selection
	for _, s := range []*goquery.Selection{pre, pre.ChildrenFiltered("code").First()} {
		if s.Length() == 0 {
			continue
		}
		if lang := strings.TrimSpace(s.AttrOr("data-lang", "")); lang != "" {
			return lang
		}
		for _, class := range strings.Fields(s.AttrOr("class", "")) {
			for _, prefix := range []string{"language-", "lang-"} {
				if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
					return lang
				}
			}
		}
	}
	return w.opts.CodeLanguage
}

func (w *walker) rule() {
	if w.ctx.inline || w.ctx.inTableCell {
		w.out.space()
		return
	}
	w.blockStart()
	w.out.WriteString("---")
	w.blockEnd()
}

func (w *walker) lineBreak() {
	switch {
	case w.ctx.inline || w.ctx.inHeading:
		w.out.space()
	case w.ctx.inTableCell:
		w.out.trimTrailingSpace()
		w.out.WriteString("\n")
	case w.out.atLineStart():
	case w.opts.NewlineStyle == core.NewlineBackslash:
		w.out.trimTrailingSpace()
		w.out.WriteString("\\\n")
	default:
		w.out.trimTrailingSpace()
		w.out.WriteString("  \n")
	}
}

func (w *walker) definitionList(n *html.Node) error {
	if w.ctx.inline {
		return w.children(n)
	}
	return w.block(n)
}

// definitionTerm writes the term on its own unindented line. A term that
// follows a definition starts a new group, separated by a blank line.
func (w *walker) definitionTerm(n *html.Node) error {
	content, err := w.captureInline(n)
	if err != nil {
		return err
	}
	content = strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
	if content == "" {
		return nil
	}
	if w.ctx.inline {
		w.out.space()
		w.out.WriteString(content)
		return nil
	}
	if prev := w.cache.Facts(n).Prev; prev != nil && prev.DataAtom == atom.Dd {
		w.out.ensureBlankLine()
	} else if w.ctx.nearest(atom.Dl) == nil {
		w.blockStart()
	} else {
		w.out.ensureNewline()
	}
	w.out.WriteString(content)
	w.out.ensureNewline()
	return nil
}

// definitionDesc writes the definition indented by one list level.
func (w *walker) definitionDesc(n *html.Node) error {
	content, err := w.captureBlock(n)
	if err != nil {
		return err
	}
	content = strings.Trim(content, "\n")
	if strings.TrimSpace(content) == "" {
		return nil
	}
	if w.ctx.inline {
		w.out.space()
		w.out.WriteString(strings.TrimSpace(content))
		return nil
	}
	w.out.ensureNewline()
	w.out.WriteString(text.Indent(content, w.opts.IndentUnit()))
	w.out.ensureNewline()
	return nil
}

// raw writes svg and math elements as HTML. An svg is offered to the image
// observer first and replaced by an image reference when captured.
func (w *walker) raw(n *html.Node) error {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return core.WrapError(core.KindOther, err, "rendering "+n.Data)
	}
	markup := dropBlankLines(buf.String())

	if n.DataAtom == atom.Svg {
		desc := svgDescription(n)
		if ref, ok := w.images.OnSVG(markup, desc, attrMap(n, "")); ok {
			w.out.WriteString("![" + escapeBrackets(desc) + "](" + ref + ")")
			return nil
		}
	}
	if w.ctx.inTableCell || w.ctx.inline {
		markup = strings.ReplaceAll(markup, "\n", " ")
	}
	w.out.WriteString(markup)
	return nil
}

func svgDescription(n *html.Node) string {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "title" {
			if t := strings.TrimSpace(dom.TextContent(c)); t != "" {
				return t
			}
		}
	}
	return strings.TrimSpace(dom.AttrOr(n, "aria-label", ""))
}

func dropBlankLines(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

// attrMap copies n's attributes except skip.
func attrMap(n *html.Node, skip string) map[string]string {
	if len(n.Attr) == 0 {
		return nil
	}
	m := make(map[string]string, len(n.Attr))
	for _, a := range n.Attr {
		if a.Key == skip {
			continue
		}
		m[a.Key] = a.Val
	}
	return m
}
