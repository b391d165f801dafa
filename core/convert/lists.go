package convert

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/html2md/core/dom"
	"github.com/gaurav-prasanna/html2md/core/text"
)

// looseChildren are the block children that make a list item loose. A
// nested list does not.
var looseChildren = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Blockquote: true, atom.Pre: true,
	atom.Table: true, atom.H1: true, atom.H2: true, atom.H3: true,
	atom.H4: true, atom.H5: true, atom.H6: true, atom.Dl: true,
}

func isList(n *html.Node) bool {
	return n.Type == html.ElementNode && categoryOf(n.DataAtom) == catList
}

// isLoose reports whether any item has block content or the source
// separates two items with a blank line.
func isLoose(list *html.Node) bool {
	seenItem := false
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.TextNode:
			if seenItem && text.IsBlank(c.Data) && strings.Count(c.Data, "\n") >= 2 && nextItem(c) != nil {
				return true
			}
		case c.Type == html.ElementNode && c.DataAtom == atom.Li:
			seenItem = true
			for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
				if gc.Type == html.ElementNode && looseChildren[gc.DataAtom] {
					return true
				}
			}
		}
	}
	return false
}

func nextItem(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode && s.DataAtom == atom.Li {
			return s
		}
	}
	return nil
}

func (w *walker) list(n *html.Node) error {
	frame := listFrame{ordered: n.DataAtom == atom.Ol, next: 1, loose: isLoose(n)}
	if frame.ordered {
		if start, err := strconv.Atoi(strings.TrimSpace(dom.AttrOr(n, "start", ""))); err == nil && start >= 0 {
			frame.next = start
		}
	}
	w.ctx.pushList(frame)

	var items []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.Li:
			w.ctx.enter(c)
			item, err := w.listItem(c)
			w.ctx.leave()
			if err != nil {
				return err
			}
			if item != "" {
				items = append(items, item)
			}
		case c.Type == html.ElementNode || dom.Significant(c):
			// Stray content directly inside the list, e.g. a nested <ul>
			// that is not wrapped in an <li>.
			s, err := w.capture('\n', func() error { return w.walk(c) })
			if err != nil {
				return err
			}
			if s = strings.Trim(s, "\n"); strings.TrimSpace(s) != "" {
				items = append(items, text.Indent(s, w.opts.IndentUnit()))
			}
		}
	}
	if err := w.ctx.popList(); err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	if w.ctx.inline {
		w.out.space()
		w.out.WriteString(strings.Join(items, " "))
		return nil
	}
	sep := "\n"
	if frame.loose {
		sep = "\n\n"
	}
	w.blockStart()
	w.out.WriteString(strings.Join(items, sep))
	w.blockEnd()
	return nil
}

// orphanListItem handles an <li> outside any list as a one-item bullet list.
func (w *walker) orphanListItem(n *html.Node) error {
	w.ctx.pushList(listFrame{next: 1})
	item, err := w.listItem(n)
	if err != nil {
		return err
	}
	if err := w.ctx.popList(); err != nil {
		return err
	}
	if item == "" {
		return nil
	}
	w.blockStart()
	w.out.WriteString(item)
	w.blockEnd()
	return nil
}

// marker returns the bullet or number for the next item of the innermost
// list and advances its counter. Bullets rotate with list nesting depth.
func (w *walker) marker(li *html.Node) string {
	frame := w.ctx.list()
	if !frame.ordered {
		bullets := []rune(w.opts.Bullets)
		return string(bullets[(w.ctx.listDepth()-1)%len(bullets)])
	}
	if v, err := strconv.Atoi(strings.TrimSpace(dom.AttrOr(li, "value", ""))); err == nil && v >= 0 {
		frame.next = v
	}
	m := strconv.Itoa(frame.next) + "."
	frame.next++
	return m
}

type segment struct {
	text   string
	nested bool
}

// listItem converts one <li>. Its children are split into content segments
// and nested list segments: the first content line follows the marker,
// continuation lines are aligned under the text after the marker, and nested
// lists are indented by one list indent unit.
func (w *walker) listItem(li *html.Node) (string, error) {
	marker := w.marker(li)

	var segs []segment
	content := newOutput('\n')
	flush := func() {
		if s := strings.Trim(content.String(), "\n"); strings.TrimSpace(s) != "" {
			segs = append(segs, segment{text: strings.TrimRight(s, " ")})
		}
		content = newOutput('\n')
	}
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if isList(c) {
			flush()
			s, err := w.capture('\n', func() error { return w.walk(c) })
			if err != nil {
				return "", err
			}
			if s = strings.Trim(s, "\n"); s != "" {
				segs = append(segs, segment{text: s, nested: true})
			}
			continue
		}
		saved := w.out
		w.out = content
		err := w.walk(c)
		w.out = saved
		if err != nil {
			return "", err
		}
	}
	flush()

	if w.ctx.inline {
		parts := make([]string, len(segs))
		for i, s := range segs {
			parts[i] = strings.TrimSpace(s.text)
		}
		return strings.Join(parts, " "), nil
	}
	if len(segs) == 0 {
		return marker, nil
	}

	unit := w.opts.IndentUnit()
	cont := strings.Repeat(" ", utf8.RuneCountInString(marker)+1)
	var b strings.Builder
	for i, seg := range segs {
		switch {
		case i == 0 && seg.nested:
			b.WriteString(marker + "\n" + text.Indent(seg.text, unit))
		case i == 0:
			first, rest, _ := strings.Cut(seg.text, "\n")
			b.WriteString(marker + " " + first)
			if rest != "" {
				b.WriteString("\n" + text.Indent(rest, cont))
			}
		case seg.nested:
			b.WriteString("\n" + text.Indent(seg.text, unit))
		default:
			b.WriteString("\n\n" + text.Indent(seg.text, cont))
		}
	}
	return b.String(), nil
}
