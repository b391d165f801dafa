// Package dom precomputes facts about parse tree nodes that the converter
// asks for repeatedly: significant siblings, block vs inline, emptiness and
// hOCR classification. A Cache lives for exactly one conversion.
package dom

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/html2md/core/hocr"
	"github.com/gaurav-prasanna/html2md/core/text"
)

// blockAtoms are elements that start their own block in Markdown output.
var blockAtoms = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true,
	atom.Blockquote: true, atom.Body: true, atom.Caption: true,
	atom.Center: true, atom.Dd: true, atom.Details: true, atom.Dialog: true,
	atom.Dir: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true,
	atom.Footer: true, atom.Form: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Head: true, atom.Header: true, atom.Hgroup: true, atom.Hr: true,
	atom.Html: true, atom.Legend: true, atom.Li: true, atom.Main: true,
	atom.Menu: true, atom.Nav: true, atom.Ol: true, atom.P: true,
	atom.Pre: true, atom.Section: true, atom.Summary: true,
	atom.Table: true, atom.Tbody: true, atom.Td: true, atom.Tfoot: true,
	atom.Th: true, atom.Thead: true, atom.Tr: true, atom.Ul: true,
	atom.Script: true, atom.Style: true, atom.Noscript: true,
	atom.Template: true, atom.Title: true, atom.Meta: true, atom.Link: true,
}

// voidContent are inline elements that render something without children.
var voidContent = map[atom.Atom]bool{
	atom.Img: true, atom.Br: true, atom.Input: true, atom.Svg: true,
	atom.Math: true, atom.Embed: true, atom.Object: true, atom.Iframe: true,
	atom.Video: true, atom.Audio: true,
}

// IsBlock reports whether n is a block-level element.
func IsBlock(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && blockAtoms[n.DataAtom]
}

// Attr returns the value of the attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value or def when it is missing.
func AttrOr(n *html.Node, key, def string) string {
	if v, ok := Attr(n, key); ok {
		return v
	}
	return def
}

// HasClass reports whether the class attribute of n contains class.
func HasClass(n *html.Node, class string) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// Significant reports whether a node contributes to output layout: elements
// and text that is not whitespace-only. Comments and doctypes never do.
func Significant(n *html.Node) bool {
	switch n.Type {
	case html.ElementNode:
		return true
	case html.TextNode:
		return !text.IsBlank(n.Data)
	}
	return false
}

// Facts are the memoized properties of one node.
type Facts struct {
	Prev        *html.Node
	Next        *html.Node
	Block       bool
	EmptyInline bool
	HOCR        hocr.Class
}

// Cache memoizes Facts per node identity. It is not safe for concurrent
// use and must not outlive the parse tree it was built for.
type Cache struct {
	facts map[*html.Node]*Facts
	hocr  bool
}

// NewCache creates an empty cache. When withHOCR is set, facts include the
// node's hOCR class.
func NewCache(withHOCR bool) *Cache {
	return &Cache{facts: make(map[*html.Node]*Facts), hocr: withHOCR}
}

// Facts returns the facts for n, computing them on first use.
func (c *Cache) Facts(n *html.Node) *Facts {
	if f, ok := c.facts[n]; ok {
		return f
	}
	f := &Facts{
		Prev:  prevSignificant(n),
		Next:  nextSignificant(n),
		Block: IsBlock(n),
	}
	if n.Type == html.ElementNode && !f.Block {
		f.EmptyInline = isEmptyInline(n)
	}
	if c.hocr {
		f.HOCR = hocr.Classify(n)
	}
	c.facts[n] = f
	return f
}

// PrevIsBlock reports whether the content before n ends a block: its previous
// significant sibling is a block element, or n opens a block parent. At the
// start of an inline parent the parent's own previous sibling decides.
func (c *Cache) PrevIsBlock(n *html.Node) bool {
	if p := c.Facts(n).Prev; p != nil {
		return IsBlock(p)
	}
	if inlineParent(n) {
		return c.PrevIsBlock(n.Parent)
	}
	return true
}

// NextIsBlock is PrevIsBlock for the content after n.
func (c *Cache) NextIsBlock(n *html.Node) bool {
	if nx := c.Facts(n).Next; nx != nil {
		return IsBlock(nx)
	}
	if inlineParent(n) {
		return c.NextIsBlock(n.Parent)
	}
	return true
}

func inlineParent(n *html.Node) bool {
	p := n.Parent
	return p != nil && p.Type == html.ElementNode && !IsBlock(p)
}

func prevSignificant(n *html.Node) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if Significant(s) {
			return s
		}
	}
	return nil
}

func nextSignificant(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if Significant(s) {
			return s
		}
	}
	return nil
}

// isEmptyInline reports whether an inline element renders nothing: it has no
// non-blank text and no content-producing descendants.
func isEmptyInline(n *html.Node) bool {
	if voidContent[n.DataAtom] {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if !text.IsBlank(c.Data) {
				return false
			}
		case html.ElementNode:
			if IsBlock(c) || !isEmptyInline(c) {
				return false
			}
		}
	}
	return true
}
