package convert

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/html2md/core/dom"
)

var bracketEscaper = strings.NewReplacer("[", `\[`, "]", `\]`)

func escapeBrackets(s string) string {
	return bracketEscaper.Replace(s)
}

// image writes ![alt](src "title"). Data URI sources are offered to the
// image observer, which may swap src for a generated filename. Inside a
// heading or table cell the image is flattened to its alt text unless the
// enclosing tag is listed in KeepInlineImagesIn.
func (w *walker) image(n *html.Node) {
	src := strings.TrimSpace(dom.AttrOr(n, "src", ""))
	alt := dom.AttrOr(n, "alt", "")
	title := dom.AttrOr(n, "title", "")
	w.meta.OnImage(src, alt, title)

	if isDataURI(src) {
		if ref, ok := w.images.OnDataURI(src, alt, title, attrMap(n, "src")); ok {
			src = ref
		}
	}

	if !w.ctx.inline {
		if _, tag := w.nearestTag(atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Td, atom.Th); tag != "" && !w.opts.KeepsInlineImagesIn(tag) {
			if alt = strings.TrimSpace(alt); alt != "" {
				w.out.WriteString(w.escape(alt))
			}
			return
		}
	}
	if src == "" && alt == "" {
		return
	}
	w.out.WriteString("![" + escapeBrackets(alt) + "](" + destination(src) + titlePart(strings.TrimSpace(title)) + ")")
}

// media degrades iframe, video, audio, embed and object to a link to their
// source. video and audio fall back to their first <source src> child and
// otherwise render their fallback content.
func (w *walker) media(n *html.Node) error {
	key := "src"
	if n.DataAtom == atom.Object {
		key = "data"
	}
	src := strings.TrimSpace(dom.AttrOr(n, key, ""))
	if src == "" && (n.DataAtom == atom.Video || n.DataAtom == atom.Audio) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Source {
				if s := strings.TrimSpace(dom.AttrOr(c, "src", "")); s != "" {
					src = s
					break
				}
			}
		}
	}
	if src == "" {
		if n.DataAtom == atom.Iframe || n.DataAtom == atom.Embed {
			return nil
		}
		return w.children(n)
	}
	w.mediaLink(src)
	return nil
}

func (w *walker) mediaLink(src string) {
	w.out.WriteString("[" + escapeBrackets(src) + "](" + destination(src) + ")")
}

// source renders a standalone <source> as a link. Sources inside picture,
// video or audio belong to their parent and are skipped.
func (w *walker) source(n *html.Node) {
	if w.ctx.hasAncestor(atom.Picture, atom.Video, atom.Audio) {
		return
	}
	if src := strings.TrimSpace(dom.AttrOr(n, "src", "")); src != "" {
		w.mediaLink(src)
	}
}

// input renders checkboxes as task list markers and drops other inputs.
func (w *walker) input(n *html.Node) {
	if !strings.EqualFold(dom.AttrOr(n, "type", ""), "checkbox") {
		return
	}
	if _, checked := dom.Attr(n, "checked"); checked {
		w.out.WriteString("[x] ")
	} else {
		w.out.WriteString("[ ] ")
	}
}

func isDataURI(src string) bool {
	return len(src) >= 5 && strings.EqualFold(src[:5], "data:")
}
