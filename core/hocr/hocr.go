// Package hocr recognizes hOCR documents (OCR output encoded as HTML with
// bounding boxes in title attributes) and rebuilds tables from the spatial
// layout of their words.
package hocr

import (
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Class is the hOCR role of an element.
type Class int

const (
	None Class = iota
	Page
	Area
	Paragraph
	Line
	Word
)

func (c Class) String() string {
	switch c {
	case Page:
		return "page"
	case Area:
		return "area"
	case Paragraph:
		return "paragraph"
	case Line:
		return "line"
	case Word:
		return "word"
	default:
		return "none"
	}
}

var (
	pageSel   = cascadia.MustCompile(".ocr_page")
	areaSel   = cascadia.MustCompile(".ocr_carea")
	parSel    = cascadia.MustCompile(".ocr_par")
	lineSel   = cascadia.MustCompile(".ocr_line, .ocrx_line, .ocr_caption, .ocr_header, .ocr_textfloat")
	wordSel   = cascadia.MustCompile(".ocrx_word")
	systemSel = cascadia.MustCompile(`meta[name="ocr-system"], meta[name="ocr-capabilities"]`)
)

// Detect reports whether the tree rooted at root is an hOCR document: it
// declares an OCR system in a meta tag, or it has at least one page and at
// least one word or line element.
func Detect(root *html.Node) bool {
	if root == nil {
		return false
	}
	if systemSel.MatchFirst(root) != nil {
		return true
	}
	if pageSel.MatchFirst(root) == nil {
		return false
	}
	return wordSel.MatchFirst(root) != nil || lineSel.MatchFirst(root) != nil
}

// Classify returns the hOCR class of n. Word wins over line when both match.
func Classify(n *html.Node) Class {
	if n == nil || n.Type != html.ElementNode {
		return None
	}
	switch {
	case wordSel.Match(n):
		return Word
	case lineSel.Match(n):
		return Line
	case parSel.Match(n):
		return Paragraph
	case areaSel.Match(n):
		return Area
	case pageSel.Match(n):
		return Page
	}
	return None
}

// BBox is a bounding box in page pixels.
type BBox struct {
	X0, Y0, X1, Y1 int
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() int { return b.X1 - b.X0 }

// Height returns the vertical extent of the box.
func (b BBox) Height() int { return b.Y1 - b.Y0 }

// CenterY returns the vertical center of the box.
func (b BBox) CenterY() int { return (b.Y0 + b.Y1) / 2 }

// ParseBBox reads the bbox property out of an hOCR title attribute such as
// "bbox 10 20 110 40; x_wconf 96".
func ParseBBox(title string) (BBox, bool) {
	for _, prop := range strings.Split(title, ";") {
		fields := strings.Fields(prop)
		if len(fields) != 5 || fields[0] != "bbox" {
			continue
		}
		var v [4]int
		for i := range v {
			n, err := strconv.Atoi(fields[i+1])
			if err != nil {
				return BBox{}, false
			}
			v[i] = n
		}
		b := BBox{X0: v[0], Y0: v[1], X1: v[2], Y1: v[3]}
		if b.X1 < b.X0 || b.Y1 < b.Y0 {
			return BBox{}, false
		}
		return b, true
	}
	return BBox{}, false
}

// Blocks returns the elements a spatial table is reconstructed from: the
// content areas of the document, or its pages when it has no areas.
func Blocks(root *html.Node) []*html.Node {
	if areas := areaSel.MatchAll(root); len(areas) > 0 {
		return areas
	}
	return pageSel.MatchAll(root)
}
