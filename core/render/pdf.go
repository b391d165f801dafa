// Package render: PDF renderer.
// Converts Markdown into a styled PDF using gofpdf. The Markdown is read back
// into a syntax tree so setext headings, nested lists, blockquotes and tables
// render as structure rather than as raw lines.
// Images are not rendered; their alt text is.
package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/gaurav-prasanna/html2md/core"
)

const (
	lineHeight  = 5.0
	indentStep  = 6.0
	bottomSpace = 15.0
)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// pdfWriter carries the state of one rendering.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	src []byte
	tr  func(string) string
}

// Render converts a conversion's Markdown into PDF bytes.
func (r *PDFRenderer) Render(conv *core.Conversion) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, bottomSpace)
	pdf.AddPage()
	w := &pdfWriter{pdf: pdf, src: []byte(conv.Markdown), tr: pdf.UnicodeTranslatorFromDescriptor("")}

	// Title from metadata.
	if conv.Metadata != nil && conv.Metadata.Document.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, w.tr(conv.Metadata.Document.Title), "", "L", false)
		pdf.Ln(4)
	}

	if conv.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, w.tr("Source: "+conv.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	doc := parse(w.src)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		w.block(n, 0)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func (w *pdfWriter) block(n ast.Node, indent float64) {
	switch node := n.(type) {
	case *ast.Heading:
		renderHeading(w.pdf, w.tr(inlineText(node, w.src)), node.Level)
	case *ast.Paragraph, *ast.TextBlock:
		w.text(inlineText(node, w.src), indent)
		if n.Kind() == ast.KindParagraph {
			w.pdf.Ln(2)
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		w.code(blockLines(node, w.src), indent)
	case *ast.List:
		w.list(node, indent)
	case *ast.Blockquote:
		w.pdf.SetTextColor(90, 90, 90)
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c, indent+indentStep)
		}
		w.pdf.SetTextColor(0, 0, 0)
	case *ast.ThematicBreak:
		left, _, right, _ := w.pdf.GetMargins()
		pageW, _ := w.pdf.GetPageSize()
		y := w.pdf.GetY() + 2
		w.pdf.SetDrawColor(180, 180, 180)
		w.pdf.Line(left, y, pageW-right, y)
		w.pdf.Ln(6)
	case *east.Table:
		w.table(node)
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.block(c, indent)
		}
	}
}

func (w *pdfWriter) text(s string, indent float64) {
	if s == "" {
		return
	}
	left, _, _, _ := w.pdf.GetMargins()
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.SetX(left + indent)
	w.pdf.MultiCell(0, lineHeight, w.tr(s), "", "L", false)
}

func (w *pdfWriter) code(lines []string, indent float64) {
	left, _, _, _ := w.pdf.GetMargins()
	w.pdf.Ln(2)
	w.pdf.SetFont("Courier", "", 9)
	w.pdf.SetFillColor(245, 245, 245)
	for _, line := range lines {
		w.pdf.SetX(left + indent)
		w.pdf.MultiCell(0, 4.5, w.tr(line), "", "L", true)
	}
	w.pdf.Ln(2)
}

// list renders each item with its marker in front of the item's first
// block. Later blocks and nested lists are indented one step.
func (w *pdfWriter) list(l *ast.List, indent float64) {
	i := 0
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if l.IsOrdered() {
			marker = fmt.Sprintf("%d. ", l.Start+i)
		}
		i++

		first := item.FirstChild()
		if first != nil && (first.Kind() == ast.KindParagraph || first.Kind() == ast.KindTextBlock) {
			w.text(marker+inlineText(first, w.src), indent)
			first = first.NextSibling()
		} else {
			w.text(marker, indent)
		}
		for c := first; c != nil; c = c.NextSibling() {
			w.block(c, indent+indentStep)
		}
	}
	w.pdf.Ln(2)
}

// table draws a bordered grid with equal column widths. The header row is
// bold on a shaded background.
func (w *pdfWriter) table(t *east.Table) {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, pageH := w.pdf.GetPageSize()
	cols := len(t.Alignments)
	if cols == 0 {
		return
	}
	colW := (pageW - left - right) / float64(cols)

	w.pdf.Ln(2)
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		header := row.Kind() == east.KindTableHeader
		if header {
			w.pdf.SetFont("Helvetica", "B", 9)
			w.pdf.SetFillColor(230, 230, 230)
		} else {
			w.pdf.SetFont("Helvetica", "", 9)
		}

		var cells []string
		lines := 1
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			s := w.tr(inlineText(cell, w.src))
			cells = append(cells, s)
			lines = max(lines, len(w.pdf.SplitLines([]byte(s), colW-2)))
		}
		h := float64(lines) * lineHeight

		y := w.pdf.GetY()
		if y+h > pageH-bottomSpace {
			w.pdf.AddPage()
			y = w.pdf.GetY()
		}
		for i, s := range cells {
			if i >= cols {
				break
			}
			x := left + float64(i)*colW
			style := "D"
			if header {
				style = "FD"
			}
			w.pdf.Rect(x, y, colW, h, style)
			w.pdf.SetXY(x, y)
			w.pdf.MultiCell(colW, lineHeight, s, "", "L", false)
		}
		w.pdf.SetXY(left, y+h)
	}
	w.pdf.Ln(4)
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}
