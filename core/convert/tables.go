package convert

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gaurav-prasanna/html2md/core/dom"
	"github.com/gaurav-prasanna/html2md/core/text"
)

// tableRows returns the <tr> elements of table in output order: thead rows
// first, then body rows and direct rows in document order, then tfoot rows.
// Rows of nested tables are not included.
func tableRows(table *html.Node) (head, body []*html.Node) {
	var foot []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Tr:
			body = append(body, c)
		case atom.Thead:
			head = append(head, rowsOf(c)...)
		case atom.Tbody:
			body = append(body, rowsOf(c)...)
		case atom.Tfoot:
			foot = append(foot, rowsOf(c)...)
		}
	}
	return head, append(body, foot...)
}

func rowsOf(section *html.Node) []*html.Node {
	var rows []*html.Node
	for c := section.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Tr {
			rows = append(rows, c)
		}
	}
	return rows
}

func caption(table *html.Node) *html.Node {
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Caption {
			return c
		}
	}
	return nil
}

// table writes a pipe table. The first thead row, or the first row when
// there is no thead, is the header. Cells spanning several columns are
// followed by empty cells, and short rows are padded to the widest row.
func (w *walker) table(n *html.Node) error {
	if c := caption(n); c != nil {
		if err := w.tableCaption(c); err != nil {
			return err
		}
	}

	head, body := tableRows(n)
	rows := append(head, body...)
	if len(rows) == 0 {
		return nil
	}

	cells := make([][]string, 0, len(rows))
	columns := 0
	for _, tr := range rows {
		row, err := w.tableRow(tr)
		if err != nil {
			return err
		}
		cells = append(cells, row)
		columns = max(columns, len(row))
	}
	if columns == 0 {
		return nil
	}

	if w.ctx.inline {
		var parts []string
		for _, row := range cells {
			for _, c := range row {
				if c != "" {
					parts = append(parts, c)
				}
			}
		}
		if len(parts) > 0 {
			w.out.space()
			w.out.WriteString(strings.Join(parts, " "))
		}
		return nil
	}

	var b strings.Builder
	for i, row := range cells {
		for len(row) < columns {
			row = append(row, "")
		}
		writeRow(&b, row)
		if i == 0 {
			sep := make([]string, columns)
			for j := range sep {
				sep[j] = "---"
			}
			writeRow(&b, sep)
		}
	}
	w.blockStart()
	w.out.WriteString(strings.TrimRight(b.String(), "\n"))
	w.blockEnd()
	return nil
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		if c == "" {
			b.WriteString(" |")
			continue
		}
		b.WriteString(" " + c + " |")
	}
	b.WriteString("\n")
}

func (w *walker) tableCaption(c *html.Node) error {
	w.ctx.enter(c)
	content, err := w.captureBlock(c)
	w.ctx.leave()
	if err != nil {
		return err
	}
	content = strings.TrimSpace(strings.ReplaceAll(content, "\n", " "))
	if content == "" {
		return nil
	}
	w.blockStart()
	w.out.WriteString(content)
	w.blockEnd()
	return nil
}

func (w *walker) tableRow(tr *html.Node) ([]string, error) {
	w.ctx.enter(tr)
	defer w.ctx.leave()

	var row []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || (c.DataAtom != atom.Td && c.DataAtom != atom.Th) {
			continue
		}
		cell, err := w.tableCell(c)
		if err != nil {
			return nil, err
		}
		row = append(row, cell)
		if span, err := strconv.Atoi(strings.TrimSpace(dom.AttrOr(c, "colspan", ""))); err == nil {
			for i := 1; i < min(span, 1000); i++ {
				row = append(row, "")
			}
		}
	}
	return row, nil
}

// tableCell converts one cell to a single line. Lines produced by blocks or
// <br> inside the cell are joined with <br> or a space, and pipes that are
// not already escaped are escaped so they cannot end the cell.
func (w *walker) tableCell(td *html.Node) (string, error) {
	w.ctx.enter(td)
	defer w.ctx.leave()
	defer set(&w.ctx.inTableCell, true)()

	content, err := w.captureBlock(td)
	if err != nil {
		return "", err
	}
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if hard, ok := strings.CutSuffix(line, `\`); ok && !strings.HasSuffix(hard, `\`) {
			line = strings.TrimSpace(hard)
		}
		if line != "" {
			lines = append(lines, line)
		}
	}
	sep := " "
	if w.opts.BrInTables {
		sep = "<br>"
	}
	return text.EscapePipes(strings.Join(lines, sep)), nil
}
