package hocr

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/html2md/core/text"
)

// Table is a grid of cell texts rebuilt from word positions. The first row
// is the header.
type Table struct {
	Rows [][]string
}

// Columns returns the number of columns in the table.
func (t Table) Columns() int {
	if len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows[0])
}

type word struct {
	text string
	box  BBox
}

type cell struct {
	x0, x1 int
	words  []string
}

type row struct {
	centerY int
	words   []word
}

// BuildTable groups the words under block into rows by vertical center and
// into cells by horizontal gaps, then aligns cells into columns by their left
// edge. It reports false when the layout does not look tabular: fewer than
// two rows or two columns, or fewer than half of the rows with two or more
// cells.
func BuildTable(block *html.Node) (Table, bool) {
	words := collectWords(block)
	if len(words) < 4 {
		return Table{}, false
	}
	h := medianHeight(words)

	sort.SliceStable(words, func(i, j int) bool {
		ci, cj := words[i].box.CenterY(), words[j].box.CenterY()
		if ci != cj {
			return ci < cj
		}
		return words[i].box.X0 < words[j].box.X0
	})

	var rows []*row
	for _, w := range words {
		cy := w.box.CenterY()
		if len(rows) == 0 || abs(cy-rows[len(rows)-1].centerY) > h/2 {
			rows = append(rows, &row{centerY: cy})
		}
		r := rows[len(rows)-1]
		r.words = append(r.words, w)
		r.centerY = (r.centerY*(len(r.words)-1) + cy) / len(r.words)
	}
	if len(rows) < 2 {
		return Table{}, false
	}

	cellRows := make([][]cell, len(rows))
	var starts []int
	multi := 0
	for i, r := range rows {
		cellRows[i] = splitCells(r.words, h)
		if len(cellRows[i]) >= 2 {
			multi++
		}
		for _, c := range cellRows[i] {
			starts = append(starts, c.x0)
		}
	}
	if multi*2 < len(rows) {
		return Table{}, false
	}

	anchors := clusterColumns(starts, h)
	if len(anchors) < 2 {
		return Table{}, false
	}

	t := Table{Rows: make([][]string, len(cellRows))}
	for i, cells := range cellRows {
		grid := make([]string, len(anchors))
		for _, c := range cells {
			col := nearest(anchors, c.x0)
			content := strings.Join(c.words, " ")
			if grid[col] != "" {
				grid[col] += " " + content
			} else {
				grid[col] = content
			}
		}
		t.Rows[i] = grid
	}
	return t, true
}

// Markdown renders the table as a pipe table. escape is applied to every
// cell before pipes are escaped; nil leaves cell text unchanged.
func (t Table) Markdown(escape func(string) string) string {
	if len(t.Rows) == 0 {
		return ""
	}
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for _, c := range cells {
			if escape != nil {
				c = escape(c)
			}
			b.WriteString(" ")
			b.WriteString(text.EscapePipes(c))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}
	writeRow(t.Rows[0])
	b.WriteString("|")
	for range t.Rows[0] {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, r := range t.Rows[1:] {
		writeRow(r)
	}
	return b.String()
}

func collectWords(block *html.Node) []word {
	var words []word
	for _, n := range wordSel.MatchAll(block) {
		title := ""
		for _, a := range n.Attr {
			if a.Key == "title" {
				title = a.Val
				break
			}
		}
		box, ok := ParseBBox(title)
		if !ok {
			continue
		}
		t := strings.Join(strings.Fields(nodeText(n)), " ")
		if t == "" {
			continue
		}
		words = append(words, word{text: t, box: box})
	}
	return words
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

func medianHeight(words []word) int {
	hs := make([]int, len(words))
	for i, w := range words {
		hs[i] = w.box.Height()
	}
	sort.Ints(hs)
	m := hs[len(hs)/2]
	if m <= 0 {
		return 1
	}
	return m
}

// splitCells orders a row's words left to right and starts a new cell at
// every gap wider than the line height.
func splitCells(words []word, h int) []cell {
	sort.SliceStable(words, func(i, j int) bool { return words[i].box.X0 < words[j].box.X0 })
	var cells []cell
	for _, w := range words {
		if n := len(cells); n > 0 && w.box.X0-cells[n-1].x1 <= h {
			c := &cells[n-1]
			c.words = append(c.words, w.text)
			if w.box.X1 > c.x1 {
				c.x1 = w.box.X1
			}
			continue
		}
		cells = append(cells, cell{x0: w.box.X0, x1: w.box.X1, words: []string{w.text}})
	}
	return cells
}

// clusterColumns groups sorted cell left edges that lie within tol of each
// other and returns the leftmost edge of each group.
func clusterColumns(starts []int, tol int) []int {
	sort.Ints(starts)
	var anchors []int
	last := 0
	for i, x := range starts {
		if i == 0 || x-last > tol {
			anchors = append(anchors, x)
		}
		last = x
	}
	return anchors
}

func nearest(anchors []int, x int) int {
	best := 0
	for i, a := range anchors {
		if abs(x-a) < abs(x-anchors[best]) {
			best = i
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
