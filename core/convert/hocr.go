package convert

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/html2md/core/hocr"
)

// hocrTable renders an hOCR block as a pipe table when its word boxes line
// up in rows and columns. It reports false, leaving the block to the normal
// walk, when they do not.
func (w *walker) hocrTable(n *html.Node) bool {
	if w.ctx.inline || w.ctx.inTableCell {
		return false
	}
	table, ok := hocr.BuildTable(n)
	if !ok {
		return false
	}
	w.logger.Debug("hocr table rebuilt", "rows", len(table.Rows), "columns", table.Columns())
	w.blockStart()
	w.out.WriteString(strings.TrimRight(table.Markdown(w.escape), "\n"))
	w.blockEnd()
	return true
}
