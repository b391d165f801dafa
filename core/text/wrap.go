package text

import (
	"regexp"
	"strings"

	"github.com/rivo/uniseg"
)

var (
	listItemRegexp    = regexp.MustCompile(`^([*+-]|[0-9]{1,9}[.)])([ \t]|$)`)
	headingRegexp     = regexp.MustCompile(`^#{1,6}([ \t]|$)`)
	underlineRegexp   = regexp.MustCompile(`^(=+|-+)[ \t]*$`)
	htmlLineRegexp    = regexp.MustCompile(`^</?[A-Za-z][A-Za-z0-9-]*[\s/>]`)
	blockMarkerRegexp = regexp.MustCompile(`^([*+-]|[0-9]{1,9}[.)]|#{1,6}|>|\||=+|-+)$`)
)

// Width returns the display width of s in terminal cells.
func Width(s string) int {
	return uniseg.StringWidth(s)
}

// Wrap reflows paragraph text in markdown to at most width cells per line.
//
// Fenced code blocks, indented code, headings, setext underlines, list items
// and their indented continuation lines, blockquotes, table rows and raw HTML
// lines are passed through unchanged. Only plain paragraph lines are
// reflowed. Words are never split, so a word wider than width overflows the
// line.
func Wrap(markdown string, width int) string {
	if width <= 0 || markdown == "" {
		return markdown
	}
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))

	var para []string
	flush := func(raw bool) {
		if len(para) == 0 {
			return
		}
		if raw {
			out = append(out, para...)
		} else {
			out = append(out, reflow(para, width)...)
		}
		para = nil
	}

	var fence string
	inList := false
	for _, line := range lines {
		stripped := strings.TrimLeft(line, " \t")

		if fence != "" {
			out = append(out, line)
			if strings.HasPrefix(stripped, fence) && strings.TrimSpace(strings.TrimLeft(stripped, fence[:1])) == "" {
				fence = ""
			}
			continue
		}
		if f := fenceOpener(stripped); f != "" {
			flush(false)
			fence = f
			out = append(out, line)
			continue
		}

		switch {
		case strings.TrimSpace(line) == "":
			flush(false)
			out = append(out, line)
		case underlineRegexp.MatchString(line) && len(para) > 0:
			// The paragraph is a setext heading's text.
			flush(true)
			out = append(out, line)
		case listItemRegexp.MatchString(stripped):
			flush(false)
			inList = true
			out = append(out, line)
		case headingRegexp.MatchString(stripped),
			strings.HasPrefix(stripped, ">"),
			strings.HasPrefix(stripped, "|"),
			htmlLineRegexp.MatchString(stripped),
			underlineRegexp.MatchString(line):
			flush(false)
			inList = false
			out = append(out, line)
		case inList && stripped != line:
			out = append(out, line)
		case indentWidth(line) >= 4:
			flush(false)
			out = append(out, line)
		default:
			inList = false
			para = append(para, line)
			if hasHardBreak(line) {
				flush(false)
			}
		}
	}
	flush(false)
	return strings.Join(out, "\n")
}

func fenceOpener(s string) string {
	for _, ch := range []byte{'`', '~'} {
		n := 0
		for n < len(s) && s[n] == ch {
			n++
		}
		if n >= 3 {
			return s[:n]
		}
	}
	return ""
}

func indentWidth(line string) int {
	w := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ' ':
			w++
		case '\t':
			w += 4 - w%4
		default:
			return w
		}
	}
	return w
}

func hasHardBreak(line string) bool {
	return strings.HasSuffix(line, "  ") || strings.HasSuffix(line, `\`)
}

// reflow greedily fills lines with the words of a paragraph. A trailing hard
// break on the last source line is carried over to the last output line.
func reflow(lines []string, width int) []string {
	breakSuffix := ""
	last := lines[len(lines)-1]
	switch {
	case strings.HasSuffix(last, `\`) && !strings.HasSuffix(last, `\\`):
		breakSuffix = `\`
		lines[len(lines)-1] = strings.TrimSuffix(last, `\`)
	case strings.HasSuffix(last, "  "):
		breakSuffix = "  "
	}

	words := strings.Fields(strings.Join(lines, " "))
	if len(words) == 0 {
		return nil
	}
	var out []string
	var cur strings.Builder
	curWidth := 0
	for _, word := range words {
		w := Width(word)
		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
			curWidth = w
		case curWidth+1+w <= width || blockMarkerRegexp.MatchString(word):
			// A word that would open a block at the start of a line stays on
			// the current line even if it overflows.
			cur.WriteByte(' ')
			cur.WriteString(word)
			curWidth += 1 + w
		default:
			out = append(out, cur.String())
			cur.Reset()
			cur.WriteString(word)
			curWidth = w
		}
	}
	out = append(out, cur.String()+breakSuffix)
	return out
}
