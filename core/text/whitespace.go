package text

import "strings"

// isCollapsible reports whether r belongs to the fixed set of horizontal
// space characters that normalization folds into one ASCII space. The
// no-break space is not in the set.
func isCollapsible(r rune) bool {
	switch r {
	case ' ', '\t', '\f', '\v',
		'\u1680', '\u180e',
		'\u2000', '\u2001', '\u2002', '\u2003', '\u2004', '\u2005',
		'\u2006', '\u2007', '\u2008', '\u2009', '\u200a',
		'\u202f', '\u205f', '\u3000':
		return true
	}
	return false
}

// NormalizeWhitespace collapses every run of horizontal whitespace into a
// single space. Newlines are left alone.
func NormalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inRun := false
	for _, r := range s {
		if isCollapsible(r) {
			if !inRun {
				b.WriteByte(' ')
				inRun = true
			}
			continue
		}
		inRun = false
		b.WriteRune(r)
	}
	return b.String()
}

// IsBlank reports whether s contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if r != '\n' && r != '\r' && !isCollapsible(r) {
			return false
		}
	}
	return true
}

// Indent prefixes every non-empty line of s with prefix.
func Indent(s, prefix string) string {
	if s == "" || prefix == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// LongestRun returns the length of the longest run of ch in s.
func LongestRun(s string, ch byte) int {
	longest, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == ch {
			cur++
			if cur > longest {
				longest = cur
			}
			continue
		}
		cur = 0
	}
	return longest
}

// CodeFence returns a fence of ch long enough to enclose content: at least
// three characters and longer than any run of ch inside it.
func CodeFence(content string, ch byte) string {
	n := LongestRun(content, ch) + 1
	if n < 3 {
		n = 3
	}
	return strings.Repeat(string(ch), n)
}

// InlineCodeDelimiter returns the backtick string for an inline code span.
func InlineCodeDelimiter(content string) string {
	return strings.Repeat("`", LongestRun(content, '`')+1)
}
