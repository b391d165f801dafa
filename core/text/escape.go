// Package text holds the pure string functions the converter is built on:
// escaping, whitespace normalization, chomping, indentation and wrapping.
// Nothing here knows about the parse tree.
package text

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	miscCharRegexp      = regexp.MustCompile(`([\\&<` + "`" + `\[>~#=+|\-])`)
	leadingOrdinalRegex = regexp.MustCompile(`(?m)^(\s*[0-9]+)([.)])`)
)

// Escape backslash-escapes Markdown-significant characters.
//
// With misc set, the characters \ & < ` [ > ~ # = + | - are escaped and a
// leading "number followed by . or )" is broken up so it cannot start an
// ordered list. Asterisks and underscores are escaped independently. Escaping
// prefixes characters, so it must be applied exactly once per text node.
func Escape(s string, misc, asterisks, underscores bool) string {
	if s == "" {
		return ""
	}
	if misc {
		s = miscCharRegexp.ReplaceAllString(s, `\${1}`)
		s = leadingOrdinalRegex.ReplaceAllString(s, `${1}\${2}`)
	}
	if asterisks {
		s = strings.ReplaceAll(s, "*", `\*`)
	}
	if underscores {
		s = strings.ReplaceAll(s, "_", `\_`)
	}
	return s
}

// Unescape removes one backslash in front of every ASCII punctuation
// character. It is used to compare link text with its href.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && isASCIIPunct(s[i+1]) {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isASCIIPunct(c byte) bool {
	return (c >= '!' && c <= '/') || (c >= ':' && c <= '@') ||
		(c >= '[' && c <= '`') || (c >= '{' && c <= '~')
}

// Chomp splits s into the content and single-space markers for its
// surrounding whitespace, so formatting markers can be placed inside the
// spaces: Chomp(" a ") returns (" ", " ", "a").
func Chomp(s string) (prefix, suffix, trimmed string) {
	if s == "" {
		return "", "", ""
	}
	if r, _ := utf8.DecodeRuneInString(s); unicode.IsSpace(r) {
		prefix = " "
	}
	if r, _ := utf8.DecodeLastRuneInString(s); unicode.IsSpace(r) {
		suffix = " "
	}
	return prefix, suffix, strings.TrimSpace(s)
}

// EscapePipes backslash-escapes every pipe that is not already escaped, so
// the text can sit inside a table cell.
func EscapePipes(s string) string {
	if !strings.Contains(s, "|") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	backslashes := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '|' && backslashes%2 == 0 {
			b.WriteByte('\\')
		}
		if c == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		b.WriteByte(c)
	}
	return b.String()
}
