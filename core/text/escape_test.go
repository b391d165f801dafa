package text

import (
	"strings"
	"testing"
)

func TestEscape_Flags(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		misc        bool
		asterisks   bool
		underscores bool
		want        string
	}{
		{"empty", "", true, true, true, ""},
		{"plain", "hello world", true, true, true, "hello world"},
		{"misc chars", "a<b>&c", true, false, false, `a\<b\>\&c`},
		{"brackets and hash", "[x] #1", true, false, false, `\[x] \#1`},
		{"ordered list marker", "1. Item", true, false, false, `1\. Item`},
		{"paren ordinal", "2) Item", true, false, false, `2\) Item`},
		{"ordinal mid text untouched", "version 1.2", true, false, false, "version 1.2"},
		{"backslash", `a\b`, true, false, false, `a\\b`},
		{"misc off", "a<b> 1. x", false, false, false, "a<b> 1. x"},
		{"asterisks", "*bold*", false, true, false, `\*bold\*`},
		{"underscores", "snake_case", false, false, true, `snake\_case`},
		{"all", "-_*", true, true, true, `\-\_\*`},
	}
	for _, tt := range tests {
		got := Escape(tt.in, tt.misc, tt.asterisks, tt.underscores)
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestEscape_AsterisksRecoverable(t *testing.T) {
	inputs := []string{"*", "a*b", "**strong**", `\*already`, "x * y * z"}
	for _, in := range inputs {
		escaped := Escape(in, false, true, false)
		recovered := strings.ReplaceAll(escaped, `\*`, "*")
		if recovered != in {
			t.Errorf("input %q: escaped %q recovered as %q", in, escaped, recovered)
		}
	}
}

func TestUnescape(t *testing.T) {
	if got := Unescape(`https://a.b/c\_d`); got != "https://a.b/c_d" {
		t.Errorf("expected %q, got %q", "https://a.b/c_d", got)
	}
	if got := Unescape(`a\b`); got != `a\b` {
		t.Errorf("expected backslash before letter kept, got %q", got)
	}
}

func TestChomp(t *testing.T) {
	tests := []struct {
		in                     string
		prefix, suffix, middle string
	}{
		{"", "", "", ""},
		{"a", "", "", "a"},
		{" a", " ", "", "a"},
		{"a ", "", " ", "a"},
		{"  a  b \n", " ", " ", "a  b"},
		{"\ta", " ", "", "a"},
	}
	for _, tt := range tests {
		p, s, m := Chomp(tt.in)
		if p != tt.prefix || s != tt.suffix || m != tt.middle {
			t.Errorf("Chomp(%q): expected (%q, %q, %q), got (%q, %q, %q)",
				tt.in, tt.prefix, tt.suffix, tt.middle, p, s, m)
		}
	}
}

func TestChomp_PreservesBoundaryWhitespacePresence(t *testing.T) {
	inputs := []string{"x", " x", "x ", " x ", "\nx\t", "   ", "a b"}
	isSpace := func(b byte) bool { return b == ' ' || b == '\t' || b == '\n' }
	for _, in := range inputs {
		p, s, m := Chomp(in)
		joined := p + m + s
		if isSpace(in[0]) != isSpace(joined[0]) {
			t.Errorf("%q: leading whitespace presence changed in %q", in, joined)
		}
		if isSpace(in[len(in)-1]) != isSpace(joined[len(joined)-1]) {
			t.Errorf("%q: trailing whitespace presence changed in %q", in, joined)
		}
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a  b", "a b"},
		{"a\t\tb", "a b"},
		{"a\u2003\u2003b", "a b"},
		{"a\n\nb", "a\n\nb"},
		{"a \n b", "a \n b"},
		{"a\u00a0b", "a\u00a0b"},
	}
	for _, tt := range tests {
		if got := NormalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("NormalizeWhitespace(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestCodeFence(t *testing.T) {
	if got := CodeFence("plain", '`'); got != "```" {
		t.Errorf("expected %q, got %q", "```", got)
	}
	if got := CodeFence("has ```` inside", '`'); got != "`````" {
		t.Errorf("expected five backticks, got %q", got)
	}
	if got := InlineCodeDelimiter("a ` b"); got != "``" {
		t.Errorf("expected double backtick, got %q", got)
	}
}

func TestIndent(t *testing.T) {
	got := Indent("a\n\nb", "  ")
	if got != "  a\n\n  b" {
		t.Errorf("expected blank lines left unindented, got %q", got)
	}
}

func TestEscapePipes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a|b", `a\|b`},
		{`a\|b`, `a\|b`},
		{`a\\|b`, `a\\\|b`},
		{"||", `\|\|`},
		{"none", "none"},
	}
	for _, tt := range tests {
		if got := EscapePipes(tt.in); got != tt.want {
			t.Errorf("EscapePipes(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
