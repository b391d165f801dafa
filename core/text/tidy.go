package text

import "strings"

// Tidy cleans up converted Markdown outside fenced code blocks: leading blank
// lines are dropped, runs of blank lines collapse to one, whitespace-only
// lines become empty and trailing whitespace is trimmed from a line that
// ends a paragraph, where it cannot be a hard break. Trailing blank lines are
// removed.
func Tidy(markdown string) string {
	lines := strings.Split(markdown, "\n")
	out := make([]string, 0, len(lines))

	var fence string
	blank := true // suppresses leading blank lines
	for _, line := range lines {
		stripped := strings.TrimLeft(line, " \t")
		if fence != "" {
			out = append(out, line)
			if strings.HasPrefix(stripped, fence) && strings.TrimSpace(strings.TrimLeft(stripped, fence[:1])) == "" {
				fence = ""
			}
			blank = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			if !blank && len(out) > 0 {
				out[len(out)-1] = strings.TrimRight(out[len(out)-1], " \t")
				out = append(out, "")
			}
			blank = true
			continue
		}
		if f := fenceOpener(stripped); f != "" {
			fence = f
		}
		out = append(out, line)
		blank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) > 0 && fence == "" {
		out[len(out)-1] = strings.TrimRight(out[len(out)-1], " \t")
	}
	return strings.Join(out, "\n")
}
