// internal/util/util.go
package util

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// PadRight pads s with spaces to width terminal cells.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// Truncate shortens s to at most width terminal cells, ending in an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// WrapToWidth wraps text at word boundaries so no line exceeds width cells.
// Words longer than width are split.
func WrapToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	var out []string
	for _, line := range strings.Split(text, "\n") {
		words := strings.Fields(line)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		var cur strings.Builder
		curWidth := 0
		for _, w := range words {
			wWidth := runewidth.StringWidth(w)
			space := 0
			if curWidth > 0 {
				space = 1
			}
			if curWidth+space+wWidth <= width {
				if space == 1 {
					cur.WriteByte(' ')
				}
				cur.WriteString(w)
				curWidth += space + wWidth
				continue
			}
			if curWidth > 0 {
				out = append(out, cur.String())
				cur.Reset()
				curWidth = 0
			}
			for wWidth > width {
				head := runewidth.Truncate(w, width, "")
				if head == "" {
					_, size := utf8.DecodeRuneInString(w)
					head = w[:size]
				}
				out = append(out, head)
				w = w[len(head):]
				wWidth = runewidth.StringWidth(w)
			}
			cur.WriteString(w)
			curWidth = wWidth
		}
		if cur.Len() > 0 {
			out = append(out, cur.String())
		}
	}
	return strings.Join(out, "\n")
}
