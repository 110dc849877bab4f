// Package textutil provides unicode-aware text clipping for TUI rendering.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks clipped text.
const Ellipsis = "…"

// Width returns the number of terminal columns s occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most maxWidth columns, ending in Ellipsis when
// anything was cut. Wide runes (CJK, emoji) count as two columns.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if Width(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// Head keeps the first maxLines lines of text, each truncated to maxWidth.
// A final Ellipsis line is added when lines were dropped.
func Head(text string, maxLines, maxWidth int) string {
	lines := strings.Split(text, "\n")
	dropped := maxLines > 0 && len(lines) > maxLines
	if dropped {
		lines = lines[:maxLines]
	}
	for i, l := range lines {
		lines[i] = Truncate(l, maxWidth)
	}
	if dropped {
		lines = append(lines, Ellipsis)
	}
	return strings.Join(lines, "\n")
}
