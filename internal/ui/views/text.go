package views

import "github.com/charmbracelet/x/ansi"

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
