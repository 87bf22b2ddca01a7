package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws popupContent centred on top of a greyed copy of
// mainContent. Lines of the base left and right of the popup stay visible.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	popupLines := strings.Split(styledPopup, "\n")

	modalW := lipgloss.Width(styledPopup)
	modalH := len(popupLines)
	if modalH > height {
		popupLines = popupLines[:max(height, 0)]
		modalH = len(popupLines)
	}
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	base := strings.Split(mainContent, "\n")
	for len(base) < height {
		base = append(base, "")
	}

	out := make([]string, len(base))
	for i, line := range base {
		plain := ansi.Strip(line)
		if i < y || i >= y+modalH {
			out[i] = pr.fade(plain)
			continue
		}
		left := ansi.Truncate(plain, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(plain, x+modalW, "")
		out[i] = pr.fade(left) + popupLines[i-y] + pr.fade(right)
	}
	return strings.Join(out, "\n")
}

func (pr *PopupRenderer) fade(s string) string {
	if s == "" {
		return ""
	}
	return pr.styles.Faded.Render(s)
}
