package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"logogrip/internal/domain"
)

const (
	headerLines = 3 // title, search line, gap
	footerLines = 3 // gap, status, key help
	cardHeight  = 4 // border + name + slug
	minCardW    = 12
)

// ModalState is the content of the detail overlay
type ModalState struct {
	Name    string
	Slug    string
	Link    string
	Preview string
	Copied  bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Entities       []domain.Entity // visible results in display order
	Total          int             // entities in the dataset
	SelectedIndex  int
	ViewportOffset int // first visible grid row
	Geometry       Geometry
	Zoom           int // zoom preset value

	Query     string
	InputMode string
	TextInput string

	FirstLoad  bool
	Loading    bool
	Spinner    string
	LoadFailed bool
	LoadError  string
	Dropped    int

	StatusMessage string
	Copied        bool

	Modal            *ModalState
	ShowHelp         bool
	HelpContent      string
	HelpScrollOffset int
	KeyHelp          string
}

// Geometry is the card layout for a terminal size and zoom level
type Geometry struct {
	CardWidth int
	Columns   int
	Rows      int // grid rows that fit
}

// Layout computes the grid geometry. Zoom presets are pixel sizes; every
// 8 pixels become one terminal column of card width.
func Layout(width, height, zoom int) Geometry {
	cardW := max(zoom/8, minCardW)
	cols := max(1, width/cardW)
	rows := max(1, (height-headerLines-footerLines)/cardHeight)
	return Geometry{CardWidth: cardW, Columns: cols, Rows: rows}
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles exposes the renderer styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	var content strings.Builder

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")
	content.WriteString(r.renderSearchLine(state))
	content.WriteString("\n\n")
	content.WriteString(r.renderBody(state))
	content.WriteString("\n\n")
	content.WriteString(r.renderStatus(state))
	if state.KeyHelp != "" {
		content.WriteString("\n")
		content.WriteString(state.KeyHelp)
	}

	main := content.String()

	switch {
	case state.ShowHelp:
		popup := scrollWindow(state.HelpContent, state.Height-6, state.HelpScrollOffset, r.styles.Scroll)
		return r.popupRender.RenderPopupOverlay(main, popup, state.Height, state.Width, r.styles.Modal)
	case state.Modal != nil:
		return r.popupRender.RenderPopupOverlay(main, r.renderModal(*state.Modal), state.Height, state.Width, r.styles.Modal)
	}
	return main
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("logogrip")

	var indicators []string
	if state.Loading {
		indicators = append(indicators, r.styles.StatusLoading.Render(state.Spinner+" Loading..."))
	}
	if state.LoadFailed {
		indicators = append(indicators, r.styles.StatusError.Render("Error"))
	}
	if state.Zoom > 0 {
		indicators = append(indicators, r.styles.Dim.Render(fmt.Sprintf("%dpx", state.Zoom)))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := strings.Join(indicators, "  ")
	gap := state.Width - lipgloss.Width(logo) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return logo + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderSearchLine(state ViewState) string {
	switch {
	case state.InputMode == "search":
		return r.styles.Prompt.Render("/") + " " + state.TextInput
	case state.Query != "":
		return r.styles.Dim.Render("search: ") + r.styles.Query.Render(state.Query) + r.styles.Dim.Render("  (esc to clear)")
	default:
		return r.styles.Dim.Render("press / to search")
	}
}

func (r *Renderer) renderBody(state ViewState) string {
	height := state.Geometry.Rows * cardHeight

	switch {
	case state.FirstLoad && !state.LoadFailed:
		return r.center(state.Width, height, r.styles.StatusLoading.Render(state.Spinner+" Loading..."))
	case len(state.Entities) == 0 && state.LoadFailed && state.Total == 0:
		msg := r.styles.StatusError.Render("Error") + "\n" + r.styles.Dim.Render(state.LoadError)
		return r.center(state.Width, height, msg)
	case len(state.Entities) == 0 && state.Query != "":
		return r.center(state.Width, height, r.styles.Dim.Render(fmt.Sprintf("No logos match %q", state.Query)))
	case len(state.Entities) == 0:
		return strings.Repeat("\n", max(height-1, 0))
	}

	return r.renderGrid(state, height)
}

func (r *Renderer) renderGrid(state ViewState, height int) string {
	g := state.Geometry
	start := state.ViewportOffset * g.Columns
	end := min(start+g.Rows*g.Columns, len(state.Entities))

	var rows []string
	for rowStart := start; rowStart < end; rowStart += g.Columns {
		var cards []string
		for i := rowStart; i < min(rowStart+g.Columns, end); i++ {
			cards = append(cards, r.renderCard(state.Entities[i], g.CardWidth, i == state.SelectedIndex))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if pad := height - lipgloss.Height(grid); pad > 0 {
		grid += strings.Repeat("\n", pad)
	}
	return grid
}

// renderCard renders one entity card of the given outer width
func (r *Renderer) renderCard(e domain.Entity, width int, selected bool) string {
	style := r.styles.Card
	if selected {
		style = r.styles.CardSelected
	}
	inner := max(width-4, 1)
	name := r.styles.CardName.Render(truncate(e.Name, inner))
	slug := r.styles.CardSlug.Render(truncate(e.Slug, inner))
	return style.Width(width - 2).Render(name + "\n" + slug)
}

func (r *Renderer) renderStatus(state ViewState) string {
	var parts []string

	switch {
	case state.Query != "":
		parts = append(parts, fmt.Sprintf("%d of %d logos", len(state.Entities), state.Total))
	case !state.FirstLoad:
		parts = append(parts, fmt.Sprintf("%d logos", state.Total))
	}
	if state.Dropped > 0 {
		parts = append(parts, r.styles.StatusWarning.Render(fmt.Sprintf("%d skipped", state.Dropped)))
	}
	if rows := totalRows(len(state.Entities), state.Geometry.Columns); rows > state.Geometry.Rows {
		parts = append(parts, r.styles.Scroll.Render(fmt.Sprintf("row %d/%d", state.ViewportOffset+1, rows)))
	}
	if state.Copied {
		parts = append(parts, r.styles.StatusSuccess.Render("Copied!"))
	}
	if state.LoadFailed && state.Total > 0 {
		parts = append(parts, r.styles.StatusError.Render("reload failed: "+state.LoadError))
	}
	if state.StatusMessage != "" {
		parts = append(parts, state.StatusMessage)
	}

	return r.styles.Status.Render(strings.Join(parts, "  ·  "))
}

func (r *Renderer) renderModal(m ModalState) string {
	var b strings.Builder
	b.WriteString(r.styles.ModalTitle.Render(m.Name))
	b.WriteString("\n")
	b.WriteString(r.styles.Dim.Render(m.Slug))
	b.WriteString("\n\n")
	if m.Preview != "" {
		b.WriteString(m.Preview)
		b.WriteString("\n\n")
	}
	if m.Link != "" {
		b.WriteString(r.styles.Link.Render(m.Link))
		b.WriteString("\n")
	}
	if m.Copied {
		b.WriteString(r.styles.StatusSuccess.Render("Copied!"))
	} else {
		b.WriteString(r.styles.Help.Render("c copy link · esc close"))
	}
	return b.String()
}

func (r *Renderer) center(width, height int, s string) string {
	return lipgloss.Place(max(width, 1), max(height, 1), lipgloss.Center, lipgloss.Center, s)
}

func totalRows(n, cols int) int {
	if n == 0 || cols <= 0 {
		return 0
	}
	return (n + cols - 1) / cols
}

// scrollWindow returns the visible part of content with scroll markers
func scrollWindow(content string, height, offset int, marker lipgloss.Style) string {
	lines := strings.Split(content, "\n")
	height = max(height, 5)
	if len(lines) <= height {
		return content
	}

	offset = min(max(offset, 0), len(lines)-height)
	visible := append([]string(nil), lines[offset:offset+height]...)
	if offset > 0 {
		visible[0] = marker.Render("↑ (more above)")
	}
	if offset+height < len(lines) {
		visible[len(visible)-1] = marker.Render("↓ (more below)")
	}
	return strings.Join(visible, "\n")
}
