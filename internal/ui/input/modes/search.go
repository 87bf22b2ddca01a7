package modes

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"logogrip/internal/ui/input/types"
)

// SearchMode edits the query. Every keystroke re-runs the search through
// UpdateTextAction; up/down and ctrl+up/down keep working while typing.
type SearchMode struct {
	TextInputMode
}

func NewSearchMode(ti *textinput.Model) *SearchMode {
	return &SearchMode{
		TextInputMode: NewTextInputMode(types.ModeSearch, "search", "/", ti),
	}
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyUp:
		return []types.Action{types.NavigateAction{Direction: types.DirUp}}, true
	case tea.KeyDown:
		return []types.Action{types.NavigateAction{Direction: types.DirDown}}, true
	}
	if msg.String() == "ctrl+up" || msg.String() == "ctrl+down" {
		return zoomKey(msg, ctx)
	}
	return m.TextInputMode.HandleKey(msg, ctx)
}
