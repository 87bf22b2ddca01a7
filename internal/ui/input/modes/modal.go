package modes

import (
	tea "github.com/charmbracelet/bubbletea"

	"logogrip/internal/ui/input/types"
)

// ModalMode is active while the detail overlay is open
type ModalMode struct{}

func NewModalMode() *ModalMode {
	return &ModalMode{}
}

func (m *ModalMode) Name() string {
	return "modal"
}

func (m *ModalMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *ModalMode) Exit(ctx types.Context) []types.Action {
	return []types.Action{types.CloseModalAction{}}
}

func (m *ModalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true
	case tea.KeyEsc, tea.KeyEnter:
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	}

	if actions, ok := navigationKey(msg); ok {
		return actions, true
	}
	if actions, ok := zoomKey(msg, ctx); ok {
		return actions, true
	}

	switch msg.String() {
	case "q":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case "c", "y":
		return []types.Action{types.CopyLinkAction{}}, true
	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true
	}

	// Swallow everything else so the grid does not react behind the overlay
	return nil, true
}
