package modes

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"logogrip/internal/ui/input/types"
)

const ggTimeout = 500 * time.Millisecond

// NormalMode handles grid browsing keys
type NormalMode struct {
	lastKeyWasG bool
	lastGTime   time.Time
	now         func() time.Time
}

func NewNormalMode() *NormalMode {
	return &NormalMode{now: time.Now}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	m.lastKeyWasG = false
	return nil
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	if actions, ok := navigationKey(msg); ok {
		m.lastKeyWasG = false
		return actions, true
	}
	if actions, ok := zoomKey(msg, ctx); ok {
		return actions, true
	}

	switch msg.Type {
	case tea.KeyCtrlC:
		return []types.Action{types.QuitAction{Force: true}}, true

	case tea.KeyEnter:
		if ctx.HasActiveEntity() {
			return []types.Action{
				types.OpenModalAction{},
				types.ChangeModeAction{Mode: types.ModeModal},
			}, true
		}
		return nil, true

	case tea.KeyEsc:
		// Esc drops an active query
		if ctx.SearchQuery() != "" {
			return []types.Action{types.ClearSearchAction{}}, true
		}
		return nil, true
	}

	switch msg.String() {
	case "/":
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.SearchQuery()}}, true

	case "c", "y":
		if ctx.HasActiveEntity() {
			return []types.Action{types.CopyLinkAction{}}, true
		}
		return nil, true

	case "r":
		return []types.Action{types.ReloadAction{}}, true

	case "?":
		return []types.Action{types.ToggleHelpAction{}}, true

	case "q":
		return []types.Action{types.QuitAction{Force: false}}, true

	case "g":
		if m.lastKeyWasG && m.now().Sub(m.lastGTime) < ggTimeout {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: types.DirHome}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = m.now()
		return nil, true

	case "G":
		m.lastKeyWasG = false
		return []types.Action{types.NavigateAction{Direction: types.DirEnd}}, true
	}

	m.lastKeyWasG = false
	return nil, false
}

// navigationKey maps cursor keys shared by the normal and modal modes
func navigationKey(msg tea.KeyMsg) ([]types.Action, bool) {
	var dir types.Direction
	switch msg.Type {
	case tea.KeyUp:
		dir = types.DirUp
	case tea.KeyDown:
		dir = types.DirDown
	case tea.KeyLeft:
		dir = types.DirLeft
	case tea.KeyRight:
		dir = types.DirRight
	case tea.KeyPgUp:
		dir = types.DirPageUp
	case tea.KeyPgDown:
		dir = types.DirPageDown
	case tea.KeyHome:
		dir = types.DirHome
	case tea.KeyEnd:
		dir = types.DirEnd
	case tea.KeyRunes:
		switch msg.String() {
		case "k":
			dir = types.DirUp
		case "j":
			dir = types.DirDown
		case "h":
			dir = types.DirLeft
		case "l":
			dir = types.DirRight
		}
	}
	if dir == "" {
		return nil, false
	}
	return []types.Action{types.NavigateAction{Direction: dir}}, true
}

// zoomKey maps +/- and ctrl+up/down. Saturated zoom still consumes the key.
func zoomKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch msg.String() {
	case "+", "=", "ctrl+up":
		if !ctx.CanZoomIn() {
			return nil, true
		}
		return []types.Action{types.ZoomAction{In: true}}, true
	case "-", "_", "ctrl+down":
		if !ctx.CanZoomOut() {
			return nil, true
		}
		return []types.Action{types.ZoomAction{In: false}}, true
	}
	return nil, false
}
