package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"logogrip/internal/ui/input/modes"
	"logogrip/internal/ui/input/types"
)

// Handler routes key presses to the active mode and tracks mode changes
type Handler struct {
	currentMode types.Mode
	modes       map[types.Mode]types.ModeHandler
	textInput   *textinput.Model // shared by text modes
}

func New() *Handler {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "search logos"
	ti.CharLimit = 64

	h := &Handler{
		currentMode: types.ModeNormal,
		textInput:   &ti,
		modes:       make(map[types.Mode]types.ModeHandler),
	}

	h.modes[types.ModeNormal] = modes.NewNormalMode()
	h.modes[types.ModeSearch] = modes.NewSearchMode(h.textInput)
	h.modes[types.ModeModal] = modes.NewModalMode()

	return h
}

// HandleKey returns the actions produced by msg in the current mode
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, tea.Cmd) {
	handler := h.modes[h.currentMode]
	if handler == nil {
		return nil, nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed && !isTextMode(h.currentMode) {
		return nil, nil
	}

	var cmd tea.Cmd
	var all []types.Action

	for _, action := range actions {
		change, ok := action.(types.ChangeModeAction)
		if !ok {
			all = append(all, action)
			continue
		}
		all = append(all, h.switchMode(change.Mode, change.Data, ctx)...)
		if isTextMode(h.currentMode) {
			cmd = textinput.Blink
		}
	}

	// Keys a text mode did not consume go to the text input
	if isTextMode(h.currentMode) && !consumed {
		var textCmd tea.Cmd
		*h.textInput, textCmd = h.textInput.Update(msg)
		cmd = textCmd
		all = append(all, types.UpdateTextAction{Text: h.textInput.Value()})
	}

	return all, cmd
}

func (h *Handler) switchMode(mode types.Mode, data string, ctx types.Context) []types.Action {
	var actions []types.Action
	if current := h.modes[h.currentMode]; current != nil {
		actions = append(actions, current.Exit(ctx)...)
	}

	h.currentMode = mode

	if isTextMode(mode) {
		h.textInput.Reset()
		h.textInput.SetValue(data)
		h.textInput.CursorEnd()
		h.textInput.Focus()
	} else {
		h.textInput.Blur()
	}

	if next := h.modes[mode]; next != nil {
		actions = append(actions, next.Enter(ctx)...)
	}
	return actions
}

// ChangeMode switches mode outside of key handling, running Exit/Enter hooks
func (h *Handler) ChangeMode(mode types.Mode, data string, ctx types.Context) []types.Action {
	if mode == h.currentMode {
		return nil
	}
	return h.switchMode(mode, data, ctx)
}

// Update forwards non-keyboard messages (cursor blink) to the text input
func (h *Handler) Update(msg tea.Msg) tea.Cmd {
	if !isTextMode(h.currentMode) {
		return nil
	}
	var cmd tea.Cmd
	*h.textInput, cmd = h.textInput.Update(msg)
	return cmd
}

// CurrentMode returns the active mode; a nil handler is in normal mode
func (h *Handler) CurrentMode() types.Mode {
	if h == nil {
		return types.ModeNormal
	}
	return h.currentMode
}

// TextInput returns the text input while a text mode is active
func (h *Handler) TextInput() *textinput.Model {
	if h != nil && isTextMode(h.currentMode) {
		return h.textInput
	}
	return nil
}

func (h *Handler) RegisterMode(mode types.Mode, handler types.ModeHandler) {
	h.modes[mode] = handler
}

func (h *Handler) Reset() {
	h.currentMode = types.ModeNormal
	h.textInput.Reset()
	h.textInput.Blur()
}

func isTextMode(mode types.Mode) bool {
	return mode == types.ModeSearch
}
