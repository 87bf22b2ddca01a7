package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap describes the gallery bindings for the footer and the help page.
// Dispatch itself lives in the input modes.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Page    key.Binding
	Ends    key.Binding
	Search  key.Binding
	Clear   key.Binding
	Open    key.Binding
	Close   key.Binding
	Copy    key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Reload  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the gallery key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Page:    key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "page")),
		Ends:    key.NewBinding(key.WithKeys("g", "G", "home", "end"), key.WithHelp("gg/G", "first/last")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Clear:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Close:   key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "close details")),
		Copy:    key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c/y", "copy link")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "=", "ctrl+up"), key.WithHelp("+", "zoom in")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_", "ctrl+down"), key.WithHelp("-", "zoom out")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Open, k.Copy, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Page, k.Ends},
		{k.Search, k.Clear},
		{k.Open, k.Close, k.Copy},
		{k.ZoomIn, k.ZoomOut, k.Reload, k.Help, k.Quit},
	}
}
