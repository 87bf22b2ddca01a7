package types

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeModal
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeModal:
		return "modal"
	default:
		return "normal"
	}
}

// Action represents an action to be performed
type Action interface {
	Type() string
}

// Context provides read-only access to gallery state
type Context interface {
	CurrentIndex() int
	TotalItems() int
	Columns() int
	SearchQuery() string
	// HasActiveEntity reports whether an entity is under the cursor
	HasActiveEntity() bool
	CanZoomIn() bool
	CanZoomOut() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)
	Enter(ctx Context) []Action
	Exit(ctx Context) []Action
	Name() string
}
