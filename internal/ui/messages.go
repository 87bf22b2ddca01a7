package ui

import (
	"logogrip/internal/clipboard"
	"logogrip/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// copyResultMsg reports the outcome of a clipboard write
type copyResultMsg struct {
	slug   string
	link   string
	method clipboard.Method
	err    error
}

// copyExpiredMsg ends the "Copied!" feedback started with token
type copyExpiredMsg struct {
	token uint64
}

// previewMsg carries a rendered logo for the modal
type previewMsg struct {
	key     string
	content string
}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals that an external pager owns the terminal
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals that the pager has exited
type resumeRenderingMsg struct{}
