package types

// Direction of a cursor move in the gallery grid
type Direction string

const (
	DirUp       Direction = "up"
	DirDown     Direction = "down"
	DirLeft     Direction = "left"
	DirRight    Direction = "right"
	DirPageUp   Direction = "pageup"
	DirPageDown Direction = "pagedown"
	DirHome     Direction = "home"
	DirEnd      Direction = "end"
)

// NavigateAction moves the cursor
type NavigateAction struct {
	Direction Direction
}

func (a NavigateAction) Type() string { return "navigate" }

// ChangeModeAction switches input mode
type ChangeModeAction struct {
	Mode Mode
	Data string
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// UpdateTextAction carries the live search text
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

// SubmitTextAction commits the text of a text mode
type SubmitTextAction struct {
	Text string
	Mode Mode
}

func (a SubmitTextAction) Type() string { return "submit_text" }

// CancelTextAction abandons text input
type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// ClearSearchAction resets the query so the full dataset shows again
type ClearSearchAction struct{}

func (a ClearSearchAction) Type() string { return "clear_search" }

// ZoomAction steps the zoom level
type ZoomAction struct {
	In bool
}

func (a ZoomAction) Type() string { return "zoom" }

// CopyLinkAction copies the active entity's link
type CopyLinkAction struct{}

func (a CopyLinkAction) Type() string { return "copy_link" }

// OpenModalAction opens the detail overlay for the entity under the cursor
type OpenModalAction struct{}

func (a OpenModalAction) Type() string { return "open_modal" }

// CloseModalAction closes the detail overlay
type CloseModalAction struct{}

func (a CloseModalAction) Type() string { return "close_modal" }

// ReloadAction asks the catalog to load the manifest again
type ReloadAction struct{}

func (a ReloadAction) Type() string { return "reload" }

// ToggleHelpAction shows help
type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

// QuitAction exits the application
type QuitAction struct {
	Force bool
}

func (a QuitAction) Type() string { return "quit" }
