package input

import (
	"logogrip/internal/gallery"
	"logogrip/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
	Zoom  *gallery.Zoom
}

// CurrentIndex returns the cursor position
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of visible entities
func (c *ModelContext) TotalItems() int {
	return len(c.State.Results)
}

// Columns returns the number of cards per grid row
func (c *ModelContext) Columns() int {
	return c.State.Columns
}

// SearchQuery returns the current search query
func (c *ModelContext) SearchQuery() string {
	return c.State.Query
}

// HasActiveEntity reports whether the cursor is on an entity
func (c *ModelContext) HasActiveEntity() bool {
	_, ok := c.State.Selected()
	return ok
}

// CanZoomIn reports whether a larger zoom preset exists
func (c *ModelContext) CanZoomIn() bool {
	return c.Zoom != nil && c.Zoom.Level() < c.Zoom.MaxLevel()
}

// CanZoomOut reports whether a smaller zoom preset exists
func (c *ModelContext) CanZoomOut() bool {
	return c.Zoom != nil && c.Zoom.Level() > 0
}
