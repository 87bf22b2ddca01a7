package logic

import (
	"logogrip/internal/ui/input/types"
)

// Navigator moves the cursor over a row-major grid and keeps it inside the
// visible window of rows.
type Navigator struct {
	selectedIndex  int
	viewportOffset int // first visible row
	viewportRows   int
	columns        int
	total          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{columns: 1, viewportRows: 1}
}

// UpdateState loads the current grid geometry
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportRows, columns, total int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportRows = max(1, viewportRows)
	n.columns = max(1, columns)
	n.total = max(0, total)
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the first visible row
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// TotalRows returns the number of grid rows
func (n *Navigator) TotalRows() int {
	if n.total == 0 {
		return 0
	}
	return (n.total + n.columns - 1) / n.columns
}

// Move applies dir and returns the new selection and viewport offset.
// Left and right wrap across row ends; up and down keep the column and stop
// at the edges, except that moving down into a short last row lands on its
// final card.
func (n *Navigator) Move(dir types.Direction) (int, int) {
	if n.total == 0 {
		n.selectedIndex, n.viewportOffset = 0, 0
		return 0, 0
	}

	last := n.total - 1
	idx := n.selectedIndex

	switch dir {
	case types.DirLeft:
		idx--
	case types.DirRight:
		idx++
	case types.DirUp:
		if idx-n.columns >= 0 {
			idx -= n.columns
		}
	case types.DirDown:
		if idx+n.columns <= last {
			idx += n.columns
		} else if idx/n.columns < (last)/n.columns {
			idx = last
		}
	case types.DirPageUp:
		idx -= n.columns * n.viewportRows
	case types.DirPageDown:
		idx += n.columns * n.viewportRows
	case types.DirHome:
		idx = 0
	case types.DirEnd:
		idx = last
	}

	n.selectedIndex = min(max(idx, 0), last)
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	if n.total == 0 {
		index = 0
	} else {
		index = min(max(index, 0), n.total-1)
	}
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// ensureSelectedVisible scrolls the viewport so the selected row is shown
func (n *Navigator) ensureSelectedVisible() {
	row := n.selectedIndex / n.columns

	if row < n.viewportOffset {
		n.viewportOffset = row
	}
	if row >= n.viewportOffset+n.viewportRows {
		n.viewportOffset = row - n.viewportRows + 1
	}

	maxOffset := max(0, n.TotalRows()-n.viewportRows)
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
