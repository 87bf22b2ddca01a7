package gallery

// DefaultZoomPresets are the card sizes offered when none are configured
var DefaultZoomPresets = []int{100, 160, 200}

// Zoom steps through an ordered list of size presets. The level never
// leaves [0, len(presets)-1].
type Zoom struct {
	presets []int
	level   int
}

// NewZoom starts at level 0. An empty preset list falls back to
// DefaultZoomPresets.
func NewZoom(presets []int) Zoom {
	if len(presets) == 0 {
		presets = DefaultZoomPresets
	}
	p := make([]int, len(presets))
	copy(p, presets)
	return Zoom{presets: p}
}

// In moves one preset up, saturating at the largest. It reports whether
// the level changed.
func (z *Zoom) In() bool {
	return z.set(z.level + 1)
}

// Out moves one preset down, saturating at the smallest
func (z *Zoom) Out() bool {
	return z.set(z.level - 1)
}

// SetLevel jumps to level, clamped into range
func (z *Zoom) SetLevel(level int) bool {
	return z.set(level)
}

func (z *Zoom) set(level int) bool {
	if len(z.presets) == 0 {
		*z = NewZoom(nil)
	}
	level = max(0, min(level, len(z.presets)-1))
	if level == z.level {
		return false
	}
	z.level = level
	return true
}

// Level returns the current preset index
func (z Zoom) Level() int { return z.level }

// MaxLevel returns the highest valid level
func (z Zoom) MaxLevel() int { return max(0, len(z.presets)-1) }

// Value returns the current preset size
func (z Zoom) Value() int {
	if len(z.presets) == 0 {
		return DefaultZoomPresets[0]
	}
	return z.presets[z.level]
}

// Presets returns a copy of the preset list
func (z Zoom) Presets() []int {
	out := make([]int, len(z.presets))
	copy(out, z.presets)
	return out
}
