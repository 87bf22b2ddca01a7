package domain

import "time"

// PlaceholderImagePath is substituted for entities whose image path is missing
const PlaceholderImagePath = "images/placeholder.png"

// Image references the logo artwork of an entity
type Image struct {
	Source string `json:"source"`        // upstream URL the logo was taken from
	Path   string `json:"path"`          // asset path relative to the manifest
	URL    string `json:"url,omitempty"` // legacy alias of Path
}

// AssetPath returns the relative asset path, honouring the legacy url key
func (i Image) AssetPath() string {
	if i.Path != "" {
		return i.Path
	}
	return i.URL
}

// Entity represents one manufacturer logo record
type Entity struct {
	Name  string `json:"name" validate:"required"`
	Slug  string `json:"slug" validate:"required,slug"`
	Image Image  `json:"image"`
}

// Dataset is an immutable snapshot of loaded entities.
// A reload produces a new Dataset with a higher Generation.
type Dataset struct {
	Entities   []Entity
	Generation uint64
	Origin     string // manifest path or URL
	LoadedAt   time.Time
}

// Len returns the number of entities in the dataset
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entities)
}

// LoadState describes where the dataset load currently stands
type LoadState int

const (
	LoadPending LoadState = iota
	LoadReady
	LoadFailed
)

func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadReady:
		return "ready"
	case LoadFailed:
		return "failed"
	default:
		return "unknown"
	}
}
