package state

import (
	"logogrip/internal/domain"
)

// AppState contains the gallery state owned by the UI loop
type AppState struct {
	// Catalog data
	Dataset   *domain.Dataset // last successfully loaded dataset, nil before the first load
	LoadState domain.LoadState
	LoadErr   error // error of the latest failed load
	Loading   bool  // a load is in flight
	Dropped   int   // records rejected by the latest load

	// Search
	Query   string
	Results []domain.Entity // entities currently shown, in display order

	// Grid
	SelectedIndex  int // index into Results
	ViewportOffset int // first visible grid row
	ViewportRows   int // grid rows that fit on screen
	Columns        int // cards per row

	// Overlays
	ShowHelp         bool
	HelpScrollOffset int
	Preview          string // rendered image of the modal entity
	PreviewKey       string // slug@cols the preview was rendered for

	StatusMessage string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		LoadState:    domain.LoadPending,
		Results:      []domain.Entity{},
		ViewportRows: 5,
		Columns:      1,
	}
}

// Entities returns the dataset entities, or nil before the first load
func (s *AppState) Entities() []domain.Entity {
	if s.Dataset == nil {
		return nil
	}
	return s.Dataset.Entities
}

// SetDataset installs a freshly loaded dataset
func (s *AppState) SetDataset(ds *domain.Dataset, dropped int) {
	s.Dataset = ds
	s.Dropped = dropped
	s.LoadState = domain.LoadReady
	s.LoadErr = nil
	s.Loading = false
}

// SetLoadFailed records a failed load. A dataset from an earlier load stays
// on screen.
func (s *AppState) SetLoadFailed(err error) {
	s.LoadErr = err
	s.LoadState = domain.LoadFailed
	s.Loading = false
}

// SetResults replaces the visible entities and keeps the cursor in range
func (s *AppState) SetResults(results []domain.Entity) {
	if results == nil {
		results = []domain.Entity{}
	}
	s.Results = results
	s.ClampSelection()
}

// ClampSelection keeps SelectedIndex within Results
func (s *AppState) ClampSelection() {
	if s.SelectedIndex >= len(s.Results) {
		s.SelectedIndex = len(s.Results) - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}

// Selected returns the entity under the cursor
func (s *AppState) Selected() (domain.Entity, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Results) {
		return domain.Entity{}, false
	}
	return s.Results[s.SelectedIndex], true
}

// FirstLoadPending reports whether nothing has been loaded yet
func (s *AppState) FirstLoadPending() bool {
	return s.Dataset == nil && s.LoadState == domain.LoadPending
}
