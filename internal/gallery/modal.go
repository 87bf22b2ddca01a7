package gallery

import "logogrip/internal/domain"

// Modal holds the entity shown in the preview overlay
type Modal struct {
	entity domain.Entity
	open   bool
}

// Open shows entity, replacing any entity already shown
func (m *Modal) Open(entity domain.Entity) {
	m.entity = entity
	m.open = true
}

// Close hides the overlay. Closing a closed modal is a no-op.
func (m *Modal) Close() {
	m.entity = domain.Entity{}
	m.open = false
}

// Active returns the shown entity, or false when closed
func (m Modal) Active() (domain.Entity, bool) {
	return m.entity, m.open
}

// IsOpen reports whether the overlay is shown
func (m Modal) IsOpen() bool { return m.open }
