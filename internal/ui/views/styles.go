package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Query         lipgloss.Style
	Prompt        lipgloss.Style
	Card          lipgloss.Style
	CardSelected  lipgloss.Style
	CardName      lipgloss.Style
	CardSlug      lipgloss.Style
	Modal         lipgloss.Style
	ModalTitle    lipgloss.Style
	Link          lipgloss.Style
	Help          lipgloss.Style
	Scroll        lipgloss.Style
	Faded         lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Query:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		CardSelected: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		CardName: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		CardSlug: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(1, 2),
		ModalTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")),
		Link:          lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Underline(true),
		Help:          lipgloss.NewStyle().Faint(true),
		Scroll:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Faded:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
