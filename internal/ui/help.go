package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

var errNoProgram = errors.New("program not set")

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

var helpSections = []string{"Navigation", "Search", "Details", "Other"}

// RenderHelpContent renders the full key reference. The same text feeds the
// ov pager and the in-app help popup.
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	width := 0
	for _, group := range r.keys.FullHelp() {
		for _, b := range group {
			width = max(width, lipgloss.Width(b.Help().Key))
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("Logogrip Help"))
	help.WriteString("\n")

	for i, group := range r.keys.FullHelp() {
		help.WriteString("\n")
		if i < len(helpSections) {
			help.WriteString(sectionStyle.Render(helpSections[i]))
			help.WriteString("\n")
		}
		for _, b := range group {
			writeBinding(&help, b, width, keyStyle, descStyle)
		}
	}

	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Search matches logo names and slugs and tolerates typos: volkswagon finds Volkswagen"))

	return help.String()
}

func writeBinding(b *strings.Builder, binding key.Binding, width int, keyStyle, descStyle lipgloss.Style) {
	h := binding.Help()
	pad := strings.Repeat(" ", width-lipgloss.Width(h.Key)+2)
	fmt.Fprintf(b, "  %s%s%s\n", keyStyle.Render(h.Key), pad, descStyle.Render(h.Desc))
}

// HelpOps shows help outside of the bubbletea renderer
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h == nil || h.program == nil {
		return errNoProgram
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Let ov finish with the terminal before bubbletea takes it back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
