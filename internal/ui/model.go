package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"logogrip/internal/clipboard"
	"logogrip/internal/config"
	"logogrip/internal/domain"
	"logogrip/internal/eventbus"
	"logogrip/internal/gallery"
	"logogrip/internal/preview"
	"logogrip/internal/search"
	"logogrip/internal/ui/input"
	inputtypes "logogrip/internal/ui/input/types"
	"logogrip/internal/ui/logic"
	"logogrip/internal/ui/state"
	"logogrip/internal/ui/views"
)

const statusTimeout = 3 * time.Second

// Options wires the model to its collaborators
type Options struct {
	Context   context.Context
	Bus       eventbus.EventBus
	Config    *config.Config
	Preview   *preview.Renderer // nil disables logo previews
	Clipboard clipboard.Copier
	Logger    *zap.Logger
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState
	logger *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	width       int
	height      int
	help        help.Model
	keys        KeyMap
	spinner     spinner.Model
	spinning    bool
	inPagerMode bool
	statusSeq   int
	// newest load request whose dataset was applied
	appliedRequest uint64

	// Gallery interaction state
	zoom        gallery.Zoom
	copy        gallery.CopyFeedback
	modal       gallery.Modal
	memo        gallery.IndexMemo
	searchOpts  search.Options
	queryBefore string // query when search mode was entered

	navigator    *logic.Navigator
	renderer     *views.Renderer
	inputHandler *input.Handler
	helpRenderer *HelpRenderer
	helpOps      *HelpOps
	preview      *preview.Renderer
	clipboard    clipboard.Copier

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(opts Options) (*Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	searchOpts, err := cfg.SearchOptions()
	if err != nil {
		return nil, err
	}

	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	copier := opts.Clipboard
	if copier == nil {
		copier = clipboard.New()
	}

	keys := DefaultKeyMap()
	m := &Model{
		bus:          opts.Bus,
		config:       cfg,
		state:        state.NewAppState(),
		logger:       logger.Named("ui"),
		ctx:          ctx,
		cancel:       cancel,
		help:         help.New(),
		keys:         keys,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		zoom:         gallery.NewZoom(cfg.UI.ZoomPresets),
		copy:         gallery.NewCopyFeedback(cfg.UI.CopyFeedback.Std()),
		searchOpts:   searchOpts,
		navigator:    logic.NewNavigator(),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		helpRenderer: NewHelpRenderer(keys),
		preview:      opts.Preview,
		clipboard:    copier,
	}
	m.state.Loading = true
	m.refreshResults()
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Close cancels work started by the model
func (m *Model) Close() {
	m.cancel()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	m.spinning = true
	return m.spinner.Tick
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		if m.state.ShowHelp {
			return m, m.handleHelpKey(msg)
		}

		actions, cmd := m.inputHandler.HandleKey(msg, m.inputContext())
		cmds := []tea.Cmd{cmd}
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}
		return m, tea.Batch(cmds...)

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			return m, cmd
		}
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	vs := views.ViewState{
		Width:            m.width,
		Height:           m.height,
		Entities:         m.state.Results,
		Total:            m.state.Dataset.Len(),
		SelectedIndex:    m.state.SelectedIndex,
		ViewportOffset:   m.state.ViewportOffset,
		Geometry:         m.geometry(),
		Zoom:             m.zoom.Value(),
		Query:            m.state.Query,
		InputMode:        m.inputHandler.CurrentMode().String(),
		FirstLoad:        m.state.FirstLoadPending(),
		Loading:          m.state.Loading,
		Spinner:          m.spinner.View(),
		LoadFailed:       m.state.LoadState == domain.LoadFailed,
		Dropped:          m.state.Dropped,
		StatusMessage:    m.state.StatusMessage,
		Copied:           m.copy.Copied(),
		ShowHelp:         m.state.ShowHelp,
		HelpScrollOffset: m.state.HelpScrollOffset,
		KeyHelp:          m.help.View(m.keys),
	}
	if m.state.LoadErr != nil {
		vs.LoadError = m.state.LoadErr.Error()
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		vs.TextInput = ti.View()
	}
	if vs.ShowHelp {
		vs.HelpContent = m.helpRenderer.RenderHelpContent()
	}
	if e, ok := m.modal.Active(); ok {
		vs.Modal = &views.ModalState{
			Name:    e.Name,
			Slug:    e.Slug,
			Link:    gallery.Link(m.config.UI.LinkBase, e),
			Preview: m.state.Preview,
			Copied:  m.copy.Copied(),
		}
	}

	return m.renderer.Render(vs)
}

// processAction applies an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.syncNavigator()
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Move(a.Direction)
		if m.modal.IsOpen() {
			return m.openModal()
		}

	case inputtypes.UpdateTextAction:
		m.setQuery(a.Text)

	case inputtypes.SubmitTextAction:
		m.setQuery(a.Text)

	case inputtypes.CancelTextAction:
		m.setQuery(m.queryBefore)

	case inputtypes.ClearSearchAction:
		m.setQuery("")

	case inputtypes.ZoomAction:
		var changed bool
		if a.In {
			changed = m.zoom.In()
		} else {
			changed = m.zoom.Out()
		}
		if changed {
			m.relayout()
			if m.modal.IsOpen() {
				return m.openModal()
			}
		}

	case inputtypes.OpenModalAction:
		return m.openModal()

	case inputtypes.CloseModalAction:
		m.modal.Close()
		m.state.Preview = ""
		m.state.PreviewKey = ""

	case inputtypes.CopyLinkAction:
		return m.copyLink()

	case inputtypes.ReloadAction:
		if m.bus != nil {
			m.state.Loading = true
			m.bus.Publish(eventbus.LoadRequestedEvent{Reason: "manual"})
			return m.startSpinner()
		}

	case inputtypes.ToggleHelpAction:
		if m.program != nil {
			return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())
		}
		m.state.ShowHelp = true
		m.state.HelpScrollOffset = 0

	case inputtypes.QuitAction:
		m.cancel()
		return tea.Quit
	}

	// Remember the query a search edit started from so esc can restore it
	if m.inputHandler.CurrentMode() != inputtypes.ModeSearch {
		m.queryBefore = m.state.Query
	}
	return nil
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case spinner.TickMsg:
		if !m.state.Loading {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case copyResultMsg:
		if msg.err != nil {
			m.logger.Warn("copy failed", zap.String("slug", msg.slug), zap.Error(msg.err))
			return m, m.setStatus(fmt.Sprintf("Copy failed: %v", msg.err))
		}
		token := m.copy.Copy()
		m.logger.Debug("link copied", zap.String("slug", msg.slug), zap.String("method", string(msg.method)))
		if m.bus != nil {
			m.bus.Publish(eventbus.LinkCopiedEvent{Slug: msg.slug, Link: msg.link})
		}
		return m, tea.Tick(m.copy.Delay(), func(time.Time) tea.Msg {
			return copyExpiredMsg{token: token}
		})

	case copyExpiredMsg:
		m.copy.Expire(msg.token)
		return m, nil

	case previewMsg:
		if msg.key == m.state.PreviewKey {
			m.state.Preview = msg.content
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed, showing popup", zap.Error(msg.err))
			m.state.ShowHelp = true
			m.state.HelpScrollOffset = 0
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.state.StatusMessage = ""
		}
		return m, nil
	}
	return m, nil
}

// handleEvent processes domain events
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.DatasetLoadStartedEvent:
		m.state.Loading = true
		return m.startSpinner()

	case eventbus.DatasetLoadedEvent:
		if e.Dataset == nil {
			return nil
		}
		if cur := m.state.Dataset; cur != nil && e.Dataset.Generation < cur.Generation {
			m.logger.Debug("dropping stale dataset",
				zap.Uint64("generation", e.Dataset.Generation),
				zap.Uint64("current", cur.Generation))
			return nil
		}
		m.appliedRequest = max(m.appliedRequest, e.Request)
		m.state.SetDataset(e.Dataset, e.Dropped)
		if m.preview != nil {
			m.preview.Purge()
		}
		m.refreshResults()
		return m.reconcileModal()

	case eventbus.DatasetLoadFailedEvent:
		if e.Generation < m.appliedRequest {
			m.logger.Debug("dropping stale load failure",
				zap.Uint64("request", e.Generation),
				zap.Uint64("applied", m.appliedRequest),
				zap.Error(e.Err))
			return nil
		}
		m.state.SetLoadFailed(e.Err)
		return nil

	case eventbus.ErrorEvent:
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return m.setStatus(msg)
	}
	return nil
}

// handleHelpKey scrolls or closes the help popup
func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.cancel()
		return tea.Quit
	case "esc", "?", "q", "enter":
		m.state.ShowHelp = false
		m.state.HelpScrollOffset = 0
	case "up", "k":
		m.state.HelpScrollOffset = max(0, m.state.HelpScrollOffset-1)
	case "down", "j":
		m.state.HelpScrollOffset++
	}
	return nil
}

// setQuery re-runs the search and moves the cursor to the best match
func (m *Model) setQuery(q string) {
	if q == m.state.Query {
		return
	}
	m.state.Query = q
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0
	m.refreshResults()
}

// refreshResults recomputes the visible entities from the memoised index
func (m *Model) refreshResults() {
	idx := m.memo.Get(m.state.Dataset, m.searchOpts)
	m.state.SetResults(search.Search(idx, m.state.Query))
	m.syncNavigator()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SelectedIndex)
}

// reconcileModal points an open modal at the reloaded copy of its entity,
// or closes it when the entity is gone.
func (m *Model) reconcileModal() tea.Cmd {
	active, ok := m.modal.Active()
	if !ok {
		return nil
	}
	for _, e := range m.state.Entities() {
		if e.Slug == active.Slug {
			m.modal.Open(e)
			m.state.PreviewKey = ""
			return m.renderPreview(e)
		}
	}
	m.inputHandler.ChangeMode(inputtypes.ModeNormal, "", m.inputContext())
	m.modal.Close()
	m.state.Preview = ""
	m.state.PreviewKey = ""
	return nil
}

// openModal shows the entity under the cursor in the detail overlay
func (m *Model) openModal() tea.Cmd {
	e, ok := m.state.Selected()
	if !ok {
		return nil
	}
	m.modal.Open(e)
	return m.renderPreview(e)
}

func (m *Model) previewCols() int {
	cols := m.zoom.Value() / 4
	if m.width > 0 {
		cols = min(cols, m.width-10)
	}
	return max(cols, 8)
}

// renderPreview renders the logo off the UI loop
func (m *Model) renderPreview(e domain.Entity) tea.Cmd {
	if m.preview == nil {
		m.state.Preview = ""
		m.state.PreviewKey = ""
		return nil
	}
	cols := m.previewCols()
	key := fmt.Sprintf("%s@%d", e.Slug, cols)
	if key == m.state.PreviewKey {
		return nil
	}
	m.state.PreviewKey = key
	m.state.Preview = ""

	ctx, r := m.ctx, m.preview
	return func() tea.Msg {
		return previewMsg{key: key, content: r.Render(ctx, e, cols)}
	}
}

// copyLink writes the link of the modal entity, or the selected one, to the clipboard
func (m *Model) copyLink() tea.Cmd {
	e, ok := m.modal.Active()
	if !ok {
		e, ok = m.state.Selected()
	}
	if !ok {
		return nil
	}
	link := gallery.Link(m.config.UI.LinkBase, e)
	copier := m.clipboard
	return func() tea.Msg {
		method, err := copier.Copy(link)
		return copyResultMsg{slug: e.Slug, link: link, method: method, err: err}
	}
}

// fetchHelpPager shows help in ov, pausing rendering while it runs
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusSeq++
	seq := m.statusSeq
	m.state.StatusMessage = msg
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m *Model) geometry() views.Geometry {
	return views.Layout(m.width, m.height, m.zoom.Value())
}

// relayout recomputes the grid for the terminal size and zoom level
func (m *Model) relayout() {
	g := m.geometry()
	m.state.Columns = g.Columns
	m.state.ViewportRows = g.Rows
	m.syncNavigator()
	m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.SetSelectedIndex(m.state.SelectedIndex)
}

// syncNavigator updates the navigator with current model state
func (m *Model) syncNavigator() {
	m.navigator.UpdateState(
		m.state.SelectedIndex,
		m.state.ViewportOffset,
		m.state.ViewportRows,
		m.state.Columns,
		len(m.state.Results),
	)
}

func (m *Model) inputContext() *input.ModelContext {
	return &input.ModelContext{State: m.state, Zoom: &m.zoom}
}

// State exposes the gallery state
func (m *Model) State() *state.AppState { return m.state }

// Mode returns the active input mode
func (m *Model) Mode() inputtypes.Mode { return m.inputHandler.CurrentMode() }

// Zoom returns the zoom state
func (m *Model) Zoom() gallery.Zoom { return m.zoom }

// CopyState returns the copy feedback state
func (m *Model) CopyState() gallery.CopyState { return m.copy.State() }

// ActiveEntity returns the entity shown in the modal
func (m *Model) ActiveEntity() (domain.Entity, bool) { return m.modal.Active() }
