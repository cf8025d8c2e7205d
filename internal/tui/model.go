package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/sapra/internal/common"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/feed"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/state"
	"github.com/Veraticus/sapra/internal/tui/components"
	"github.com/Veraticus/sapra/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Pane identifies the pane holding keyboard focus.
type Pane int

const (
	PaneTree Pane = iota
	PaneCards
	PaneTable
	paneCount
)

// statusKind selects how the status line is styled.
type statusKind int

const (
	statusInfo statusKind = iota
	statusWarning
	statusError
)

// Model is the dashboard: navigation tree, summary tiles, charts and detail
// table over a state.Store, with a drill-down modal on top.
type Model struct {
	ctx        context.Context
	theme      themes.Theme
	store      *state.Store
	drill      *components.DrillModel
	secondary  chan feed.Secondary
	config     Config
	keymap     KeyMap
	status     string
	failed     []model.Dataset
	navigator  components.NavigatorModel
	cards      components.CardsModel
	detail     components.DetailTableModel
	spinner    spinner.Model
	progress   progress.Model
	help       help.Model
	pending    int
	width      int
	height     int
	focus      Pane
	statusKind statusKind
	quitting   bool
}

// New creates the dashboard model over store.
func New(ctx context.Context, store *state.Store, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	st := store.Current()
	m := Model{
		ctx:       ctx,
		store:     store,
		config:    cfg,
		theme:     cfg.Theme,
		keymap:    DefaultKeyMap(),
		failed:    append([]model.Dataset(nil), cfg.Failed...),
		navigator: components.NewNavigator(engine.NavigationTree(st.Dataset.Hierarchy), cfg.Theme),
		cards:     components.NewCards(st.Stats, cfg.Theme),
		detail:    components.NewDetailTable(st.Table, cfg.Theme),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(20), progress.WithoutPercentage()),
		help:      help.New(),
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.navigator.SetSelected(st.Selection)

	if cfg.Secondary != nil {
		m.secondary = make(chan feed.Secondary, len(model.Datasets))
		m.pending = len(model.Datasets)
	}
	m.resize()
	return m
}

// Init starts the background load of the secondary feeds.
func (m Model) Init() tea.Cmd {
	if m.secondary == nil {
		return nil
	}
	return tea.Batch(
		m.spinner.Tick,
		loadSecondary(m.ctx, m.config.Secondary, m.secondary),
		waitForSecondary(m.secondary),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case components.SelectionChangedMsg:
		st := m.store.Select(msg.Selection)
		m.refresh(st)
		m.setStatus(statusInfo, "Showing "+st.Selection.Label())
		return m, nil

	case components.DrillRequestMsg:
		res := m.store.Drill(msg.Context, msg.Dataset)
		drill := components.NewDrill(res, export.ItemSheet(res, m.config.Now()), m.theme, m.height)
		m.drill = &drill
		return m, nil

	case components.DrillClosedMsg:
		m.drill = nil
		return m, nil

	case components.CopyRequestMsg:
		return m, copySheet(m.config.Clipboard, msg.Sheet)

	case components.ExportRequestMsg:
		return m.export(msg.Sheet)

	case copiedMsg:
		m.handleCopied(msg)
		return m, nil

	case exportedMsg:
		m.handleExported(msg)
		return m, nil

	case secondaryLoadedMsg:
		m.applySecondary(msg.secondary)
		return m, waitForSecondary(m.secondary)

	case secondaryDoneMsg:
		m.pending = 0
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.navigator.Searching() {
		var cmd tea.Cmd
		m.navigator, cmd = m.navigator.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.drill != nil {
		drill, cmd := m.drill.Update(msg)
		m.drill = &drill
		return m, cmd
	}

	if m.focus == PaneTree && m.navigator.Searching() {
		var cmd tea.Cmd
		m.navigator, cmd = m.navigator.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keymap.NextPane):
		m.setFocus((m.focus + 1) % paneCount)
		return m, nil
	case key.Matches(msg, m.keymap.PrevPane):
		m.setFocus((m.focus + paneCount - 1) % paneCount)
		return m, nil
	case key.Matches(msg, m.keymap.Export):
		st := m.store.Current()
		return m.export(export.TableSheet(st.ExportRows(), st.Selection, m.config.Now()))
	case key.Matches(msg, m.keymap.Search):
		m.setFocus(PaneTree)
	}

	var cmd tea.Cmd
	switch m.focus {
	case PaneTree:
		m.navigator, cmd = m.navigator.Update(msg)
	case PaneCards:
		m.cards, cmd = m.cards.Update(msg)
	case PaneTable:
		m.detail, cmd = m.detail.Update(msg)
	}
	return m, cmd
}

func (m Model) export(sheet export.Sheet) (tea.Model, tea.Cmd) {
	if m.config.Exporter == nil {
		m.setStatus(statusWarning, "Export is not configured")
		return m, nil
	}
	return m, exportSheet(m.ctx, m.config.Exporter, sheet)
}

func (m *Model) handleCopied(msg copiedMsg) {
	switch {
	case errors.Is(msg.err, common.ErrNothingToExport):
		m.setStatus(statusWarning, "Nothing to copy")
	case msg.err != nil:
		m.config.Logger.Warn("Clipboard copy failed", "error", msg.err)
		m.setStatus(statusError, "Copy failed: "+msg.err.Error())
	default:
		m.setStatus(statusInfo, fmt.Sprintf("Copied %d rows to the clipboard", msg.rows))
	}
}

func (m *Model) handleExported(msg exportedMsg) {
	switch {
	case errors.Is(msg.err, common.ErrNothingToExport):
		m.setStatus(statusWarning, "Nothing to export")
	case msg.err != nil:
		m.config.Logger.Error("Export failed", "error", msg.err, "sheet", msg.sheet)
		m.setStatus(statusError, "Export failed: "+msg.err.Error())
	default:
		m.setStatus(statusInfo, fmt.Sprintf("Exported %d rows to %s", msg.rows, msg.sheet))
	}
}

func (m *Model) applySecondary(s feed.Secondary) {
	m.pending = max(m.pending-1, 0)
	if s.Err != nil {
		m.config.Logger.Warn("Secondary feed unavailable", "dataset", s.Dataset, "error", s.Err)
		m.failed = append(m.failed, s.Dataset)
		m.setStatus(statusWarning, fmt.Sprintf("The %s feed could not be loaded", s.Dataset))
		return
	}

	switch s.Dataset {
	case model.DatasetItems:
		m.store.SetItems(s.Details)
	case model.DatasetPunch:
		m.store.SetPunch(s.Punch)
	case model.DatasetHold:
		m.store.SetHold(s.Hold)
	}
}

func (m *Model) refresh(st *state.State) {
	m.cards.SetStats(st.Stats)
	m.detail.SetRows(st.Table)
	m.navigator.SetSelected(st.Selection)
}

func (m *Model) setFocus(p Pane) {
	m.focus = p
	m.cards.Blur()
	m.detail.Blur()
	switch p {
	case PaneCards:
		m.cards.Focus()
	case PaneTable:
		m.detail.Focus()
	}
}

func (m *Model) setStatus(kind statusKind, text string) {
	m.statusKind = kind
	m.status = text
}

// resize adjusts pane sizes to the terminal.
func (m *Model) resize() {
	m.navigator.Resize(m.navWidth(), m.height-6)
	m.detail.Resize(m.height - 30)
	m.help.Width = m.width
}

func (m Model) navWidth() int {
	return max(24, min(m.width/4, 40))
}
