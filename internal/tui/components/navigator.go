package components

import (
	"strings"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/tui/themes"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NavigatorModel is the system tree pane with incremental search.
type NavigatorModel struct {
	theme     themes.Theme
	selected  model.Selection
	tree      engine.Tree
	nodes     []engine.FlatNode
	search    textinput.Model
	cursor    int
	offset    int
	width     int
	height    int
	searching bool
}

// NewNavigator creates the tree pane showing every node of tree.
func NewNavigator(tree engine.Tree, theme themes.Theme) NavigatorModel {
	search := textinput.New()
	search.Placeholder = "Search systems..."
	search.Prompt = "/ "
	search.CharLimit = 40

	m := NavigatorModel{
		theme:    theme,
		tree:     tree,
		search:   search,
		selected: model.AllSystems(),
		width:    32,
		height:   20,
	}
	m.refilter()
	return m
}

// Update handles messages.
func (m NavigatorModel) Update(msg tea.Msg) (NavigatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.searching {
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.searching {
		return m.handleSearchMode(keyMsg)
	}

	switch keyMsg.String() {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.moveCursor(-len(m.nodes))
	case "G", "end":
		m.moveCursor(len(m.nodes))
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refilter()
		}
	case "enter":
		if node, ok := m.Current(); ok {
			m.selected = node.Selection
			return m, emit(SelectionChangedMsg{Selection: node.Selection})
		}
	}
	return m, nil
}

func (m NavigatorModel) handleSearchMode(msg tea.KeyMsg) (NavigatorModel, tea.Cmd) {
	switch msg.String() {
	case "enter", "down", "up":
		m.searching = false
		m.search.Blur()
		return m, nil
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.refilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refilter()
	return m, cmd
}

// SetSelected marks the node of sel as the active scope.
func (m *NavigatorModel) SetSelected(sel model.Selection) {
	m.selected = sel
}

// Current returns the node under the cursor.
func (m NavigatorModel) Current() (*engine.Node, bool) {
	if m.cursor < 0 || m.cursor >= len(m.nodes) {
		return nil, false
	}
	return m.nodes[m.cursor].Node, true
}

// Nodes returns the visible nodes in display order.
func (m NavigatorModel) Nodes() []engine.FlatNode {
	return m.nodes
}

// Searching reports whether the search box has focus.
func (m NavigatorModel) Searching() bool {
	return m.searching
}

// Term returns the active search term.
func (m NavigatorModel) Term() string {
	return m.search.Value()
}

// Resize sets the pane size.
func (m *NavigatorModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.search.Width = max(width-4, 8)
	m.scroll()
}

func (m *NavigatorModel) refilter() {
	m.nodes = m.tree.Filter(m.search.Value()).Flatten()
	m.cursor = min(m.cursor, max(len(m.nodes)-1, 0))
	m.scroll()
}

func (m *NavigatorModel) moveCursor(delta int) {
	if len(m.nodes) == 0 {
		return
	}
	m.cursor = max(0, min(m.cursor+delta, len(m.nodes)-1))
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *NavigatorModel) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, max(len(m.nodes)-rows, 0)))
}

func (m NavigatorModel) visibleRows() int {
	return max(m.height-2, 1)
}

// View renders the tree pane.
func (m NavigatorModel) View() string {
	lines := []string{}
	if m.searching || m.search.Value() != "" {
		lines = append(lines, m.search.View())
	} else {
		lines = append(lines, m.theme.Subtitle.Render("/ to search"))
	}

	if len(m.nodes) == 0 {
		lines = append(lines, m.theme.Subtitle.Render("No matching systems"))
		return strings.Join(lines, "\n")
	}

	end := min(m.offset+m.visibleRows(), len(m.nodes))
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderNode(i))
	}
	return strings.Join(lines, "\n")
}

func (m NavigatorModel) renderNode(i int) string {
	node := m.nodes[i]
	marker := "  "
	if node.Node.Selection == m.selected {
		marker = "● "
	}
	label := strings.Repeat("  ", node.Depth) + marker + node.Node.Label()
	if w := m.width - 2; w > 0 && lipgloss.Width(label) > w {
		label = truncate(label, w)
	}

	switch {
	case i == m.cursor:
		return m.theme.Selected.Render(label)
	case node.Node.Selection == m.selected:
		return m.theme.Bold.Render(label)
	default:
		return m.theme.Normal.Render(label)
	}
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}
