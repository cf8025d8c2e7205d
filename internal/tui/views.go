package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/state"
	"github.com/Veraticus/sapra/internal/tui/components"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.drill != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.drill.View())
	}

	st := m.store.Current()
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(st),
		m.renderBody(st),
		m.renderFooter(),
	)
}

func (m Model) renderHeader(st *state.State) string {
	parts := []string{m.theme.Title.Render(engine.ScopeTitle(st.Selection, st.Dataset.Hierarchy))}

	if m.pending > 0 {
		total := len(model.Datasets)
		loaded := total - m.pending
		parts = append(parts, fmt.Sprintf("%s Loading item lists %s %d/%d",
			m.spinner.View(),
			m.progress.ViewAs(float64(loaded)/float64(total)),
			loaded, total))
	}

	if len(m.failed) > 0 {
		names := make([]string, 0, len(m.failed))
		for _, ds := range m.failed {
			names = append(names, string(ds))
		}
		parts = append(parts, m.theme.StatusWarning.Render("Unavailable: "+strings.Join(names, ", ")))
	}

	return strings.Join(parts, "   ")
}

func (m Model) renderBody(st *state.State) string {
	navStyle := m.theme.Box
	if m.focus == PaneTree {
		navStyle = m.theme.FocusedBox
	}
	nav := navStyle.
		Width(m.navWidth()).
		Render(m.navigator.View())

	rightWidth := max(m.width-m.navWidth()-4, 40)
	tableStyle := m.theme.Box
	if m.focus == PaneTable {
		tableStyle = m.theme.FocusedBox
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.cards.View(),
		components.Charts(st.Selection, st.Stats, st.Dataset.Hierarchy, rightWidth),
		tableStyle.Render(m.detail.View()),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, nav, " ", right)
}

func (m Model) renderFooter() string {
	var status string
	switch m.statusKind {
	case statusWarning:
		status = m.theme.StatusWarning.Render(m.status)
	case statusError:
		status = m.theme.StatusError.Render(m.status)
	default:
		status = m.theme.Subtitle.Render(m.status)
	}
	return lipgloss.JoinVertical(lipgloss.Left, status, m.help.View(m.keymap))
}
