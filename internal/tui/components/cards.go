package components

import (
	"strconv"

	"github.com/Veraticus/sapra/internal/cli"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/tui/themes"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// CardsModel is the row of summary tiles. Enter on a tile drills into its status.
type CardsModel struct {
	theme   themes.Theme
	cards   []cli.Card
	cursor  int
	focused bool
}

// NewCards creates the summary tiles for stats.
func NewCards(stats model.AggregatedStats, theme themes.Theme) CardsModel {
	return CardsModel{
		theme: theme,
		cards: cli.SummaryCards(stats),
	}
}

// SetStats replaces the figures shown on the tiles.
func (m *CardsModel) SetStats(stats model.AggregatedStats) {
	m.cards = cli.SummaryCards(stats)
}

// Focus gives the tiles keyboard focus.
func (m *CardsModel) Focus() { m.focused = true }

// Blur removes keyboard focus.
func (m *CardsModel) Blur() { m.focused = false }

// Current returns the tile under the cursor.
func (m CardsModel) Current() cli.Card {
	return m.cards[m.cursor]
}

// Update handles messages.
func (m CardsModel) Update(msg tea.Msg) (CardsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch keyMsg.String() {
	case "l", "right":
		m.cursor = min(m.cursor+1, len(m.cards)-1)
	case "h", "left":
		m.cursor = max(m.cursor-1, 0)
	case "enter":
		status := m.Current().Status
		return m, emit(DrillRequestMsg{
			Context: engine.SummaryContext{Status: status},
			Dataset: status.DefaultDataset(),
		})
	}
	return m, nil
}

// View renders the tiles side by side.
func (m CardsModel) View() string {
	tiles := make([]string, 0, len(m.cards))
	for i, c := range m.cards {
		style := m.theme.Card
		if m.focused && i == m.cursor {
			style = m.theme.FocusedCard
		}
		body := []string{
			m.theme.Subtitle.Render(c.Title),
			lipgloss.NewStyle().Bold(true).Foreground(m.theme.Accent(c.Title)).Render(strconv.Itoa(c.Value)),
		}
		if c.Detail != "" {
			body = append(body, m.theme.Subtitle.Render(c.Detail))
		}
		tiles = append(tiles, style.Render(lipgloss.JoinVertical(lipgloss.Left, body...)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}
