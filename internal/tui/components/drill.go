package components

import (
	"fmt"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxDrillColumnWidth = 32

// DrillModel is the drill-down modal listing the matching items.
type DrillModel struct {
	theme  themes.Theme
	result engine.Result
	sheet  export.Sheet
	table  table.Model
}

// NewDrill creates the modal for a drill-down result. sheet is the export
// form of the same result, used for display, copy and export.
func NewDrill(res engine.Result, sheet export.Sheet, theme themes.Theme, height int) DrillModel {
	widths := make([]int, len(sheet.Columns))
	for i, col := range sheet.Columns {
		widths[i] = lipgloss.Width(col)
	}
	for _, row := range sheet.Rows {
		for i, cell := range row {
			if i < len(widths) {
				widths[i] = min(max(widths[i], lipgloss.Width(cell)), maxDrillColumnWidth)
			}
		}
	}

	columns := make([]table.Column, 0, len(sheet.Columns))
	for i, col := range sheet.Columns {
		columns = append(columns, table.Column{Title: col, Width: widths[i]})
	}
	rows := make([]table.Row, 0, len(sheet.Rows))
	for _, r := range sheet.Rows {
		rows = append(rows, table.Row(r))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(min(len(rows), height-8), 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Highlighted
	t.SetStyles(s)

	return DrillModel{
		theme:  theme,
		result: res,
		sheet:  sheet,
		table:  t,
	}
}

// Result returns the drill-down shown by the modal.
func (m DrillModel) Result() engine.Result {
	return m.result
}

// Update handles messages.
func (m DrillModel) Update(msg tea.Msg) (DrillModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			return m, emit(DrillClosedMsg{})
		case "c", "y":
			return m, emit(CopyRequestMsg{Sheet: m.sheet})
		case "e":
			return m, emit(ExportRequestMsg{Sheet: m.sheet})
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the modal body.
func (m DrillModel) View() string {
	title := m.theme.Title.Render(fmt.Sprintf("%s (%d)", m.result.Title, m.result.Len()))
	footer := m.theme.Subtitle.Render("c copy · e export · esc close")

	body := m.theme.Subtitle.Render("No matching items")
	if m.sheet.Len() > 0 {
		body = m.table.View()
	}
	return m.theme.Modal.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", footer))
}
