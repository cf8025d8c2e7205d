package components

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/Veraticus/sapra/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// detailColumn is one column of the detail table. drill is empty for columns
// that cannot be drilled into.
type detailColumn struct {
	title string
	width int
	drill engine.Column
}

var detailColumns = []detailColumn{
	{title: "System", width: 10},
	{title: "Subsystem", width: 12},
	{title: "Discipline", width: 14},
	{title: "Total", width: 7, drill: engine.ColumnTotal},
	{title: "Done", width: 7, drill: engine.ColumnCompleted},
	{title: "Pending", width: 8, drill: engine.ColumnPending},
	{title: "Punch", width: 7, drill: engine.ColumnPunch},
	{title: "Hold", width: 7, drill: engine.ColumnHoldPoint},
	{title: "Progress", width: 9, drill: engine.ColumnProgress},
}

// firstDrillColumn is the index of the leftmost drillable column.
const firstDrillColumn = 3

// DetailTableModel is the detail table pane. A column cursor picks which
// counter of the selected row Enter drills into.
type DetailTableModel struct {
	theme   themes.Theme
	rows    []model.TableRow
	table   table.Model
	column  int
	focused bool
}

// NewDetailTable creates the detail table pane.
func NewDetailTable(rows []model.TableRow, theme themes.Theme) DetailTableModel {
	columns := make([]table.Column, 0, len(detailColumns))
	for _, c := range detailColumns {
		columns = append(columns, table.Column{Title: c.title, Width: c.width})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = theme.Highlighted
	t.SetStyles(s)

	m := DetailTableModel{
		theme:  theme,
		table:  t,
		column: firstDrillColumn,
	}
	m.SetRows(rows)
	return m
}

// SetRows replaces the table rows.
func (m *DetailTableModel) SetRows(rows []model.TableRow) {
	m.rows = rows
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		out = append(out, table.Row{
			r.System,
			r.Subsystem,
			r.Discipline,
			strconv.Itoa(r.TotalItems),
			strconv.Itoa(r.Completed),
			strconv.Itoa(r.Pending),
			strconv.Itoa(r.Punch),
			strconv.Itoa(r.HoldPoint),
			fmt.Sprintf("%d%%", r.StatusPercent),
		})
	}
	m.table.SetRows(out)
	if m.table.Cursor() >= len(out) {
		m.table.SetCursor(max(len(out)-1, 0))
	}
}

// Focus gives the table keyboard focus.
func (m *DetailTableModel) Focus() {
	m.focused = true
	m.table.Focus()
}

// Blur removes keyboard focus.
func (m *DetailTableModel) Blur() {
	m.focused = false
	m.table.Blur()
}

// Resize sets the visible height in rows.
func (m *DetailTableModel) Resize(height int) {
	m.table.SetHeight(max(height, 3))
}

// Row returns the row under the cursor.
func (m DetailTableModel) Row() (model.TableRow, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return model.TableRow{}, false
	}
	return m.rows[i], true
}

// Column returns the drill column under the column cursor.
func (m DetailTableModel) Column() engine.Column {
	return detailColumns[m.column].drill
}

// Update handles messages.
func (m DetailTableModel) Update(msg tea.Msg) (DetailTableModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.focused {
		switch keyMsg.String() {
		case "l", "right":
			m.column = min(m.column+1, len(detailColumns)-1)
			return m, nil
		case "h", "left":
			m.column = max(m.column-1, firstDrillColumn)
			return m, nil
		case "enter":
			row, ok := m.Row()
			if !ok {
				return m, nil
			}
			status, dataset, ok := engine.CellTarget(m.Column())
			if !ok {
				return m, nil
			}
			return m, emit(DrillRequestMsg{
				Context: engine.TableContext{Row: row, Status: status},
				Dataset: dataset,
			})
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the table with a hint naming the drill column.
func (m DetailTableModel) View() string {
	if len(m.rows) == 0 {
		return m.theme.Subtitle.Render("No rows for this selection")
	}
	hint := m.theme.Subtitle.Render(fmt.Sprintf("%d rows", len(m.rows)))
	if m.focused {
		hint = m.theme.Subtitle.Render(fmt.Sprintf("%d rows · ←/→ column: ", len(m.rows))) +
			m.theme.Bold.Render(detailColumns[m.column].title) +
			m.theme.Subtitle.Render(" · enter to drill")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), hint)
}
