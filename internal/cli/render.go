package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/lipgloss/tree"
)

// Card is one summary tile.
type Card struct {
	Title  string
	Value  int
	Detail string
	Status model.Status
}

// SummaryCards returns the six tiles of the summary section in display order.
// Each tile carries the status a click on it drills into.
func SummaryCards(stats model.AggregatedStats) []Card {
	pct := func(n int) string {
		return fmt.Sprintf("%d%%", engine.Percent(n, stats.TotalItems))
	}
	return []Card{
		{Title: "Total Items", Value: stats.TotalItems, Status: model.StatusTotal},
		{Title: engine.LabelCompleted, Value: stats.Done, Detail: pct(stats.Done), Status: model.StatusDone},
		{Title: engine.LabelPending, Value: stats.Pending, Detail: pct(stats.Pending), Status: model.StatusPending},
		{Title: engine.LabelRemaining, Value: stats.Remaining, Detail: pct(stats.Remaining), Status: model.StatusOther},
		{Title: engine.LabelPunch, Value: stats.Punch, Status: model.StatusPunch},
		{Title: engine.LabelHoldPoint, Value: stats.Hold, Status: model.StatusHold},
	}
}

// RenderCard renders a single tile. Selected tiles get a highlighted border.
func RenderCard(c Card, selected bool) string {
	style := CardStyle
	if selected {
		style = style.BorderForeground(PrimaryColor)
	}
	body := []string{
		SubtleStyle.Render(c.Title),
		accent(c.Title).Bold(true).Render(strconv.Itoa(c.Value)),
	}
	if c.Detail != "" {
		body = append(body, SubtleStyle.Render(c.Detail))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}

// Summary renders the scope heading followed by the summary tiles.
func Summary(title string, stats model.AggregatedStats) string {
	cards := SummaryCards(stats)
	tiles := make([]string, 0, len(cards))
	for _, c := range cards {
		tiles = append(tiles, RenderCard(c, false))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		FormatTitle(title),
		lipgloss.JoinHorizontal(lipgloss.Top, tiles...),
	)
}

// Sheet renders any exportable sheet as a bordered table.
func Sheet(sheet export.Sheet) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(SubtleStyle).
		Headers(sheet.Columns...).
		Rows(sheet.Rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
	return t.String()
}

// DetailTable renders the detail-table rows, or a placeholder when there are none.
func DetailTable(rows []model.TableRow, sel model.Selection) string {
	if len(rows) == 0 {
		return SubtleStyle.Render("No data for " + sel.Label())
	}
	return Sheet(export.TableSheet(rows, sel, time.Time{}))
}

// Drill renders a drill-down result with its title and item count.
func Drill(res engine.Result) string {
	heading := fmt.Sprintf("%s (%d)", res.Title, res.Len())
	if res.Len() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			FormatTitle(heading),
			SubtleStyle.Render("No matching items"),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		FormatTitle(heading),
		Sheet(export.ItemSheet(res, time.Time{})),
	)
}

// Breakdown renders per-child aggregates with a completion percentage.
func Breakdown(items []engine.Breakdown) string {
	return Sheet(BreakdownSheet(items))
}

// BreakdownSheet tabulates per-child aggregates.
func BreakdownSheet(items []engine.Breakdown) export.Sheet {
	rows := make([][]string, 0, len(items))
	for _, b := range items {
		rows = append(rows, []string{
			b.Label,
			strconv.Itoa(b.Stats.TotalItems),
			strconv.Itoa(b.Stats.Done),
			strconv.Itoa(b.Stats.Pending),
			strconv.Itoa(b.Stats.Remaining),
			strconv.Itoa(b.Stats.Punch),
			strconv.Itoa(b.Stats.Hold),
			fmt.Sprintf("%d%%", engine.Percent(b.Stats.Done, b.Stats.TotalItems)),
		})
	}
	return export.Sheet{
		Columns: []string{"Scope", "Total", "Done", "Pending", "Remaining", "Punch", "Hold", "Progress"},
		Rows:    rows,
	}
}

// Disciplines renders the per-discipline counters of a subsystem.
func Disciplines(entries []model.DisciplineEntry) string {
	return Sheet(DisciplineSheet(entries))
}

// DisciplineSheet tabulates the per-discipline counters of a subsystem.
func DisciplineSheet(entries []model.DisciplineEntry) export.Sheet {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		c := e.Counters
		rows = append(rows, []string{
			e.Name,
			strconv.Itoa(c.Total),
			strconv.Itoa(c.Done),
			strconv.Itoa(c.Pending),
			strconv.Itoa(c.Remaining()),
			strconv.Itoa(c.Punch),
			strconv.Itoa(c.Hold),
		})
	}
	return export.Sheet{
		Columns: []string{"Discipline", "Total", "Done", "Pending", "Remaining", "Punch", "Hold"},
		Rows:    rows,
	}
}

// Series renders a labelled horizontal bar chart. Bars are scaled so the
// slices together span width cells.
func Series(title string, slices []engine.Slice, width int) string {
	lines := []string{BoldStyle.Render(title)}
	if len(slices) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, append(lines, SubtleStyle.Render("  nothing to show"))...)
	}

	total := 0
	labelWidth := 0
	for _, s := range slices {
		total += s.Value
		labelWidth = max(labelWidth, lipgloss.Width(s.Label))
	}

	for _, s := range slices {
		bar := max(1, s.Value*width/total)
		lines = append(lines, fmt.Sprintf("  %-*s %s %d (%d%%)",
			labelWidth, s.Label,
			accent(s.Label).Render(strings.Repeat("█", bar)),
			s.Value, engine.Percent(s.Value, total)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// Tree renders the navigation tree.
func Tree(t engine.Tree) string {
	if t.Root == nil {
		return ""
	}
	return buildTree(t.Root).String()
}

func buildTree(n *engine.Node) *tree.Tree {
	out := tree.Root(n.Label())
	for _, child := range n.Children {
		if len(child.Children) == 0 {
			out.Child(child.Label())
			continue
		}
		out.Child(buildTree(child))
	}
	return out
}
