package components

import (
	"github.com/Veraticus/sapra/internal/cli"
	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Charts renders the overview and issue series side by side, followed by the
// per-discipline breakdown of a subsystem or the per-child breakdown otherwise.
func Charts(sel model.Selection, stats model.AggregatedStats, h *model.Hierarchy, width int) string {
	barWidth := max(width/4, 10)
	series := lipgloss.JoinHorizontal(lipgloss.Top,
		cli.Series("Progress", engine.OverviewSeries(stats), barWidth),
		"    ",
		cli.Series("Open issues", engine.IssueSeries(stats), barWidth),
	)

	var breakdown string
	if disciplines := engine.DisciplineBreakdown(sel, h); len(disciplines) > 0 {
		breakdown = cli.Disciplines(disciplines)
	} else if children := engine.ChildBreakdown(sel, h); len(children) > 0 {
		breakdown = cli.Breakdown(children)
	}
	if breakdown == "" {
		return series
	}
	return lipgloss.JoinVertical(lipgloss.Left, series, "", breakdown)
}
