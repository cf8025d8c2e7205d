package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/sapra/internal/engine"
	"github.com/Veraticus/sapra/internal/export"
	"github.com/Veraticus/sapra/internal/model"
	"github.com/charmbracelet/glamour"
)

// SummaryMarkdown writes the summary of a scope as a markdown report: the
// totals, then the per-discipline or per-child breakdown when there is one.
func SummaryMarkdown(sel model.Selection, stats model.AggregatedStats, h *model.Hierarchy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", engine.ScopeTitle(sel, h))

	totals := export.Sheet{Columns: []string{"Counter", "Value", "Share"}}
	for _, c := range SummaryCards(stats) {
		totals.Rows = append(totals.Rows, []string{c.Title, fmt.Sprint(c.Value), c.Detail})
	}
	b.WriteString(export.Markdown(totals))

	var breakdown export.Sheet
	if disciplines := engine.DisciplineBreakdown(sel, h); len(disciplines) > 0 {
		breakdown = DisciplineSheet(disciplines)
		b.WriteString("\n## Disciplines\n\n")
	} else if children := engine.ChildBreakdown(sel, h); len(children) > 0 {
		breakdown = BreakdownSheet(children)
		b.WriteString("\n## Breakdown\n\n")
	}
	b.WriteString(export.Markdown(breakdown))

	return b.String()
}

// RenderMarkdown renders markdown for the terminal, wrapped at width.
func RenderMarkdown(md string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	out, err := renderer.Render(md)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
