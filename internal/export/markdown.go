package export

import (
	"strings"
)

var markdownEscaper = strings.NewReplacer("|", `\|`, "\n", " ")

// Markdown formats sheet as a GitHub-flavored markdown table. An empty sheet
// yields an empty string.
func Markdown(sheet Sheet) string {
	if len(sheet.Columns) == 0 {
		return ""
	}

	var b strings.Builder
	writeMarkdownRow(&b, sheet.Columns)
	b.WriteString("|")
	for range sheet.Columns {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range sheet.Rows {
		writeMarkdownRow(&b, row)
	}
	return b.String()
}

func writeMarkdownRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, cell := range cells {
		b.WriteString(" ")
		b.WriteString(markdownEscaper.Replace(cell))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}
