package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tableHeader = lipgloss.NewStyle().Bold(true).PaddingRight(2)
	tableCell   = lipgloss.NewStyle().PaddingRight(2)
)

// Table lays rows out in left-aligned columns under a bold header.
func Table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(tableLine(tableHeader, headers, widths))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(tableLine(tableCell, row, widths))
	}
	return b.String()
}

func tableLine(style lipgloss.Style, values []string, widths []int) string {
	cols := make([]string, len(widths))
	for i, w := range widths {
		value := ""
		if i < len(values) {
			value = values[i]
		}
		if i == len(widths)-1 {
			cols[i] = style.UnsetPaddingRight().Render(value)
			continue
		}
		cols[i] = style.Width(w + 2).Render(value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
