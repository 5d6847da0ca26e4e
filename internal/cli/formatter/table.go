package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell, so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(headers) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if style != nil {
				cell = style.Render(cell)
			}
			b.WriteString(cell)
			if i < len(headers)-1 {
				b.WriteString(strings.Repeat(" ", max(pad, 0)+colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, &StyleHeader)
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = StyleDim.Render(strings.Repeat("─", w))
	}
	writeRow(sep, nil)
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
