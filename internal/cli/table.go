package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table is a simple text table with dynamic column widths. Cell widths are
// measured with ANSI escapes stripped, so styled cells (colour swatches) line
// up with plain ones.
type Table struct {
	headers []string
	rows    [][]string
	padding int
}

// NewTable creates a table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		padding: 2,
	}
}

// AddRow appends a row. Short rows are padded with empty cells; long rows are
// truncated to the header count.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render formats the table as a string with a separator under the header.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			b.WriteString(cell)
			if i < len(cells)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+t.padding))
			}
		}
		b.WriteByte('\n')
	}

	writeRow(t.headers)

	total := t.padding * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	b.WriteString(strings.Repeat("-", total))
	b.WriteByte('\n')

	for _, row := range t.rows {
		writeRow(row)
	}

	return b.String()
}
