package pretty

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table layout constants.
const (
	tablePadding    = 2
	minLastColWidth = 20
	heavySeparator  = "="
)

// Table renders rows in aligned columns. The last column absorbs any
// overflow and is truncated to fit the width.
type Table struct {
	styles  *Styles
	width   int
	headers []string
	rows    [][]string
}

// NewTable creates a table for a terminal of the given width.
func NewTable(styles *Styles, width int, headers ...string) *Table {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Table{styles: styles, width: width, headers: headers}
}

// AddRow appends a row. Missing cells render empty; extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// String renders the table.
func (t *Table) String() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.columnWidths()

	var builder strings.Builder
	builder.WriteString(t.styles.TableHeader.Render(t.line(t.headers, widths)))
	builder.WriteString("\n")
	builder.WriteString(t.styles.TableBorder.Render(strings.Repeat(heavySeparator, t.totalWidth(widths))))
	builder.WriteString("\n")
	for _, row := range t.rows {
		builder.WriteString(t.line(row, widths))
		builder.WriteString("\n")
	}
	return builder.String()
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	last := len(widths) - 1
	if excess := t.totalWidth(widths) - t.width; excess > 0 {
		widths[last] = max(minLastColWidth, widths[last]-excess)
	}
	return widths
}

func (t *Table) totalWidth(widths []int) int {
	total := tablePadding * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

func (t *Table) line(cells []string, widths []int) string {
	var builder strings.Builder
	last := len(cells) - 1
	for i, cell := range cells {
		if i == last {
			builder.WriteString(runewidth.Truncate(cell, widths[i], "…"))
			break
		}
		builder.WriteString(runewidth.FillRight(cell, widths[i]))
		builder.WriteString(strings.Repeat(" ", tablePadding))
	}
	return strings.TrimRight(builder.String(), " ")
}
