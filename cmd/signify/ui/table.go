package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders static tabular data for dashboard pages and CLI output.
// Cells may carry ANSI styling; widths are computed on rendered width.
type Table struct {
	Title      string
	Headers    []string
	Rows       [][]string
	RightAlign map[int]bool // columns rendered right-aligned (counts, rates)
}

// NewTable creates a table with the given title and headers.
func NewTable(title string, headers ...string) *Table {
	return &Table{
		Title:   title,
		Headers: headers,
	}
}

// AddRow appends one row. Short rows are padded with empty cells.
func (t *Table) AddRow(cells ...string) {
	for len(cells) < len(t.Headers) {
		cells = append(cells, "")
	}
	t.Rows = append(t.Rows, cells)
}

// AlignRight marks columns as right-aligned.
func (t *Table) AlignRight(cols ...int) *Table {
	if t.RightAlign == nil {
		t.RightAlign = make(map[int]bool, len(cols))
	}
	for _, c := range cols {
		t.RightAlign[c] = true
	}
	return t
}

// View renders the table using the provided styles.
func (t *Table) View(styles Styles) string {
	if len(t.Rows) == 0 {
		if t.Title != "" {
			return styles.Title.Render(t.Title) + "\n" + styles.Muted.Render("No data.") + "\n"
		}
		return styles.Muted.Render("No data.") + "\n"
	}

	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	writeRow := func(cells []string, style lipgloss.Style) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			if t.RightAlign[i] {
				sb.WriteString(strings.Repeat(" ", pad))
				sb.WriteString(style.Render(cell))
			} else {
				sb.WriteString(style.Render(cell))
				sb.WriteString(strings.Repeat(" ", pad))
			}
			if i < len(widths)-1 {
				sb.WriteString("  ")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(t.Headers, styles.Bold)

	total := 0
	for _, w := range widths {
		total += w
	}
	total += 2 * (len(widths) - 1)
	sb.WriteString(styles.Divider.Render(strings.Repeat("─", total)))
	sb.WriteString("\n")

	for _, row := range t.Rows {
		writeRow(row, styles.Body)
	}

	return sb.String()
}

// Truncate shortens a string to at most n characters, with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 3 || len(s) <= n {
		if len(s) <= n {
			return s
		}
		return s[:n]
	}
	return s[:n-3] + "..."
}
