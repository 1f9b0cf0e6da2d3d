package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Column is a table column. Numeric columns set Right.
type Column struct {
	Title string
	Right bool
}

// Columns builds left-aligned columns from titles.
func Columns(titles ...string) []Column {
	cols := make([]Column, len(titles))
	for i, title := range titles {
		cols[i] = Column{Title: title}
	}
	return cols
}

// AlignRight marks the columns at idx as right-aligned and returns cols.
func AlignRight(cols []Column, idx ...int) []Column {
	for _, i := range idx {
		if i >= 0 && i < len(cols) {
			cols[i].Right = true
		}
	}
	return cols
}

// FormatTable lays rows out under cols. Widths are measured in terminal
// cells, so emoji titles line up. Cells beyond the last column are dropped.
func FormatTable(cols []Column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, col := range cols {
		widths[i] = runewidth.StringWidth(col.Title)
	}
	for _, row := range rows {
		for i, n := 0, min(len(row), len(cols)); i < n; i++ {
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
	}

	titles := make([]string, len(cols))
	for i, col := range cols {
		titles[i] = col.Title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, layoutRow(cols, widths, titles))
	for _, row := range rows {
		lines = append(lines, layoutRow(cols, widths, row))
	}
	return lines
}

func layoutRow(cols []Column, widths []int, cells []string) string {
	parts := make([]string, len(cols))
	for i, col := range cols {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		if col.Right {
			parts[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			parts[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.Join(parts, " ")
}
