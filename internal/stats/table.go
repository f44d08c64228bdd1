package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

// column is one column of a plain text table. Numeric columns align right.
type column struct {
	title   string
	numeric bool
}

func columns(titles []string, numeric ...int) []column {
	return lo.Map(titles, func(title string, i int) column {
		return column{title: title, numeric: lo.Contains(numeric, i)}
	})
}

// formatTable aligns cells by display width so CJK titles and method names
// line up with ASCII columns. The header is the first line.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := lo.Map(cols, func(c column, i int) int {
		w := runewidth.StringWidth(c.title)
		for _, row := range rows {
			if i < len(row) {
				w = max(w, runewidth.StringWidth(row[i]))
			}
		}
		return w
	})
	header := lo.Map(cols, func(c column, _ int) string { return c.title })

	lines := make([]string, 0, len(rows)+1)
	for _, row := range append([][]string{header}, rows...) {
		cells := make([]string, len(cols))
		for i, c := range cols {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if c.numeric {
				cells[i] = runewidth.FillLeft(cell, widths[i])
			} else {
				cells[i] = runewidth.FillRight(cell, widths[i])
			}
		}
		lines = append(lines, strings.TrimRight(strings.Join(cells, " "), " "))
	}
	return lines
}

// writeTable prints a titled table followed by a blank line.
func writeTable(w io.Writer, title string, cols []column, rows [][]string) error {
	out := append([]string{title}, formatTable(cols, rows)...)
	_, err := fmt.Fprintln(w, strings.Join(out, "\n")+"\n")
	return err
}
