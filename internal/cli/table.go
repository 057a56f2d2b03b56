package cli

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// maxCellWidth caps a column so that long titles do not wrap the terminal.
const maxCellWidth = 40

// writeTable prints rows as left-aligned columns separated by two spaces.
// Widths are display widths, so wide runes line up.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	widths := make([]int, len(header))
	cells := make([][]string, 0, len(rows)+1)
	for _, row := range append([][]string{header}, rows...) {
		line := make([]string, len(header))
		for i := range line {
			if i < len(row) {
				line[i] = runewidth.Truncate(row[i], maxCellWidth, "…")
			}
			if cw := runewidth.StringWidth(line[i]); cw > widths[i] {
				widths[i] = cw
			}
		}
		cells = append(cells, line)
	}

	var sb strings.Builder
	for _, line := range cells {
		for i, cell := range line {
			if i == len(line)-1 {
				sb.WriteString(cell)
				break
			}
			sb.WriteString(runewidth.FillRight(cell, widths[i]))
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
