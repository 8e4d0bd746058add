package card

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSeparatorWidth is the number of hyphens in a separator line
	DefaultSeparatorWidth = 20
	// DefaultColumnGap is the number of spaces between table columns
	DefaultColumnGap = 2
)

// Format controls the canonical rendering of a card
type Format struct {
	SeparatorWidth int
	ColumnGap      int
}

// DefaultFormat returns the canonical layout settings
func DefaultFormat() Format {
	return Format{SeparatorWidth: DefaultSeparatorWidth, ColumnGap: DefaultColumnGap}
}

func (f Format) withDefaults() Format {
	if f.SeparatorWidth <= 0 {
		f.SeparatorWidth = DefaultSeparatorWidth
	}
	if f.ColumnGap <= 0 {
		f.ColumnGap = DefaultColumnGap
	}
	return f
}

// Lines renders c in canonical form.
//
// The shape, bin and param blocks are aligned independently. The process
// and nuisance blocks share one table so that process columns line up with
// nuisance values; process rows get an empty cell under the nuisance type.
// The event count of a gmN row shares the type cell.
func (f Format) Lines(c *Card) []string {
	f = f.withDefaults()
	separator := strings.Repeat("-", f.SeparatorWidth)

	lines := append([]string(nil), c.header...)
	lines = append(lines, separator)
	lines = append(lines, tabulate(c.shapes, f.ColumnGap)...)
	lines = append(lines, separator)
	lines = append(lines, tabulate(c.bins, f.ColumnGap)...)
	lines = append(lines, separator)

	merged := make([][]string, 0, len(c.processRows)+len(c.nuisances))
	for _, row := range c.processRows {
		padded := make([]string, 0, len(row)+1)
		padded = append(padded, row[0], "")
		padded = append(padded, row[1:]...)
		merged = append(merged, padded)
	}
	for _, n := range c.nuisances {
		kind := n.Type
		if n.Arg != "" {
			kind += " " + n.Arg
		}
		row := make([]string, 0, len(n.Values)+2)
		row = append(row, n.Name, kind)
		row = append(row, n.Values...)
		merged = append(merged, row)
	}
	table := tabulate(merged, f.ColumnGap)
	lines = append(lines, table[:len(c.processRows)]...)
	lines = append(lines, separator)
	lines = append(lines, table[len(c.processRows):]...)

	lines = append(lines, tabulate(c.params, f.ColumnGap)...)
	return lines
}

// Render returns the canonical file content, newline terminated
func (f Format) Render(c *Card) []byte {
	return []byte(strings.Join(f.Lines(c), "\n") + "\n")
}

// tabulate left-aligns every column to its widest cell
func tabulate(rows [][]string, gap int) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			w := utf8.RuneCountInString(cell)
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}

	padding := strings.Repeat(" ", gap)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteString(padding)
			}
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
			}
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}
