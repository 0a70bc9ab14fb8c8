// Package columns lays out text in columns padded to their display width.
package columns

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align selects which side of a column a cell is padded on.
type Align int

const (
	Left Align = iota
	Right
)

type line struct {
	cells []string
	raw   bool
}

// Table buffers rows and writes them with every column padded to its
// widest cell. Columns without an explicit alignment are left-aligned.
type Table struct {
	align  []Align
	prefix string
	sep    string
	lines  []line
}

// New returns a table whose columns are aligned as given, separated by two
// spaces.
func New(align ...Align) *Table {
	return &Table{align: align, sep: "  "}
}

// Indent sets a prefix written before every row. Raw lines are not indented.
func (t *Table) Indent(prefix string) *Table {
	t.prefix = prefix
	return t
}

// Row appends a row of cells.
func (t *Table) Row(cells ...string) {
	t.lines = append(t.lines, line{cells: cells})
}

// Line appends text written as is, outside the column layout.
func (t *Table) Line(s string) {
	t.lines = append(t.lines, line{cells: []string{s}, raw: true})
}

func (t *Table) widths() []int {
	var widths []int
	for _, l := range t.lines {
		if l.raw {
			continue
		}
		for i, cell := range l.cells {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func (t *Table) alignment(i int) Align {
	if i < len(t.align) {
		return t.align[i]
	}
	return Left
}

// String renders the table. Trailing padding is trimmed from every row.
func (t *Table) String() string {
	widths := t.widths()

	var b strings.Builder
	for _, l := range t.lines {
		if l.raw {
			b.WriteString(l.cells[0])
			b.WriteByte('\n')
			continue
		}
		var row strings.Builder
		row.WriteString(t.prefix)
		for i, cell := range l.cells {
			if i > 0 {
				row.WriteString(t.sep)
			}
			if t.alignment(i) == Right {
				row.WriteString(runewidth.FillLeft(cell, widths[i]))
			} else {
				row.WriteString(runewidth.FillRight(cell, widths[i]))
			}
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes the rendered table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}
