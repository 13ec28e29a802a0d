// Package table renders aligned, pipe-delimited text tables that are
// refreshed in place tick after tick.
//
// A Table is a scratch buffer: rows are accumulated, written out by Render
// and then dropped. Column widths and the header-emitted flag survive
// Render, so a column never narrows and the header block is written once
// per Table.
package table

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table accumulates rows under a fixed set of headers. It is not safe for
// concurrent use.
type Table struct {
	headers       []string
	widths        []int
	rows          [][]string
	headerEmitted bool
}

// New creates a table with the given column headers. Each column starts
// out as wide as its header.
func New(headers ...string) *Table {
	t := &Table{
		headers: make([]string, len(headers)),
		widths:  make([]int, len(headers)),
	}
	copy(t.headers, headers)
	for i, h := range t.headers {
		t.widths[i] = runewidth.StringWidth(h)
	}
	return t
}

// AddRow appends a row. Cells beyond the header count are ignored and
// missing cells render as empty strings. The cells are copied, so callers
// may reuse the slice afterwards.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i >= len(cells) {
			break
		}
		row[i] = cells[i]
		if w := runewidth.StringWidth(cells[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
}

// Render writes the header block (first call only) followed by every
// buffered row, then clears the rows. Rows are cleared even when the
// write fails.
func (t *Table) Render(w io.Writer) error {
	var b strings.Builder
	if !t.headerEmitted {
		t.writeHeader(&b)
		t.headerEmitted = true
	}
	t.writeRows(&b)
	t.Reset()

	if b.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// String returns the buffered rows formatted as Render would write them,
// without the header block. It does not modify the table.
func (t *Table) String() string {
	var b strings.Builder
	t.writeRows(&b)
	return b.String()
}

// Header returns the header line and separator. It does not modify the table.
func (t *Table) Header() string {
	var b strings.Builder
	t.writeHeader(&b)
	return b.String()
}

// Reset drops the buffered rows. Widths and the header flag are kept.
func (t *Table) Reset() {
	t.rows = nil
}

// Len returns the number of buffered rows.
func (t *Table) Len() int { return len(t.rows) }

// HeaderEmitted reports whether Render has written the header block.
func (t *Table) HeaderEmitted() bool { return t.headerEmitted }

// Widths returns a copy of the current column widths.
func (t *Table) Widths() []int {
	w := make([]int, len(t.widths))
	copy(w, t.widths)
	return w
}

func (t *Table) writeHeader(b *strings.Builder) {
	t.writeLine(b, t.headers)
	b.WriteByte('|')
	for _, w := range t.widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteByte('|')
	}
	b.WriteByte('\n')
}

func (t *Table) writeRows(b *strings.Builder) {
	for _, row := range t.rows {
		t.writeLine(b, row)
	}
}

func (t *Table) writeLine(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	for i, w := range t.widths {
		b.WriteString(runewidth.FillRight(cells[i], w))
		b.WriteString(" | ")
	}
	b.WriteByte('\n')
}
