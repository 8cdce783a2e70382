// Package report builds the portfolio overview table and renders it as text.
package report

import "fmt"

// Table ordered named columns and ordered labelled rows of preformatted cells.
type Table struct {
	Columns []string
	Rows    []Row
}

// Row labelled table line, one cell per column.
type Row struct {
	Label string
	Cells []string
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns}
}

// AddRow appends a row. The number of cells must match the number of columns.
func (t *Table) AddRow(label string, cells ...string) error {
	if len(cells) != len(t.Columns) {
		return fmt.Errorf("row %q has %d cells, table has %d columns", label, len(cells), len(t.Columns))
	}
	t.Rows = append(t.Rows, Row{Label: label, Cells: cells})
	return nil
}

// Labels returns the row labels in order.
func (t *Table) Labels() []string {
	labels := make([]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		labels = append(labels, r.Label)
	}
	return labels
}

// Cell returns the cell of the labelled row in the named column.
func (t *Table) Cell(label, column string) (string, bool) {
	col := -1
	for i, c := range t.Columns {
		if c == column {
			col = i
			break
		}
	}
	if col < 0 {
		return "", false
	}
	for _, r := range t.Rows {
		if r.Label == label {
			return r.Cells[col], true
		}
	}
	return "", false
}
