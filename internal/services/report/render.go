package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Style table look.
type Style string

const (
	// StylePlain fixed-width columns without borders.
	StylePlain Style = "plain"
	// StyleBox rounded border around every cell.
	StyleBox Style = "box"
)

// IsValid checks if the Style value is known.
func (s Style) IsValid() bool {
	return s == StylePlain || s == StyleBox
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Right)
	labelStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Left)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// Render writes the table as fixed-width text: a header line, one line per row
// labelled with the row label.
func Render(w io.Writer, t *Table, style Style) error {
	if !style.IsValid() {
		return fmt.Errorf("unknown table style %q", style)
	}

	headers := append([]string{""}, t.Columns...)
	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rows = append(rows, append([]string{r.Label}, r.Cells...))
	}

	lt := table.New().
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		})

	switch style {
	case StyleBox:
		lt = lt.Border(lipgloss.RoundedBorder())
	default:
		lt = lt.
			BorderTop(false).
			BorderBottom(false).
			BorderLeft(false).
			BorderRight(false).
			BorderHeader(false).
			BorderColumn(false)
	}

	_, err := fmt.Fprintln(w, lt.Render())
	return err
}
