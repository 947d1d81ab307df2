package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/envup/pkg/utils"
)

// Column represents a single table column with its header and current width.
type Column struct {
	Header string
	Width  int
}

// Table is a terminal table formatter with dynamic column widths.
//
// Widths grow as rows are measured, using Unicode-aware display widths so
// columns stay aligned with non-ASCII package names.
type Table struct {
	columns   []Column
	separator string
}

// NewTable creates a table with the default two-space column separator.
//
// Returns:
//   - *Table: A new table ready for column configuration
func NewTable() *Table {
	return &Table{
		columns:   make([]Column, 0),
		separator: "  ",
	}
}

// WithSeparator sets a custom column separator and returns the table.
//
// Parameters:
//   - sep: The string placed between columns
//
// Returns:
//   - *Table: The table for method chaining
func (t *Table) WithSeparator(sep string) *Table {
	t.separator = sep
	return t
}

// AddColumn adds a column whose initial width is its header's display width.
//
// Parameters:
//   - header: The column header text
//
// Returns:
//   - *Table: The table for method chaining
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  utils.DisplayWidth(header),
	})
	return t
}

// AddColumnWithMinWidth adds a column with a minimum width guarantee.
//
// Parameters:
//   - header: The column header text
//   - minWidth: The minimum width in character cells
//
// Returns:
//   - *Table: The table for method chaining
func (t *Table) AddColumnWithMinWidth(header string, minWidth int) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  utils.Max(utils.DisplayWidth(header), minWidth),
	})
	return t
}

// UpdateWidths grows column widths to fit a row of values.
//
// Parameters:
//   - values: One value per column, in column order
//
// Returns:
//   - *Table: The table for method chaining
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i < len(t.columns) {
			width := utils.DisplayWidth(val)
			if width > t.columns[i].Width {
				t.columns[i].Width = width
			}
		}
	}
	return t
}

// HeaderRow returns the formatted header row.
//
// Returns:
//   - string: Headers padded to their column widths
func (t *Table) HeaderRow() string {
	parts := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		parts = append(parts, utils.ToWidth(col.Header, col.Width))
	}
	return strings.Join(parts, t.separator)
}

// SeparatorRow returns a dashed row dividing headers from data.
//
// Returns:
//   - string: Dash runs matching each column's width
func (t *Table) SeparatorRow() string {
	parts := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		parts = append(parts, strings.Repeat("-", col.Width))
	}
	return strings.Join(parts, t.separator)
}

// FormatRow formats a data row, padding each value to its column width.
//
// Missing trailing values render as empty cells.
//
// Parameters:
//   - values: One value per column, in column order
//
// Returns:
//   - string: The formatted row
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, 0, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts = append(parts, utils.ToWidth(val, col.Width))
	}
	return strings.Join(parts, t.separator)
}

// ColumnCount returns the number of columns.
//
// Returns:
//   - int: The column count
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Fprint writes the header and separator rows to the given writer.
//
// Parameters:
//   - w: The destination writer
func (t *Table) Fprint(w io.Writer) {
	_, _ = fmt.Fprintln(w, t.HeaderRow())
	_, _ = fmt.Fprintln(w, t.SeparatorRow())
}
