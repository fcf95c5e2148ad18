package ingestion

import (
	"time"

	"github.com/shopspring/decimal"
)

// CellKind discriminates the typed value held by a Cell
type CellKind int

const (
	KindMissing CellKind = iota
	KindString
	KindDecimal
	KindTime
)

// Cell is a single typed table value. Sources are read as opaque text, so
// every cell starts as a string; cleaners promote cells to decimal, time or
// missing. A cleaner applied to an already-promoted cell is a no-op, which
// is what makes the Transform stage idempotent.
type Cell struct {
	kind CellKind
	str  string
	dec  decimal.Decimal
	tim  time.Time
}

// Missing is the explicit "no value" marker. Downstream code never
// distinguishes empty string from missing.
var Missing = Cell{kind: KindMissing}

// StringCell wraps a raw text value
func StringCell(s string) Cell {
	return Cell{kind: KindString, str: s}
}

// DecimalCell wraps an exact decimal value
func DecimalCell(d decimal.Decimal) Cell {
	return Cell{kind: KindDecimal, dec: d}
}

// TimeCell wraps a zone-aware timestamp
func TimeCell(t time.Time) Cell {
	return Cell{kind: KindTime, tim: t}
}

// Kind returns the cell's kind
func (c Cell) Kind() CellKind { return c.kind }

// IsMissing reports whether the cell carries no value
func (c Cell) IsMissing() bool { return c.kind == KindMissing }

// AsString returns the text value when the cell holds one
func (c Cell) AsString() (string, bool) {
	return c.str, c.kind == KindString
}

// AsDecimal returns the decimal value when the cell holds one
func (c Cell) AsDecimal() (decimal.Decimal, bool) {
	return c.dec, c.kind == KindDecimal
}

// AsTime returns the timestamp when the cell holds one
func (c Cell) AsTime() (time.Time, bool) {
	return c.tim, c.kind == KindTime
}

// Display renders the cell for error messages and logs
func (c Cell) Display() string {
	switch c.kind {
	case KindString:
		return c.str
	case KindDecimal:
		return c.dec.String()
	case KindTime:
		return c.tim.Format(time.RFC3339)
	default:
		return ""
	}
}

// Row is one table row. Line is the 1-based line number in the source file,
// kept for error reporting.
type Row struct {
	Line  int
	cells map[string]Cell
}

// NewRow creates a row for the given source line
func NewRow(line int) *Row {
	return &Row{Line: line, cells: make(map[string]Cell)}
}

// Get returns the cell for a column; absent columns read as Missing
func (r *Row) Get(column string) Cell {
	if c, ok := r.cells[column]; ok {
		return c
	}
	return Missing
}

// Set stores a cell under a column name
func (r *Row) Set(column string, c Cell) {
	r.cells[column] = c
}

// Table is an in-memory tabular dataset with ordered columns
type Table struct {
	columns []string
	rows    []*Row
}

// NewTable creates an empty table with the given column order
func NewTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{columns: cols}
}

// Columns returns the column names in source order
func (t *Table) Columns() []string {
	return t.columns
}

// HasColumn reports whether a column exists
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.columns {
		if c == name {
			return true
		}
	}
	return false
}

// AddColumn appends a column when it is not present yet. Used by cleaners
// that derive sub-fields (e.g. extracting a tax id from free-text notes).
func (t *Table) AddColumn(name string) {
	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
}

// RenameColumns applies an alias map to the column names. Unknown columns
// pass through unchanged.
func (t *Table) RenameColumns(aliases map[string]string) {
	renamed := make(map[string]string, len(t.columns))
	for i, col := range t.columns {
		if canonical, ok := aliases[col]; ok {
			t.columns[i] = canonical
			renamed[col] = canonical
		}
	}
	if len(renamed) == 0 {
		return
	}
	for _, row := range t.rows {
		for old, canonical := range renamed {
			if c, ok := row.cells[old]; ok {
				delete(row.cells, old)
				row.cells[canonical] = c
			}
		}
	}
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the rows in source order
func (t *Table) Rows() []*Row {
	return t.rows
}

// Append adds a row to the table
func (t *Table) Append(row *Row) {
	t.rows = append(t.rows, row)
}

// Last returns the final row, or nil for an empty table
func (t *Table) Last() *Row {
	if len(t.rows) == 0 {
		return nil
	}
	return t.rows[len(t.rows)-1]
}

// DropLast removes the final row. Used to strip trailer artifacts.
func (t *Table) DropLast() {
	if len(t.rows) > 0 {
		t.rows = t.rows[:len(t.rows)-1]
	}
}
