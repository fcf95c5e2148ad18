package ingestion

import (
	csvimport "github.com/oms/backend/internal/infrastructure/import"
)

// CellValue adapts a cell for the row validator. Promoted cells render
// through Display, so a decimal cell always passes a decimal rule while a
// string left unpromoted by a cleaner fails it.
func CellValue(c Cell) csvimport.Value {
	return csvimport.Value{Present: !c.IsMissing(), Text: c.Display()}
}

// RowGetter builds the validator's column accessor for one row
func RowGetter(r *Row) func(string) csvimport.Value {
	return func(column string) csvimport.Value {
		return CellValue(r.Get(column))
	}
}

// DistinctStrings collects the unique non-missing string values of a
// column in first-seen order
func DistinctStrings(t *Table, column string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, row := range t.Rows() {
		s, ok := row.Get(column).AsString()
		if !ok || s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
