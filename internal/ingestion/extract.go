package ingestion

import (
	"context"
	"strings"

	csvimport "github.com/oms/backend/internal/infrastructure/import"
)

// CSVExtractor reads a delimited source into a Table. Source headers are
// accent-folded before alias lookup, then renamed to canonical column
// names; headers without an alias pass through folded. Every extracted
// cell is either a string or Missing, never typed.
type CSVExtractor struct {
	// Aliases maps folded source headers to canonical column names
	Aliases map[string]string
	// TrailerColumn and TrailerValue identify a summary trailer row that
	// some exports append below the data; when the last row's
	// TrailerColumn equals TrailerValue it is dropped
	TrailerColumn string
	TrailerValue  string
	// ParserOpts are forwarded to the CSV parser
	ParserOpts []csvimport.Option
}

// Extract implements Extractor
func (e *CSVExtractor) Extract(ctx context.Context, src Source) (*Table, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	parser, err := csvimport.NewParser(rc, e.ParserOpts...)
	if err != nil {
		return nil, NewSourceReadError(src.Ident(), err)
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, NewSourceReadError(src.Ident(), err)
	}

	columns := make([]string, 0, len(parser.Headers()))
	byRaw := make(map[string]string, len(parser.Headers()))
	for _, raw := range parser.Headers() {
		canonical := NormalizeHeader(raw)
		if alias, ok := e.Aliases[canonical]; ok {
			canonical = alias
		}
		columns = append(columns, canonical)
		byRaw[raw] = canonical
	}

	records, err := parser.ReadAll()
	if err != nil {
		return nil, NewSourceReadError(src.Ident(), err)
	}

	table := NewTable(columns)
	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := NewRow(rec.Line)
		for raw, canonical := range byRaw {
			v := rec.Get(raw)
			if v == "" {
				row.Set(canonical, Missing)
				continue
			}
			row.Set(canonical, StringCell(v))
		}
		table.Append(row)
	}

	e.stripTrailer(table)
	return table, nil
}

// stripTrailer drops the export's summary row when present
func (e *CSVExtractor) stripTrailer(t *Table) {
	if e.TrailerColumn == "" || !t.HasColumn(e.TrailerColumn) {
		return
	}
	last := t.Last()
	if last == nil {
		return
	}
	v, ok := last.Get(e.TrailerColumn).AsString()
	if !ok {
		return
	}
	if strings.EqualFold(strings.TrimSpace(v), e.TrailerValue) {
		t.DropLast()
	}
}
