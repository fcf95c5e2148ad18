package csvimport

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Parser reads delimited text with all fields as opaque strings. Monetary
// and phone columns use locale-specific formats that generic type inference
// would corrupt, so no value typing happens at this layer.
type Parser struct {
	delimiter  rune
	lazyQuotes bool
	trimSpace  bool
	headers    []string
	headerMap  map[string]int
	currentRow int
	reader     *csv.Reader
}

// Option configures a Parser
type Option func(*Parser)

// WithDelimiter sets the field delimiter (default comma)
func WithDelimiter(d rune) Option {
	return func(p *Parser) { p.delimiter = d }
}

// WithLazyQuotes tolerates bare quotes inside fields
func WithLazyQuotes(lazy bool) Option {
	return func(p *Parser) { p.lazyQuotes = lazy }
}

// WithTrimSpace trims leading/trailing whitespace from headers and fields
func WithTrimSpace(trim bool) Option {
	return func(p *Parser) { p.trimSpace = trim }
}

// NewParser wraps a reader, stripping a UTF-8 BOM and validating the
// encoding before any parsing happens
func NewParser(r io.Reader, opts ...Option) (*Parser, error) {
	p := &Parser{
		delimiter:  ',',
		lazyQuotes: true,
		trimSpace:  true,
		headerMap:  make(map[string]int),
	}
	for _, opt := range opts {
		opt(p)
	}

	buf := bufio.NewReader(r)

	head, err := buf.Peek(3)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}
	if len(head) >= 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		_, _ = buf.Discard(3)
	}

	if err := validateUTF8(buf); err != nil {
		return nil, err
	}

	p.reader = csv.NewReader(buf)
	p.reader.Comma = p.delimiter
	p.reader.LazyQuotes = p.lazyQuotes
	p.reader.TrimLeadingSpace = p.trimSpace
	p.reader.FieldsPerRecord = -1

	return p, nil
}

// validateUTF8 peeks at the content and rejects non-UTF-8 sources early
func validateUTF8(r *bufio.Reader) error {
	const checkSize = 4096
	content, err := r.Peek(checkSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read source for encoding validation: %w", err)
	}
	if len(content) == 0 {
		return ErrEmptyFile
	}
	// A peek can split a multi-byte rune at the boundary; back off up to
	// three trailing continuation bytes before judging.
	end := len(content)
	for end > 0 && end > len(content)-4 && !utf8.Valid(content[:end]) {
		end--
	}
	if !utf8.Valid(content[:end]) {
		return ErrInvalidEncoding
	}
	return nil
}

// ParseHeader reads the header row and builds the column index
func (p *Parser) ParseHeader() error {
	record, err := p.reader.Read()
	if err == io.EOF {
		return ErrMissingHeader
	}
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p.headers = make([]string, len(record))
	for i, h := range record {
		if p.trimSpace {
			h = strings.TrimSpace(h)
		}
		p.headers[i] = h
		p.headerMap[h] = i
	}
	if len(p.headers) == 0 {
		return ErrMissingHeader
	}
	p.currentRow = 1
	return nil
}

// Headers returns the parsed header names in file order
func (p *Parser) Headers() []string {
	return p.headers
}

// HasHeader reports whether a column is present
func (p *Parser) HasHeader(name string) bool {
	_, ok := p.headerMap[name]
	return ok
}

// Record is one parsed data row keyed by header name
type Record struct {
	Line   int
	Fields map[string]string
}

// Get returns the value for a header, or "" when absent
func (r *Record) Get(header string) string {
	return r.Fields[header]
}

// IsEmpty reports whether every field is blank
func (r *Record) IsEmpty() bool {
	for _, v := range r.Fields {
		if v != "" {
			return false
		}
	}
	return true
}

// ReadRecord reads the next data row, mapping fields to headers. Short rows
// fill missing columns with empty strings.
func (p *Parser) ReadRecord() (*Record, error) {
	fields, err := p.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	p.currentRow++
	if err != nil {
		return nil, fmt.Errorf("error reading row %d: %w", p.currentRow, err)
	}

	rec := &Record{
		Line:   p.currentRow,
		Fields: make(map[string]string, len(p.headers)),
	}
	for i, header := range p.headers {
		value := ""
		if i < len(fields) {
			value = fields[i]
			if p.trimSpace {
				value = strings.TrimSpace(value)
			}
		}
		rec.Fields[header] = value
	}
	return rec, nil
}

// ReadAll reads every remaining data row, skipping fully empty rows
func (p *Parser) ReadAll() ([]*Record, error) {
	var records []*Record
	for {
		rec, err := p.ReadRecord()
		if err == io.EOF {
			break
		}
		if err != nil {
			return records, err
		}
		if rec.IsEmpty() {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
