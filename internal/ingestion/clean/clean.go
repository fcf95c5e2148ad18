// Package clean provides the column cleaners the transform stage composes.
// Every cleaner only acts on string cells and passes promoted or missing
// cells through untouched, so re-running a transform over already-clean
// data changes nothing.
package clean

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/oms/backend/internal/ingestion"
)

// Func rewrites a single cell
type Func func(ingestion.Cell) ingestion.Cell

// Apply runs a cleaner over one column of a table
func Apply(t *ingestion.Table, column string, fn Func) {
	if !t.HasColumn(column) {
		return
	}
	for _, row := range t.Rows() {
		row.Set(column, fn(row.Get(column)))
	}
}

// Chain composes cleaners left to right
func Chain(fns ...Func) Func {
	return func(c ingestion.Cell) ingestion.Cell {
		for _, fn := range fns {
			c = fn(c)
		}
		return c
	}
}

// onString lifts a string rewrite into a Func that skips non-string cells
func onString(fn func(string) ingestion.Cell) Func {
	return func(c ingestion.Cell) ingestion.Cell {
		s, ok := c.AsString()
		if !ok {
			return c
		}
		return fn(s)
	}
}

// TrimSpace removes surrounding whitespace
func TrimSpace() Func {
	return onString(func(s string) ingestion.Cell {
		return ingestion.StringCell(strings.TrimSpace(s))
	})
}

// LowerCase folds the value to lower case
func LowerCase() Func {
	return onString(func(s string) ingestion.Cell {
		return ingestion.StringCell(strings.ToLower(s))
	})
}

// BlankToMissing turns empty or whitespace-only values into Missing
func BlankToMissing() Func {
	return onString(func(s string) ingestion.Cell {
		if strings.TrimSpace(s) == "" {
			return ingestion.Missing
		}
		return ingestion.StringCell(s)
	})
}

// MatchToMissing turns values matching the pattern into Missing. Used for
// placeholder timestamps like "0000-00-00 00:00:00".
func MatchToMissing(re *regexp.Regexp) Func {
	return onString(func(s string) ingestion.Cell {
		if re.MatchString(s) {
			return ingestion.Missing
		}
		return ingestion.StringCell(s)
	})
}

var nonDigits = regexp.MustCompile(`\D`)

// DigitsOnly strips every non-digit character. Tax ids, phone numbers and
// zip codes arrive with assorted punctuation.
func DigitsOnly() Func {
	return onString(func(s string) ingestion.Cell {
		digits := nonDigits.ReplaceAllString(s, "")
		if digits == "" {
			return ingestion.Missing
		}
		return ingestion.StringCell(digits)
	})
}

// TrimRightCutset strips trailing characters from the cutset
func TrimRightCutset(cutset string) Func {
	return onString(func(s string) ingestion.Cell {
		return ingestion.StringCell(strings.TrimRight(s, cutset))
	})
}

// Currency parses Brazilian-formatted amounts like "R$ 1.234,56" into
// decimals. Under PolicyZero an unparsable value becomes 0.00; under
// PolicyReject it stays a string so downstream validation rejects the batch.
func Currency(policy ingestion.CurrencyPolicy) Func {
	return onString(func(s string) ingestion.Cell {
		normalized := strings.TrimSpace(s)
		normalized = strings.TrimPrefix(normalized, "R$")
		normalized = strings.TrimSpace(normalized)
		normalized = strings.ReplaceAll(normalized, ".", "")
		normalized = strings.ReplaceAll(normalized, ",", ".")

		d, err := decimal.NewFromString(normalized)
		if err != nil {
			if policy == ingestion.CurrencyRejectRow {
				return ingestion.StringCell(s)
			}
			return ingestion.DecimalCell(decimal.Zero)
		}
		return ingestion.DecimalCell(d)
	})
}

// ParseTime parses timestamps with the given layout, attaching loc when the
// layout carries no zone. Unparsable values stay strings for downstream
// validation to report.
func ParseTime(layout string, loc *time.Location) Func {
	return onString(func(s string) ingestion.Cell {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc)
		if err != nil {
			return ingestion.StringCell(s)
		}
		return ingestion.TimeCell(t)
	})
}

// ParseTimeOrMissing parses like ParseTime but drops unparsable values to
// Missing. Used for optional dates, where a malformed value may not reject
// the batch.
func ParseTimeOrMissing(layout string, loc *time.Location) Func {
	return onString(func(s string) ingestion.Cell {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(s), loc)
		if err != nil {
			return ingestion.Missing
		}
		return ingestion.TimeCell(t)
	})
}

// ReplaceRule rewrites a value when it contains Find
type ReplaceRule struct {
	Find    string
	Replace string
}

// ReplaceContains applies the first matching rule, comparing case-
// insensitively against the whole value. Rule order matters: earlier rules
// win when several would match.
func ReplaceContains(rules []ReplaceRule) Func {
	return onString(func(s string) ingestion.Cell {
		lowered := strings.ToLower(s)
		for _, rule := range rules {
			if strings.Contains(lowered, strings.ToLower(rule.Find)) {
				return ingestion.StringCell(rule.Replace)
			}
		}
		return ingestion.StringCell(s)
	})
}

// ExtractPattern pulls the first capture group out of the value, or Missing
// when the pattern does not match
func ExtractPattern(re *regexp.Regexp) Func {
	return onString(func(s string) ingestion.Cell {
		m := re.FindStringSubmatch(s)
		if len(m) < 2 {
			return ingestion.Missing
		}
		return ingestion.StringCell(m[1])
	})
}

// SplitNameInto splits a full name column into first and last name columns.
// A single word becomes the first name with an empty last name.
func SplitNameInto(t *ingestion.Table, source, firstCol, lastCol string) {
	if !t.HasColumn(source) {
		return
	}
	t.AddColumn(firstCol)
	t.AddColumn(lastCol)
	for _, row := range t.Rows() {
		c := row.Get(source)
		s, ok := c.AsString()
		if !ok {
			continue
		}
		first, last := SplitName(s)
		row.Set(firstCol, ingestion.StringCell(first))
		row.Set(lastCol, ingestion.StringCell(last))
	}
}

// SplitName splits a full name at the first space
func SplitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	parts := strings.SplitN(full, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}
