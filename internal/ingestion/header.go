package ingestion

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var headerFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader folds a raw header for alias lookup: accents stripped,
// lower-cased, surrounding whitespace removed. Exports of the same report
// vary in accent usage and casing across store versions.
func NormalizeHeader(h string) string {
	folded, _, err := transform.String(headerFolder, h)
	if err != nil {
		folded = h
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

// NormalizeHeaders folds a whole header row
func NormalizeHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h)
	}
	return out
}
