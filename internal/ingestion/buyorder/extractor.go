package buyorder

import (
	"github.com/oms/backend/internal/ingestion"
)

// trailer row the export appends with column totals
const (
	trailerColumn = ColOrderNumber
	trailerValue  = "totais"
)

// NewExtractor builds the extractor for the buy-orders export
func NewExtractor() ingestion.Extractor {
	return &ingestion.CSVExtractor{
		Aliases:       columnAliases,
		TrailerColumn: trailerColumn,
		TrailerValue:  trailerValue,
	}
}
