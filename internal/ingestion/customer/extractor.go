package customer

import (
	"github.com/oms/backend/internal/ingestion"
)

// NewExtractor builds the extractor for the customers export
func NewExtractor() ingestion.Extractor {
	return &ingestion.CSVExtractor{Aliases: columnAliases}
}
