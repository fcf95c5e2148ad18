package ecsorder

import (
	"github.com/oms/backend/internal/ingestion"
)

// NewExtractor builds the extractor for the carrier export
func NewExtractor() ingestion.Extractor {
	return &ingestion.CSVExtractor{Aliases: columnAliases}
}
