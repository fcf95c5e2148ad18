// Package ingestion wires the report pipelines into the application entry
// point called by the upload surface and the CLI.
package ingestion

import (
	"context"

	"go.uber.org/zap"

	"github.com/oms/backend/internal/ingestion"
	"github.com/oms/backend/internal/ingestion/buyorder"
	"github.com/oms/backend/internal/ingestion/customer"
	"github.com/oms/backend/internal/ingestion/ecsorder"
)

// ReportService runs report ingestions against the registered pipelines
type ReportService struct {
	registry *ingestion.Registry
	logger   *zap.Logger
}

// NewReportService builds the service over a registry
func NewReportService(registry *ingestion.Registry, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{registry: registry, logger: logger}
}

// ProcessReport ingests one report source under the named report type.
// Unknown report types fail before the source is even opened.
func (s *ReportService) ProcessReport(ctx context.Context, reportType string, src ingestion.Source) (*ingestion.Result, error) {
	pipeline, err := s.registry.Resolve(reportType)
	if err != nil {
		return nil, err
	}
	return pipeline.Run(ctx, src)
}

// ReportTypes lists the ingestable report types
func (s *ReportService) ReportTypes() []string {
	return s.registry.ReportTypes()
}

// NewDefaultRegistry registers the three production report pipelines
func NewDefaultRegistry(tx ingestion.TxManager, opts ingestion.Options, logger *zap.Logger) (*ingestion.Registry, error) {
	registry := ingestion.NewRegistry()

	registry.Register(ingestion.NewPipeline(
		buyorder.ReportType,
		buyorder.NewExtractor(),
		buyorder.NewTransformer(opts),
		buyorder.NewLoader(tx, opts),
		logger,
	))

	registry.Register(ingestion.NewPipeline(
		customer.ReportType,
		customer.NewExtractor(),
		customer.NewTransformer(opts),
		customer.NewLoader(tx, opts),
		logger,
	))

	ecsTransformer, err := ecsorder.NewTransformer(opts)
	if err != nil {
		return nil, err
	}
	registry.Register(ingestion.NewPipeline(
		ecsorder.ReportType,
		ecsorder.NewExtractor(),
		ecsTransformer,
		ecsorder.NewLoader(tx, opts),
		logger,
	))

	return registry, nil
}
