package ingestion

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Extractor reads a raw source into an in-memory table with canonical
// column names and all values typed as opaque text
type Extractor interface {
	Extract(ctx context.Context, src Source) (*Table, error)
}

// Transformer applies the report's ordered cleaning rules. It must be pure
// and idempotent: transforming its own output yields the same output.
type Transformer interface {
	Transform(t *Table) (*Table, error)
}

// Loader resolves each row to entities and persists the batch inside one
// all-or-nothing transaction
type Loader interface {
	Load(ctx context.Context, t *Table) (*Result, error)
}

// Result summarizes the persisted effects of one pipeline run
type Result struct {
	ReportType        string
	Rows              int
	CustomersCreated  int
	CustomersUpdated  int
	GroupsCreated     int
	OrdersCreated     int
	DetailsCreated    int
	DetailsUpdated    int
	CompaniesCreated  int
	EcsOrdersUpserted int
	Warnings          []Warning
}

// AddWarning records a non-fatal finding
func (r *Result) AddWarning(code string, line int, format string, args ...any) {
	r.Warnings = append(r.Warnings, Warning{
		Code:    code,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// Pipeline is the fixed extract → transform → load sequence for one report
// type. The steps are not independently skippable or reorderable; failure
// in any step aborts the whole run.
type Pipeline struct {
	reportType  string
	extractor   Extractor
	transformer Transformer
	loader      Loader
	logger      *zap.Logger
}

// NewPipeline assembles a pipeline for a report type
func NewPipeline(reportType string, e Extractor, t Transformer, l Loader, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		reportType:  reportType,
		extractor:   e,
		transformer: t,
		loader:      l,
		logger:      logger,
	}
}

// ReportType returns the registry key this pipeline serves
func (p *Pipeline) ReportType() string {
	return p.reportType
}

// Run executes load(transform(extract(source))) and returns the outcome.
// No partial extract or transform is ever carried forward.
func (p *Pipeline) Run(ctx context.Context, src Source) (*Result, error) {
	log := p.logger.With(
		zap.String("report_type", p.reportType),
		zap.String("source", src.Ident()),
	)

	table, err := p.extractor.Extract(ctx, src)
	if err != nil {
		return nil, err
	}
	log.Debug("extracted report", zap.Int("rows", table.Len()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err = p.transformer.Transform(table)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := p.loader.Load(ctx, table)
	if err != nil {
		return nil, err
	}
	result.ReportType = p.reportType
	result.Rows = table.Len()

	for _, w := range result.Warnings {
		log.Warn("data quality warning",
			zap.String("code", w.Code),
			zap.Int("row", w.Line),
			zap.String("detail", w.Message),
		)
	}
	log.Info("report ingested",
		zap.Int("rows", result.Rows),
		zap.Int("customers_created", result.CustomersCreated),
		zap.Int("customers_updated", result.CustomersUpdated),
		zap.Int("orders_created", result.OrdersCreated),
		zap.Int("warnings", len(result.Warnings)),
	)
	return result, nil
}

// Registry is the closed mapping from report-type key to pipeline
type Registry struct {
	pipelines map[string]*Pipeline
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{pipelines: make(map[string]*Pipeline)}
}

// Register adds a pipeline under its report type, replacing any previous
// registration for the same key
func (r *Registry) Register(p *Pipeline) {
	r.pipelines[p.ReportType()] = p
}

// Resolve returns the pipeline for a report type
func (r *Registry) Resolve(reportType string) (*Pipeline, error) {
	p, ok := r.pipelines[reportType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, reportType)
	}
	return p, nil
}

// ReportTypes lists the registered keys in stable order
func (r *Registry) ReportTypes() []string {
	keys := make([]string, 0, len(r.pipelines))
	for k := range r.pipelines {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
