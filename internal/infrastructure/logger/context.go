package logger

import (
	"context"

	"go.uber.org/zap"
)

// contextKey is a type for context keys used by the logger package
type contextKey string

const (
	// LoggerKey is the context key for the logger
	LoggerKey contextKey = "logger"
	// RunIDKey is the context key for the ingestion run ID
	RunIDKey contextKey = "run_id"
	// ReportTypeKey is the context key for the report type being ingested
	ReportTypeKey contextKey = "report_type"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// FromContext retrieves the logger from context, returns a no-op logger if
// not found
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRunID adds the ingestion run ID to context and returns the enriched
// logger
func WithRunID(ctx context.Context, logger *zap.Logger, runID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, RunIDKey, runID)
	enriched := logger.With(zap.String("run_id", runID))
	return WithContext(ctx, enriched), enriched
}

// WithReportType adds the report type to context and returns the enriched
// logger
func WithReportType(ctx context.Context, logger *zap.Logger, reportType string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, ReportTypeKey, reportType)
	enriched := logger.With(zap.String("report_type", reportType))
	return WithContext(ctx, enriched), enriched
}

// GetRunID retrieves the run ID from context
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// GetReportType retrieves the report type from context
func GetReportType(ctx context.Context) string {
	if reportType, ok := ctx.Value(ReportTypeKey).(string); ok {
		return reportType
	}
	return ""
}
