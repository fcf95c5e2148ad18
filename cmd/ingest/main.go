package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appingestion "github.com/oms/backend/internal/application/ingestion"
	"github.com/oms/backend/internal/infrastructure/config"
	"github.com/oms/backend/internal/infrastructure/logger"
	"github.com/oms/backend/internal/infrastructure/persistence"
	"github.com/oms/backend/internal/ingestion"
)

func main() {
	var (
		reportType string
		filePath   string
		removeFile bool
		listTypes  bool
	)

	flag.StringVar(&reportType, "type", "", "Report type to ingest")
	flag.StringVar(&filePath, "file", "", "Path to the report CSV file")
	flag.BoolVar(&removeFile, "remove-file", false, "Delete the file once the run finishes, whatever the outcome")
	flag.BoolVar(&listTypes, "list", false, "List the known report types and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if err := run(cfg, log, reportType, filePath, removeFile, listTypes); err != nil {
		log.Error("Ingestion failed", zap.Error(err))
		_ = logger.Sync(log)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger, reportType, filePath string, removeFile, listTypes bool) error {
	opts, err := ingestionOptions(cfg.Ingestion)
	if err != nil {
		return err
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	registry, err := appingestion.NewDefaultRegistry(persistence.NewGormTxManager(db.DB), opts, log)
	if err != nil {
		return fmt.Errorf("failed to build report registry: %w", err)
	}
	service := appingestion.NewReportService(registry, log)

	if listTypes {
		for _, rt := range service.ReportTypes() {
			fmt.Println(rt)
		}
		return nil
	}

	if reportType == "" || filePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: ingest -type <report_type> -file <path> [-remove-file]")
		fmt.Fprintf(os.Stderr, "Known report types: %s\n", strings.Join(service.ReportTypes(), ", "))
		return fmt.Errorf("report type and file are required")
	}

	// The upload is consumed by this run; remove it even when the run
	// fails so a broken file is not retried forever.
	if removeFile {
		defer func() {
			if err := os.Remove(filePath); err != nil {
				log.Warn("Failed to remove ingested file", zap.Error(err))
			}
		}()
	}

	ctx, log := logger.WithRunID(context.Background(), log, uuid.NewString())
	log.Info("Ingestion started",
		zap.String("report_type", reportType),
		zap.String("file", filePath),
	)

	result, err := service.ProcessReport(ctx, reportType, ingestion.FileSource(filePath))
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		log.Warn("Ingestion warning",
			zap.String("code", w.Code),
			zap.Int("line", w.Line),
			zap.String("message", w.Message),
		)
	}

	log.Info("Ingestion completed",
		zap.Int("rows", result.Rows),
		zap.Int("customers_created", result.CustomersCreated),
		zap.Int("customers_updated", result.CustomersUpdated),
		zap.Int("groups_created", result.GroupsCreated),
		zap.Int("orders_created", result.OrdersCreated),
		zap.Int("details_created", result.DetailsCreated),
		zap.Int("details_updated", result.DetailsUpdated),
		zap.Int("companies_created", result.CompaniesCreated),
		zap.Int("ecs_orders_upserted", result.EcsOrdersUpserted),
		zap.Int("warnings", len(result.Warnings)),
	)
	return nil
}

// ingestionOptions maps the config section onto run-wide pipeline options
func ingestionOptions(cfg config.IngestionConfig) (ingestion.Options, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return ingestion.Options{}, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return ingestion.Options{
		Location:  loc,
		Currency:  ingestion.CurrencyPolicy(cfg.CurrencyOnError),
		Identity:  ingestion.IdentityPreference(cfg.IdentityPreference),
		MaxErrors: cfg.MaxErrors,
	}, nil
}
