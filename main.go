package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"playstore-analytics/config"
	"playstore-analytics/models"
	"playstore-analytics/services"
	"playstore-analytics/storage"
	"playstore-analytics/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(utils.ParseLevel(cfg.LogLevel))

	logger.Info("=== Play Store catalog analysis starting ===")
	logger.Info("Config: source: %s | path: %s | top-n: %d", cfg.CatalogSource, cfg.CatalogPath, cfg.TopN)

	rawApps, err := loadCatalog(context.Background(), cfg, logger)
	if err != nil {
		var ioErr *storage.IOError
		var parseErr *storage.ParseError
		switch {
		case errors.As(err, &ioErr):
			logger.Error("Catalog unreadable: %v", err)
		case errors.As(err, &parseErr):
			logger.Error("Catalog malformed: %v", err)
		default:
			logger.Error("Catalog load failed: %v", err)
		}
		os.Exit(1)
	}
	logger.Info("Loaded %d raw rows", len(rawApps))

	cleaner := services.NewCleaner(logger)
	result := cleaner.Clean(rawApps)
	if len(result.Apps) == 0 {
		logger.Error("All rows were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	querySvc := services.NewQueryService(logger)
	report := querySvc.Generate(result.Apps, cfg.TopN)
	querySvc.Print(os.Stdout, report)

	fmt.Printf("  Done. %d of %d rows analysed (%d rejected).\n\n",
		len(result.Apps), result.InputRows, len(result.Rejected))
}

// loadCatalog reads the raw rows from the configured source and releases it.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *utils.Logger) ([]*models.RawApp, error) {
	var reader storage.CatalogReader
	switch cfg.CatalogSource {
	case config.SourceCSV:
		r, err := storage.NewCSVReader(cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		reader = r
	case config.SourcePostgres:
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: time.Second, Logger: logger}
		r, err := storage.NewPostgresReader(ctx, cfg.DSN(), retry)
		if err != nil {
			return nil, err
		}
		reader = r
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q (want %q or %q)",
			cfg.CatalogSource, config.SourceCSV, config.SourcePostgres)
	}
	defer reader.Close()

	return reader.ReadRaw()
}
