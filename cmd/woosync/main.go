// cmd/woosync/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"woosync/pkg/config"
	"woosync/pkg/images"
	"woosync/pkg/spreadsheet"
	"woosync/pkg/sync"
	"woosync/pkg/woo"
)

func main() {
	var (
		xlsxPath  = flag.String("xlsx", "", "path to the catalog workbook (required)")
		imagesDir = flag.String("images", "", "image archive root (overrides IMAGES_DIR)")
		envFile   = flag.String("env", ".env", "environment file to load")
		dryRun    = flag.Bool("dry-run", false, "plan the sync without touching the store")
		limit     = flag.Int("limit", 0, "stop after this many products (0 = all)")
		startRow  = flag.Int("start-row", -1, "zero-based first data row (-1 = configured default)")
	)
	flag.Parse()

	if *xlsxPath == "" {
		fmt.Fprintln(os.Stderr, "usage: woosync --xlsx catalog.xlsx [--images dir] [--dry-run] [--limit n]")
		os.Exit(2)
	}

	// A missing env file is fine when the variables are already set.
	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", *envFile, err)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *dryRun {
		cfg.DryRun = true
	}
	if *imagesDir != "" {
		cfg.ImagesDir = *imagesDir
	}

	logger, err := buildLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger, *xlsxPath, *startRow, *limit); err != nil {
		logger.Error("Sync failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger, xlsxPath string, startRow, limit int) error {
	ctx := context.Background()
	catalogCfg := config.DefaultCatalogConfig()

	client := woo.NewClient(cfg.Store, logger)
	if !cfg.DryRun {
		if err := client.Ping(ctx); err != nil {
			return fmt.Errorf("store is unreachable: %w", err)
		}
	}

	reader := spreadsheet.NewReader(catalogCfg, logger)
	rows, err := reader.Read(xlsxPath, startRow)
	if err != nil {
		return err
	}

	idx, err := images.Scan(cfg.ImagesDir, logger)
	if err != nil {
		return err
	}

	engine := sync.NewEngine(client, catalogCfg, sync.Options{
		DryRun:        cfg.DryRun,
		SkipExisting:  cfg.SkipExisting,
		Limit:         limit,
		DefaultStatus: cfg.DefaultStatus,
		StockStatus:   cfg.StockStatus,
	}, logger)

	summary, err := engine.Run(ctx, rows, idx)
	if err != nil {
		return err
	}

	journal, err := sync.OpenJournal(cfg.JournalPath)
	if err != nil {
		return err
	}
	defer journal.Close()
	if err := journal.Record(ctx, summary); err != nil {
		return err
	}

	logPath, err := sync.WriteJSONLog(cfg.LogDir, summary)
	if err != nil {
		return err
	}

	printSummary(summary, logPath)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d products failed", summary.Failed, summary.Processed)
	}
	return nil
}

func printSummary(s *sync.Summary, logPath string) {
	mode := "live"
	if s.DryRun {
		mode = "dry run"
	}
	fmt.Printf("\nSync %s (%s) finished in %s\n", s.RunID, mode, s.Duration.Round(time.Millisecond))
	fmt.Printf("  processed: %d\n", s.Processed)
	fmt.Printf("  created:   %d\n", s.Created)
	fmt.Printf("  updated:   %d\n", s.Updated)
	fmt.Printf("  skipped:   %d\n", s.Skipped)
	fmt.Printf("  failed:    %d\n", s.Failed)
	if len(s.SkippedRows) > 0 {
		fmt.Printf("  rows skipped before grouping: %d\n", len(s.SkippedRows))
	}
	fmt.Printf("  log: %s\n", logPath)
}

func buildLogger(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}
