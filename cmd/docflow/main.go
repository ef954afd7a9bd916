package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/procmine/docflow/internal/adapter/delimited"
	"github.com/procmine/docflow/internal/adapter/eventlog"
	"github.com/procmine/docflow/internal/adapter/tableset"
	"github.com/procmine/docflow/internal/config"
	"github.com/procmine/docflow/internal/db"
	"github.com/procmine/docflow/internal/domain"
	"github.com/procmine/docflow/internal/export"
	"github.com/procmine/docflow/internal/repository"
	"github.com/procmine/docflow/internal/tabular"
)

func main() {
	configPath := flag.String("config", ".", "directory containing config.yaml")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(*configPath, logger); err != nil {
		logger.Fatal("run failed", zap.Error(err))
	}
}

func run(configPath string, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := tabular.Options{Encoding: cfg.Encoding}
	if cfg.Delimiter != "" {
		opts.Delimiter = []rune(cfg.Delimiter)[0]
	}

	ds, err := load(cfg, opts, logger)
	if err != nil {
		return err
	}

	writer := writerFor(cfg, logger)
	outDir, err := writer.Write(ds)
	if err != nil {
		return fmt.Errorf("failed to export dataset: %w", err)
	}
	logger.Info("run complete",
		zap.String("run_id", ds.RunID.String()),
		zap.String("output", outDir))

	if !cfg.Persist {
		return nil
	}

	conn, err := db.NewConnection(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn.Pool, cfg.MigrationsPath, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := repository.NewDatasetRepository(conn).SaveDataset(ctx, ds); err != nil {
		return fmt.Errorf("failed to persist dataset: %w", err)
	}
	logger.Info("dataset persisted", zap.String("run_id", ds.RunID.String()))
	return nil
}

func load(cfg config.Config, opts tabular.Options, logger *zap.Logger) (*domain.Dataset, error) {
	switch cfg.Source {
	case config.SourceDelimited:
		result, err := delimited.NewLoader(opts, cfg.Seed, logger).LoadDirectory(cfg.InputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load delimited batch: %w", err)
		}
		return &result.Dataset, nil
	case config.SourceTableSet:
		result, err := tableset.NewLoader(opts, cfg.Seed, logger).LoadDirectory(cfg.InputDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load table set: %w", err)
		}
		return &result.Dataset, nil
	case config.SourceEventLog:
		loader := eventlog.NewLoader(opts, logger,
			eventlog.WithMaxRows(cfg.MaxRows),
			eventlog.WithTopVariants(cfg.TopVariants))
		result, err := loader.Load(cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load activity log: %w", err)
		}
		return &result.Dataset, nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source)
	}
}

func writerFor(cfg config.Config, logger *zap.Logger) *export.Writer {
	var opts []export.Option
	if cfg.Indent {
		opts = append(opts, export.WithIndent())
	}
	if cfg.Collections {
		opts = append(opts, export.WithCollections())
	}
	return export.NewWriter(cfg.OutputDir, logger, opts...)
}
