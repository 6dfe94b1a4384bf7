package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"budgetboard/internal/amqp"
	"budgetboard/internal/cli"
	"budgetboard/internal/log"
	gsheet "budgetboard/internal/sheets/google"
	"budgetboard/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if err := cfg.ValidateSheets(); err != nil {
		logger.Error("Sheets configuration invalid", log.FieldError, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := cli.InitBackend(ctx, logger, cfg)
	defer func() {
		if result.Cleanup == nil {
			return
		}
		if err := result.Cleanup(); err != nil {
			logger.Error("Record store cleanup failed", log.FieldError, err)
		}
	}()

	sheetsClient, err := gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		OAuthClientFile: cfg.GoogleOAuthClientFile,
		OAuthTokenFile:  cfg.GoogleOAuthTokenFile,
		OAuthClientJSON: cfg.GoogleOAuthClientJSON,
		OAuthTokenJSON:  cfg.GoogleOAuthTokenJSON,
	})
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(result.Store, sheetsClient)

	if err := exportWorker.StartupExport(ctx); err != nil {
		// A cold spreadsheet is not fatal, the consumers below catch up.
		logger.Error("Startup export failed", log.FieldError, err)
	}

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return amqpClient.ConsumeExports(gctx, func(msg *amqp.ExportMessage) error {
			return exportWorker.HandleExportMessage(gctx, msg)
		})
	})
	group.Go(func() error {
		return exportWorker.RunPeriodicExport(gctx, cfg.ExportInterval)
	})

	logger.Info("Worker started",
		"queue", cfg.AMQPQueue, "export_interval", cfg.ExportInterval.String())

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
