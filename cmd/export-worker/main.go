// export-worker consumes expense events from RabbitMQ and exports the
// referenced expenses to the configured backend.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"expensemanager/internal/amqp"
	"expensemanager/internal/cli"
	"expensemanager/internal/log"
	"expensemanager/internal/sheets"
	"expensemanager/internal/sheets/google"
	"expensemanager/internal/sheets/memory"
	"expensemanager/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)
	logger.Info("Starting export-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var writer sheets.ExpenseWriter
	switch cfg.ExportBackend {
	case "sheets":
		client, err := google.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	default:
		writer = memory.New()
		logger.Info("In-memory export backend in use", "backend", cfg.ExportBackend)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(repo, repo, writer, logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			err := amqpClient.ConsumeExpenseEvents(ctx, func(msg *amqp.ExpenseEventMessage) error {
				return exportWorker.HandleEvent(ctx, msg)
			})
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Error("Event consumption interrupted, retrying",
				log.FieldError, err, "retry_in", cfg.ExportInterval)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.ExportInterval):
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Export worker stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Export worker shut down")
}
