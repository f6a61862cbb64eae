package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"outlay/internal/amqp"
	"outlay/internal/config"
	"outlay/internal/core"
	"outlay/internal/log"
	"outlay/internal/services"
	"outlay/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting report-scheduler")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	reports := services.NewReportService(repo, repo, repo, cfg.ReportMaxConcurrent)
	schedLogger := logger.WithComponent(log.ComponentScheduler)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Report scheduler configured",
		"interval", cfg.ScheduleInterval,
		"sqlite_db", cfg.SQLiteDBPath)

	runBatch := func(window string, start, end core.Date) {
		batch, err := reports.GenerateReportsForAllUsers(ctx, start, end)
		if err != nil {
			schedLogger.Error("Report batch failed", log.FieldWindow, window, log.FieldError, err)
			return
		}

		queued := 0
		for _, report := range batch.Reports {
			job := amqp.NewReportDelivery(report, window)
			if err := amqpClient.PublishReportDelivery(ctx, job); err != nil {
				schedLogger.Error("Failed to queue report delivery",
					log.FieldUserEmail, report.OwnerEmail, log.FieldError, err)
				continue
			}
			queued++
		}

		schedLogger.Info("Report batch complete",
			log.FieldWindow, window,
			log.FieldReports, len(batch.Reports),
			"queued", queued,
			log.FieldFailures, len(batch.Failures))
	}

	// Daily tick: the monthly batch fires on the first of the month, the
	// weekly batch every Monday.
	ticker := time.NewTicker(cfg.ScheduleInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if now.Day() == 1 {
					start, end := core.MonthlyWindow(now)
					runBatch("monthly", start, end)
				}
				if now.Weekday() == time.Monday {
					start, end := core.WeeklyWindow(now)
					runBatch("weekly", start, end)
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down report-scheduler...")
	cancel()
	logger.Info("Report-scheduler shutdown complete")
}
