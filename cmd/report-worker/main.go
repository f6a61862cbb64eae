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
	"outlay/internal/log"
	"outlay/internal/mail"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	logger.Info("Starting report-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	mailer := mail.NewMailer(cfg.SMTPAddr, cfg.SMTPFrom)
	mailLogger := logger.WithComponent(log.ComponentMail)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		// A failed send is logged and counted, never requeued: a broken
		// mailbox must not wedge the queue for everyone else.
		err := amqpClient.ConsumeReportDeliveries(ctx, func(job *amqp.ReportDelivery) error {
			if err := mailer.SendReport(job); err != nil {
				mailLogger.Error("Report delivery failed",
					log.FieldUserEmail, job.OwnerEmail,
					log.FieldWindow, job.Window,
					log.FieldError, err)
				return nil
			}
			mailLogger.Info("Report delivered",
				log.FieldUserEmail, job.OwnerEmail,
				log.FieldWindow, job.Window)
			return nil
		})
		if err != nil && err != context.Canceled {
			logger.Error("Message consumption failed", log.FieldError, err)
		}
		cancel()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down report-worker...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	select {
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown timeout reached")
	case <-time.After(2 * time.Second):
		logger.Info("Report-worker shutdown complete")
	}
}
