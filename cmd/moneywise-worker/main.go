package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/amqp"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/config"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/log"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/mail"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/services"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/storage"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent("worker")
	log.SetDefault(logger)

	logger.Info("Starting moneywise-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	var mailer services.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
		logger.Info("SMTP mailer initialized", "host", cfg.SMTPHost)
	} else {
		logger.Info("SMTP disabled - alerts will be evaluated but not emailed")
	}

	stats := services.NewStatisticsService(repo)
	alerts := services.NewAlertService(stats, repo, mailer)
	alertWorker := worker.NewAlertWorker(repo, alerts, cfg.AlertBatchSize)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeAlertChecks(ctx, alertWorker.HandleAlertCheck)
	})
	g.Go(func() error {
		// safety net for lost queue messages
		return alertWorker.RunPeriodic(ctx, cfg.AlertInterval)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", "error", err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully")
}
