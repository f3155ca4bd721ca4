package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/amqp"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/config"
	apphttp "github.com/M66TECH/MoneyWise-Project-sub000/internal/http"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/log"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/mail"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/services"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := log.New(log.DefaultConfig()).WithComponent("api")
	log.SetDefault(logger)

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

	// AMQP is optional: without it, transaction writes skip the async alert
	// check and the API keeps working.
	var publisher services.AlertPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, alert checks will not be queued", "error", err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	var mailer services.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
		logger.Info("SMTP mailer initialized", "host", cfg.SMTPHost)
	} else {
		logger.Info("SMTP disabled - no SMTP_HOST provided")
	}

	tracker := services.NewTrackerService(repo, publisher)
	stats := services.NewStatisticsService(repo)
	alerts := services.NewAlertService(stats, repo, mailer)

	srv := apphttp.NewServer(":"+cfg.Port, tracker, stats, alerts)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting moneywise server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
