// Package worker runs alert evaluation off the request path.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/amqp"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/services"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/storage"
)

// AlertWorker evaluates alert rules for users, either on demand from queue
// messages or on a periodic sweep.
type AlertWorker struct {
	storage   *storage.SQLiteRepository
	alerts    *services.AlertService
	batchSize int
}

func NewAlertWorker(storage *storage.SQLiteRepository, alerts *services.AlertService, batchSize int) *AlertWorker {
	return &AlertWorker{
		storage:   storage,
		alerts:    alerts,
		batchSize: batchSize,
	}
}

// HandleAlertCheck processes a single alert check message. Email delivery is
// always attempted here; failures degrade inside Evaluate.
func (w *AlertWorker) HandleAlertCheck(ctx context.Context, msg *amqp.AlertCheckMessage) error {
	result, err := w.alerts.Evaluate(ctx, msg.UserID, true)
	if err != nil {
		return fmt.Errorf("evaluate alerts for user %d: %w", msg.UserID, err)
	}

	slog.InfoContext(ctx, "Alert check completed",
		"user_id", msg.UserID,
		"alert_count", len(result.Alerts),
		"email_sent", result.EmailSent,
		"requested_at", msg.RequestedAt)
	return nil
}

// RunPeriodic sweeps recently active users on the given interval. This is a
// backup mechanism in case queue messages are lost.
func (w *AlertWorker) RunPeriodic(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *AlertWorker) sweep(ctx context.Context) {
	// Only users active this month can fire rules 1 and 2 anyway.
	now := time.Now()
	monthStart := core.NewDate(now.Year(), int(now.Month()), 1)

	ids, err := w.storage.ActiveUserIDs(ctx, monthStart, w.batchSize)
	if err != nil {
		slog.ErrorContext(ctx, "Periodic sweep failed to list active users", "error", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	slog.InfoContext(ctx, "Running periodic alert sweep", "user_count", len(ids))

	for _, id := range ids {
		if ctx.Err() != nil {
			return
		}
		result, err := w.alerts.Evaluate(ctx, id, true)
		if err != nil {
			slog.ErrorContext(ctx, "Periodic evaluation failed", "user_id", id, "error", err)
			continue
		}
		if len(result.Alerts) > 0 {
			slog.InfoContext(ctx, "Periodic evaluation fired alerts",
				"user_id", id,
				"alert_count", len(result.Alerts),
				"email_sent", result.EmailSent)
		}
	}
}
