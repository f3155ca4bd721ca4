package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/format"
)

const (
	// expenseRatioThreshold fires the warning alert when monthly expenses
	// exceed this share of income.
	expenseRatioThreshold = 0.8

	// inactivityDays fires the info alert when the most recent transaction
	// is older than this many whole days.
	inactivityDays = 7

	millisPerDay = 86_400_000
)

// AlertStore is the slice of storage the alert evaluator needs.
type AlertStore interface {
	LastTransaction(ctx context.Context, userID int64) (*core.Transaction, error)
	GetUser(ctx context.Context, id int64) (core.User, error)
}

// Mailer delivers alert emails. Implementations must be best-effort: a
// returned error is logged and degraded, never propagated to the caller.
type Mailer interface {
	SendAlerts(ctx context.Context, to, displayName string, alerts []core.Alert) error
}

// AlertService evaluates threshold rules against monthly statistics. It is
// an explicit handle passed to callers; it keeps no global state, and the
// clock is injectable so rule 3 is testable.
type AlertService struct {
	stats  *StatisticsService
	store  AlertStore
	mailer Mailer
	now    func() time.Time
}

// EvaluationResult is what one evaluation pass produced.
type EvaluationResult struct {
	Alerts    []core.Alert
	EmailSent bool
}

func NewAlertService(stats *StatisticsService, store AlertStore, mailer Mailer) *AlertService {
	return &AlertService{
		stats:  stats,
		store:  store,
		mailer: mailer,
		now:    time.Now,
	}
}

// Evaluate runs the alert rules for the current month, in fixed order, and
// optionally attempts email delivery when sendEmail is set and at least one
// alert fired. Evaluation always completes before any delivery attempt, and
// a delivery failure surfaces only as EmailSent=false.
//
// A user with no transactions gets an empty alert list, never an error.
func (s *AlertService) Evaluate(ctx context.Context, userID int64, sendEmail bool) (EvaluationResult, error) {
	now := s.now()
	stats, err := s.stats.MonthlyStatistics(ctx, userID, now.Year(), int(now.Month()))
	if err != nil {
		// Only an invalid month can reach here and the clock never
		// produces one, but do not silently continue on a bug.
		return EvaluationResult{}, fmt.Errorf("monthly statistics: %w", err)
	}

	alerts := []core.Alert{}

	// Rule 1: negative balance
	if stats.Balance.Units < 0 {
		alerts = append(alerts, core.Alert{
			Kind:     core.AlertDanger,
			Severity: core.SeverityHigh,
			Message:  "balance is negative: " + format.Amount(stats.Balance),
		})
	}

	// Rule 2: high expense ratio
	if stats.TotalIncome.Units > 0 {
		ratio := float64(stats.TotalExpense.Units) / float64(stats.TotalIncome.Units)
		if ratio > expenseRatioThreshold {
			alerts = append(alerts, core.Alert{
				Kind:     core.AlertWarning,
				Severity: core.SeverityMedium,
				Message:  "expenses exceed 80% of income this month",
			})
		}
	}

	// Rule 3: inactivity, skipped when the user has no transactions at all
	last, err := s.store.LastTransaction(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "Last transaction lookup failed, skipping inactivity rule",
			"user_id", userID, "error", err)
	} else if last != nil {
		if days := daysSince(now, last.Date.Time); days > inactivityDays {
			alerts = append(alerts, core.Alert{
				Kind:     core.AlertInfo,
				Severity: core.SeverityLow,
				Message:  fmt.Sprintf("no transaction in %d days", days),
			})
		}
	}

	result := EvaluationResult{Alerts: alerts}
	if sendEmail && len(alerts) > 0 {
		result.EmailSent = s.deliver(ctx, userID, alerts)
	}
	return result, nil
}

// deliver attempts best-effort email delivery and reports success.
func (s *AlertService) deliver(ctx context.Context, userID int64, alerts []core.Alert) bool {
	if s.mailer == nil {
		slog.WarnContext(ctx, "No mailer configured, skipping alert email", "user_id", userID)
		return false
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "User lookup failed, alert email not sent",
			"user_id", userID, "error", err)
		return false
	}

	if err := s.mailer.SendAlerts(ctx, user.Email, user.DisplayName, alerts); err != nil {
		slog.ErrorContext(ctx, "Alert email delivery failed",
			"user_id", userID, "email", user.Email, "error", err)
		return false
	}

	slog.InfoContext(ctx, "Alert email delivered",
		"user_id", userID, "alert_count", len(alerts))
	return true
}

// daysSince is the whole-day floor of (now - date) measured in
// milliseconds, not a calendar-day difference.
func daysSince(now, date time.Time) int {
	ms := now.Sub(date).Milliseconds()
	if ms < 0 {
		return 0
	}
	return int(ms / millisPerDay)
}
