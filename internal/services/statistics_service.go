package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/format"
)

// StatsStore is the slice of storage the statistics service needs.
type StatsStore interface {
	MonthTotals(ctx context.Context, userID int64, from, to core.Date) (income, expense int64, count int, err error)
	CategoryBreakdown(ctx context.Context, userID int64, kind core.Kind, from, to core.Date) ([]core.BreakdownEntry, error)
	MonthlyTrend(ctx context.Context, userID int64, year int) ([]core.TrendEntry, error)
}

// StatisticsService computes per-request aggregates over the transaction set.
type StatisticsService struct {
	store StatsStore
}

func NewStatisticsService(store StatsStore) *StatisticsService {
	return &StatisticsService{store: store}
}

// MonthlyStatistics sums one calendar month for one user.
//
// A query failure is degraded to a zero-valued result: callers always get a
// usable summary and the failure is logged. This mirrors the behavior the
// dashboard has always had; whether "query failed" should instead propagate
// is an open question recorded in DESIGN.md.
func (s *StatisticsService) MonthlyStatistics(ctx context.Context, userID int64, year, month int) (core.MonthlyStatistics, error) {
	if err := core.ValidateMonth(month); err != nil {
		return core.MonthlyStatistics{}, err
	}

	from, to := core.MonthRange(year, month)
	income, expense, count, err := s.store.MonthTotals(ctx, userID, from, to)
	if err != nil {
		slog.ErrorContext(ctx, "Month totals query failed, returning zero statistics",
			"user_id", userID, "year", year, "month", month, "error", err)
		return core.MonthlyStatistics{}, nil
	}

	return core.MonthlyStatistics{
		TotalIncome:      core.Money{Units: income},
		TotalExpense:     core.Money{Units: expense},
		Balance:          core.Money{Units: income - expense},
		TransactionCount: count,
	}, nil
}

// Breakdown groups one kind's transactions by category over an inclusive
// date range and annotates each entry with its rounded percentage share.
func (s *StatisticsService) Breakdown(ctx context.Context, userID int64, kind core.Kind, from, to core.Date) ([]core.BreakdownEntry, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := core.ValidateDateRange(from, to); err != nil {
		return nil, err
	}

	entries, err := s.store.CategoryBreakdown(ctx, userID, kind, from, to)
	if err != nil {
		return nil, fmt.Errorf("category breakdown (user=%d, kind=%s): %w", userID, kind, err)
	}

	var total int64
	for _, e := range entries {
		total += e.TotalAmount.Units
	}
	for i := range entries {
		entries[i].Percentage = format.Percentage(entries[i].TotalAmount.Units, total)
	}

	return entries, nil
}

// Trend returns the sparse per-(month, kind) aggregation for a calendar
// year. Months without transactions of a kind are absent; callers must
// handle the gaps.
func (s *StatisticsService) Trend(ctx context.Context, userID int64, year int) ([]core.TrendEntry, error) {
	if year < 1 {
		return nil, core.ErrInvalidDateRange
	}
	entries, err := s.store.MonthlyTrend(ctx, userID, year)
	if err != nil {
		return nil, fmt.Errorf("monthly trend (user=%d, year=%d): %w", userID, year, err)
	}
	return entries, nil
}
