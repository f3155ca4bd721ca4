package http

import (
	"net/http"
	"strings"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
)

type statisticsResponse struct {
	Year             int   `json:"year"`
	Month            int   `json:"month"`
	TotalIncome      int64 `json:"total_income"`
	TotalExpense     int64 `json:"total_expense"`
	Balance          int64 `json:"balance"`
	TransactionCount int   `json:"transaction_count"`
}

type breakdownEntryResponse struct {
	CategoryName     string  `json:"category_name"`
	Color            string  `json:"color"`
	TotalAmount      int64   `json:"total_amount"`
	TransactionCount int     `json:"transaction_count"`
	Percentage       float64 `json:"percentage"`
}

type trendEntryResponse struct {
	Month            int       `json:"month"`
	Kind             core.Kind `json:"kind"`
	TotalAmount      int64     `json:"total_amount"`
	TransactionCount int       `json:"transaction_count"`
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	year, month, err := parseYearMonth(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	stats, err := s.stats.MonthlyStatistics(r.Context(), user, year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statisticsResponse{
		Year:             year,
		Month:            month,
		TotalIncome:      stats.TotalIncome.Units,
		TotalExpense:     stats.TotalExpense.Units,
		Balance:          stats.Balance.Units,
		TransactionCount: stats.TransactionCount,
	})
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	kind := core.Kind(strings.TrimSpace(r.URL.Query().Get("kind")))
	from, to, err := parseDateRange(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	entries, err := s.stats.Breakdown(r.Context(), user, kind, from, to)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]breakdownEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, breakdownEntryResponse{
			CategoryName:     e.CategoryName,
			Color:            e.Color,
			TotalAmount:      e.TotalAmount.Units,
			TransactionCount: e.TransactionCount,
			Percentage:       e.Percentage,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"breakdown": out})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	year, err := parseYear(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	entries, err := s.stats.Trend(r.Context(), user, year)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]trendEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, trendEntryResponse{
			Month:            e.Month,
			Kind:             e.Kind,
			TotalAmount:      e.TotalAmount.Units,
			TransactionCount: e.TransactionCount,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"year": year, "trend": out})
}

// handleChart renders a dashboard chart as PNG. type=breakdown (the
// default) draws the category pie for a date range; type=trend draws the
// yearly income/expense bars.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var png []byte
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))) {
	case "", "breakdown":
		png, err = s.breakdownChart(r, user)
	case "trend":
		png, err = s.trendChart(r, user)
	default:
		writeError(w, http.StatusBadRequest, "unknown chart type")
		return
	}
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if png == nil {
		writeError(w, http.StatusNotFound, "no data to chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (s *Server) breakdownChart(r *http.Request, user int64) ([]byte, error) {
	kind := core.Kind(strings.TrimSpace(r.URL.Query().Get("kind")))
	from, to, err := parseDateRange(r)
	if err != nil {
		return nil, err
	}
	entries, err := s.stats.Breakdown(r.Context(), user, kind, from, to)
	if err != nil {
		return nil, err
	}
	return s.charts.BreakdownPie(entries)
}

func (s *Server) trendChart(r *http.Request, user int64) ([]byte, error) {
	year, err := parseYear(r)
	if err != nil {
		return nil, err
	}
	entries, err := s.stats.Trend(r.Context(), user, year)
	if err != nil {
		return nil, err
	}
	return s.charts.TrendBars(entries)
}
