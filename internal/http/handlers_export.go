package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/report"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/storage"
)

// handleExport streams the user's transactions for a date range in the
// requested format.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	from, to, err := parseDateRange(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	format := report.Format(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))))

	items, err := s.tracker.ListTransactions(r.Context(), user, storage.TransactionFilter{
		From: from, To: to, Limit: 500,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	cats, err := s.tracker.ListCategories(r.Context(), user)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	catNames := make(map[int64]string, len(cats))
	for _, c := range cats {
		catNames[c.ID] = c.Name
	}

	records := make([]report.Record, 0, len(items))
	for _, t := range items {
		records = append(records, report.Record{
			ID:          t.ID,
			Date:        t.Date,
			Kind:        t.Kind,
			Amount:      t.Amount,
			Category:    catNames[t.CategoryID],
			Description: t.Description,
			CreatedAt:   t.CreatedAt,
		})
	}

	export, err := s.formatter.Export(records, report.Period{From: from, To: to}, format)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Payload)
}
