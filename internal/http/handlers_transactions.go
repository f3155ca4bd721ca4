package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/storage"
)

// amountValue accepts an amount as a bare JSON number or as a grouped
// string ("2,000" / "12 500"), both meaning whole francs.
type amountValue struct {
	Units int64
}

func (a *amountValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return core.ErrInvalidAmount
		}
		units, err := core.ParseAmount(str)
		if err != nil {
			return err
		}
		a.Units = units
		return nil
	}
	units, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return core.ErrInvalidAmount
	}
	a.Units = units
	return nil
}

type transactionRequest struct {
	CategoryID  int64       `json:"category_id"`
	Kind        core.Kind   `json:"kind"`
	Amount      amountValue `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

type transactionResponse struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"category_id"`
	Kind        core.Kind `json:"kind"`
	Amount      int64     `json:"amount"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Kind:        t.Kind,
		Amount:      t.Amount.Units,
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
		CreatedAt:   t.CreatedAt,
	}
}

func (s *Server) decodeTransaction(r *http.Request, user int64) (core.Transaction, error) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return core.Transaction{}, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	return core.Transaction{
		UserID:      user,
		CategoryID:  req.CategoryID,
		Kind:        req.Kind,
		Amount:      core.Money{Units: req.Amount.Units},
		Description: sanitizeInput(req.Description),
		Date:        date,
	}, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	t, err := s.decodeTransaction(r, user)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.tracker.CreateTransaction(r.Context(), t)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	t.ID = id
	writeJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	t, err := s.tracker.GetTransaction(r.Context(), user, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	t, err := s.decodeTransaction(r, user)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t.ID = id

	if err := s.tracker.UpdateTransaction(r.Context(), t); err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := s.tracker.DeleteTransaction(r.Context(), user, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	user, err := userID(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	q := r.URL.Query()
	filter := storage.TransactionFilter{
		Kind: core.Kind(strings.TrimSpace(q.Get("kind"))),
	}
	if v := q.Get("category_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CategoryID = id
		}
	}
	if v := q.Get("from"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		filter.From = d
	}
	if v := q.Get("to"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		filter.To = d
	}
	if v := q.Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			filter.Page = p
		}
	}
	if v := q.Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			filter.Limit = l
		}
	}

	items, err := s.tracker.ListTransactions(r.Context(), user, filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(items))
	for _, t := range items {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"transactions": out,
		"count":        len(out),
	})
}
