package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/report"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeDomainError maps the error taxonomy onto HTTP statuses: validation
// 400, not found 404, business rule 409, everything else 500.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case isBusinessError(err):
		writeError(w, http.StatusConflict, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func isValidationError(err error) bool {
	for _, target := range []error{
		core.ErrInvalidAmount,
		core.ErrInvalidKind,
		core.ErrInvalidDate,
		core.ErrInvalidMonth,
		core.ErrInvalidDateRange,
		core.ErrEmptyName,
		core.ErrLongDescription,
		core.ErrLongName,
		core.ErrMissingCategory,
		report.ErrUnsupportedFormat,
		errInvalidYear,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		core.ErrCategoryInUse,
		core.ErrDuplicateCategory,
		core.ErrKindMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
