package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
)

var (
	errMissingUser = errors.New("missing or invalid X-User-ID header")
	errInvalidYear = errors.New("invalid year")
)

// userID extracts the verified user identity the auth proxy forwards.
func userID(r *http.Request) (int64, error) {
	v := strings.TrimSpace(r.Header.Get("X-User-ID"))
	if v == "" {
		return 0, errMissingUser
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, errMissingUser
	}
	return id, nil
}

// parseYearMonth extracts year and month query parameters, defaulting to
// the current month. A parameter that is present but not numeric is
// rejected rather than defaulted.
func parseYearMonth(r *http.Request) (year, month int, err error) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, errInvalidYear
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, core.ErrInvalidMonth
		}
	}
	return year, month, nil
}

// parseYear reads an optional year query parameter, defaulting to the
// current year.
func parseYear(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("year"))
	if v == "" {
		return time.Now().Year(), nil
	}
	y, err := strconv.Atoi(v)
	if err != nil {
		return 0, errInvalidYear
	}
	return y, nil
}

// parseDate parses a YYYY-MM-DD query value.
func parseDate(v string) (core.Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(v))
	if err != nil {
		return core.Date{}, core.ErrInvalidDate
	}
	return core.Date{Time: t}, nil
}

// parseDateRange reads required from/to query parameters.
func parseDateRange(r *http.Request) (core.Date, core.Date, error) {
	from, err := parseDate(r.URL.Query().Get("from"))
	if err != nil {
		return core.Date{}, core.Date{}, core.ErrInvalidDateRange
	}
	to, err := parseDate(r.URL.Query().Get("to"))
	if err != nil {
		return core.Date{}, core.Date{}, core.ErrInvalidDateRange
	}
	if err := core.ValidateDateRange(from, to); err != nil {
		return core.Date{}, core.Date{}, err
	}
	return from, to, nil
}

// pathID parses the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.ErrNotFound
	}
	return id, nil
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
