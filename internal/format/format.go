// Package format centralizes currency, date and text formatting so the
// CSV, JSON and PDF export paths produce identical output.
package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
)

// CurrencySuffix is appended to every rendered amount.
const CurrencySuffix = "FCFA"

// InvalidDate is the sentinel rendered for a zero or unparseable date.
const InvalidDate = "invalid date"

var unsafeChars = regexp.MustCompile(`[^\w\s\-.,!?()"]`)

// Amount renders whole francs with comma thousands grouping and the
// currency suffix: 12500 -> "12,500 FCFA". The sign is preserved.
func Amount(m core.Money) string {
	return groupDigits(m.Units) + " " + CurrencySuffix
}

// SignedAmount renders an amount with the export sign convention:
// expense rows carry a leading minus, income rows do not.
func SignedAmount(m core.Money, kind core.Kind) string {
	if kind == core.Expense {
		return "-" + Amount(m)
	}
	return Amount(m)
}

// Date renders a calendar date as DD-MM-YYYY, or the invalid-date
// sentinel when the date is zero.
func Date(d core.Date) string {
	if d.IsZero() {
		return InvalidDate
	}
	return d.Format("02-01-2006")
}

// SanitizeDescription strips characters outside the safe set (word
// characters, whitespace and -.,!?()"), then truncates to max characters.
// The truncated result is exactly max characters long, with a trailing
// ellipsis when max leaves room for one.
func SanitizeDescription(s string, max int) string {
	s = strings.TrimSpace(unsafeChars.ReplaceAllString(s, ""))
	if max > 0 && len(s) > max {
		if max > 3 {
			return s[:max-3] + "..."
		}
		return s[:max]
	}
	return s
}

// Percentage computes round1(100 * part / total), returning 0 when total
// is zero so callers never divide by zero.
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	p := decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(1)
	f, _ := p.Float64()
	return f
}

func groupDigits(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}
