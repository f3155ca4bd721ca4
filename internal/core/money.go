// Package core holds the MoneyWise domain types and their validation rules.
//
// This file contains parsing of monetary amounts from user input. Amounts
// are whole FCFA francs; fractional input is rejected rather than rounded.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts a user-supplied amount string to whole francs.
//
// It accepts plain digits with optional comma or space thousands grouping
// ("2000", "2,000", "12 500"). The result is always positive. Returns an
// error for empty, signed, fractional or non-numeric input.
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only positive values allowed; kind carries the sign.
		return 0, ErrInvalidAmount
	}
	if strings.ContainsAny(s, ".") {
		// FCFA has no minor unit
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
