package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
	Both    Kind = "both" // hybrid category kind, accepts either transaction kind
)

type (
	// Kind classifies a transaction or category as income or expense.
	Kind string

	Date struct {
		time.Time
	}

	// Money is an amount in whole XOF francs. FCFA has no minor unit,
	// so all arithmetic stays in exact int64.
	Money struct {
		Units int64
	}

	Transaction struct {
		ID          int64
		UserID      int64
		CategoryID  int64
		Kind        Kind
		Amount      Money
		Description string
		Date        Date
		CreatedAt   time.Time
	}

	Category struct {
		ID     int64
		UserID int64
		Name   string
		Color  string
		Kind   Kind
	}

	User struct {
		ID          int64
		Email       string
		DisplayName string
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidKind      = errors.New("invalid kind")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrEmptyName        = errors.New("empty category name")
	ErrLongDescription  = errors.New("description too long (max 200 characters)")
	ErrLongName         = errors.New("category name too long (max 100 characters)")
	ErrMissingCategory  = errors.New("missing category")

	// Business-rule errors, kept distinct from validation errors so the
	// HTTP layer can map them to a different status.
	ErrNotFound          = errors.New("not found")
	ErrCategoryInUse     = errors.New("category has transactions and cannot be deleted")
	ErrDuplicateCategory = errors.New("category name already exists")
	ErrKindMismatch      = errors.New("transaction kind does not match category kind")
)

// NewDate creates a calendar date at UTC midnight.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// ValidateCategoryKind allows the hybrid kind in addition to income/expense.
func (k Kind) ValidateCategoryKind() error {
	switch k {
	case Income, Expense, Both:
		return nil
	default:
		return ErrInvalidKind
	}
}

// Accepts reports whether a category of kind k can own a transaction of kind tk.
func (k Kind) Accepts(tk Kind) bool {
	return k == Both || k == tk
}

func (m Money) Validate() error {
	if m.Units <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if len(t.Description) > 200 {
		return ErrLongDescription
	}
	if t.CategoryID <= 0 {
		return ErrMissingCategory
	}
	return nil
}

func (c Category) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return ErrLongName
	}
	if err := c.Kind.ValidateCategoryKind(); err != nil {
		return err
	}
	return nil
}

// ValidateMonth checks a 1-12 month number.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	return nil
}

// ValidateDateRange checks that both ends are set and from does not follow to.
func ValidateDateRange(from, to Date) error {
	if from.IsZero() || to.IsZero() {
		return ErrInvalidDateRange
	}
	if from.After(to.Time) {
		return ErrInvalidDateRange
	}
	return nil
}

// MonthRange returns the inclusive first and last calendar day of (year, month).
func MonthRange(year, month int) (Date, Date) {
	first := NewDate(year, month, 1)
	last := Date{Time: first.AddDate(0, 1, -1)}
	return first, last
}
