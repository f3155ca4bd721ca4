package core

// Derived, per-request aggregates. None of these are persisted; they are
// recomputed from the transaction set on every call.

// MonthlyStatistics summarizes one calendar month for one user.
type MonthlyStatistics struct {
	TotalIncome      Money
	TotalExpense     Money
	Balance          Money // income minus expense, may be negative
	TransactionCount int
}

// Alert severity tiers, independent of the alert kind.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// Alert kinds.
const (
	AlertDanger  = "danger"
	AlertWarning = "warning"
	AlertInfo    = "info"
)

// Alert is an ephemeral notification produced by rule evaluation.
type Alert struct {
	Kind     string
	Message  string
	Severity string
}

// BreakdownEntry is one category's share of a date-range aggregation.
type BreakdownEntry struct {
	CategoryName     string
	Color            string
	TotalAmount      Money
	TransactionCount int
	Percentage       float64
}

// TrendEntry is one (month, kind) cell of a yearly trend. Months with no
// transactions of a kind are simply absent.
type TrendEntry struct {
	Month            int
	Kind             Kind
	TotalAmount      Money
	TransactionCount int
}
