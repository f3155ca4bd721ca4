package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// TransactionFilter narrows ListTransactions. Zero values mean "no filter".
type TransactionFilter struct {
	Kind       core.Kind
	CategoryID int64
	From       core.Date
	To         core.Date
	Page       int
	Limit      int
}

// CreateUser inserts a user record and returns its id.
func (r *SQLiteRepository) CreateUser(ctx context.Context, email, displayName string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, display_name) VALUES (?, ?)`, email, displayName)
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user insert id: %w", err)
	}
	return id, nil
}

// GetUser returns the delivery identity for alert emails.
func (r *SQLiteRepository) GetUser(ctx context.Context, id int64) (core.User, error) {
	var u core.User
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, display_name FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Email, &u.DisplayName)
	if errors.Is(err, sql.ErrNoRows) {
		return core.User{}, core.ErrNotFound
	}
	if err != nil {
		return core.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (user_id, category_id, kind, amount, description, tx_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.UserID, t.CategoryID, string(t.Kind), t.Amount.Units, t.Description,
		t.Date.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("create transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction insert id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"user_id", t.UserID,
		"kind", t.Kind,
		"amount", t.Amount.Units,
		"date", t.Date.Format(dateLayout))

	return id, nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, userID, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, category_id, kind, amount, description, tx_date, created_at
		 FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	return scanTransaction(row)
}

func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ?, kind = ?, amount = ?, description = ?, tx_date = ?
		 WHERE id = ? AND user_id = ?`,
		t.CategoryID, string(t.Kind), t.Amount.Units, t.Description,
		t.Date.Format(dateLayout), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update transaction rows: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

// ListTransactions returns a filtered, paginated page of a user's
// transactions, most recent date first.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID int64, f TransactionFilter) ([]core.Transaction, error) {
	var (
		conds = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if f.Kind != "" {
		conds = append(conds, "kind = ?")
		args = append(args, string(f.Kind))
	}
	if f.CategoryID > 0 {
		conds = append(conds, "category_id = ?")
		args = append(args, f.CategoryID)
	}
	if !f.From.IsZero() {
		conds = append(conds, "tx_date >= ?")
		args = append(args, f.From.Format(dateLayout))
	}
	if !f.To.IsZero() {
		conds = append(conds, "tx_date <= ?")
		args = append(args, f.To.Format(dateLayout))
	}

	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset := 0
	if f.Page > 1 {
		offset = (f.Page - 1) * limit
	}
	args = append(args, limit, offset)

	query := `SELECT id, user_id, category_id, kind, amount, description, tx_date, created_at
		 FROM transactions WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY tx_date DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions rows: %w", err)
	}
	return out, nil
}

// LastTransaction returns the most recent transaction by calendar date,
// or nil when the user has none.
func (r *SQLiteRepository) LastTransaction(ctx context.Context, userID int64) (*core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, category_id, kind, amount, description, tx_date, created_at
		 FROM transactions WHERE user_id = ?
		 ORDER BY tx_date DESC, id DESC LIMIT 1`, userID)
	t, err := scanTransaction(row)
	if errors.Is(err, core.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ActiveUserIDs lists users with at least one transaction on or after the
// given date, oldest user first, capped at limit. The periodic alert sweep
// uses this as a safety net for lost queue messages.
func (r *SQLiteRepository) ActiveUserIDs(ctx context.Context, since core.Date, limit int) ([]int64, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM transactions
		 WHERE tx_date >= ? ORDER BY user_id LIMIT ?`,
		since.Format(dateLayout), limit)
	if err != nil {
		return nil, fmt.Errorf("active user ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan user id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MonthTotals sums a user's income and expense and counts rows within the
// inclusive [from, to] date range.
func (r *SQLiteRepository) MonthTotals(ctx context.Context, userID int64, from, to core.Date) (income, expense int64, count int, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN kind = 'income' THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount ELSE 0 END), 0),
			COUNT(*)
		 FROM transactions
		 WHERE user_id = ? AND tx_date >= ? AND tx_date <= ?`,
		userID, from.Format(dateLayout), to.Format(dateLayout)).
		Scan(&income, &expense, &count)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("month totals: %w", err)
	}
	return income, expense, count, nil
}

// CategoryBreakdown groups a user's transactions of one kind by category
// within the inclusive date range, largest total first.
func (r *SQLiteRepository) CategoryBreakdown(ctx context.Context, userID int64, kind core.Kind, from, to core.Date) ([]core.BreakdownEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.name, c.color, COALESCE(SUM(t.amount), 0), COUNT(t.id)
		 FROM transactions t
		 JOIN categories c ON c.id = t.category_id
		 WHERE t.user_id = ? AND t.kind = ? AND t.tx_date >= ? AND t.tx_date <= ?
		 GROUP BY c.id
		 ORDER BY SUM(t.amount) DESC`,
		userID, string(kind), from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("category breakdown: %w", err)
	}
	defer rows.Close()

	entries := []core.BreakdownEntry{}
	for rows.Next() {
		var e core.BreakdownEntry
		if err := rows.Scan(&e.CategoryName, &e.Color, &e.TotalAmount.Units, &e.TransactionCount); err != nil {
			return nil, fmt.Errorf("scan breakdown row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("breakdown rows: %w", err)
	}
	return entries, nil
}

// MonthlyTrend returns one row per (month, kind) pair that has at least one
// transaction in the given year. Months without activity are absent.
func (r *SQLiteRepository) MonthlyTrend(ctx context.Context, userID int64, year int) ([]core.TrendEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT CAST(strftime('%m', tx_date) AS INTEGER), kind, SUM(amount), COUNT(*)
		 FROM transactions
		 WHERE user_id = ? AND strftime('%Y', tx_date) = ?
		 GROUP BY strftime('%m', tx_date), kind
		 ORDER BY strftime('%m', tx_date), kind`,
		userID, fmt.Sprintf("%04d", year))
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	defer rows.Close()

	entries := []core.TrendEntry{}
	for rows.Next() {
		var (
			e    core.TrendEntry
			kind string
		)
		if err := rows.Scan(&e.Month, &kind, &e.TotalAmount.Units, &e.TransactionCount); err != nil {
			return nil, fmt.Errorf("scan trend row: %w", err)
		}
		e.Kind = core.Kind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("trend rows: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRepository) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (user_id, name, color, kind) VALUES (?, ?, ?, ?)`,
		c.UserID, c.Name, c.Color, string(c.Kind))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return 0, core.ErrDuplicateCategory
		}
		return 0, fmt.Errorf("create category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category insert id: %w", err)
	}
	return id, nil
}

func (r *SQLiteRepository) GetCategory(ctx context.Context, userID, id int64) (core.Category, error) {
	var c core.Category
	var kind string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, color, kind FROM categories WHERE id = ? AND user_id = ?`,
		id, userID).Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &kind)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category: %w", err)
	}
	c.Kind = core.Kind(kind)
	return c, nil
}

func (r *SQLiteRepository) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, color, kind FROM categories
		 WHERE user_id = ? ORDER BY name COLLATE NOCASE`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		var c core.Category
		var kind string
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &kind); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Kind = core.Kind(kind)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("category rows: %w", err)
	}
	return out, nil
}

// DeleteCategory removes a category unless transactions still reference it.
func (r *SQLiteRepository) DeleteCategory(ctx context.Context, userID, id int64) error {
	var refs int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id = ? AND user_id = ?`,
		id, userID).Scan(&refs)
	if err != nil {
		return fmt.Errorf("count category references: %w", err)
	}
	if refs > 0 {
		return core.ErrCategoryInUse
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete category rows: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanTransaction coerces a database row into a typed transaction once, at
// the storage boundary. A malformed stored date yields a zero Date rather
// than an error so export paths can substitute their placeholder.
func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		kind    string
		dateStr string
		created time.Time
	)
	err := row.Scan(&t.ID, &t.UserID, &t.CategoryID, &kind, &t.Amount.Units,
		&t.Description, &dateStr, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	t.Kind = core.Kind(kind)
	t.CreatedAt = created
	if d, perr := time.Parse(dateLayout, dateStr); perr == nil {
		t.Date = core.Date{Time: d}
	}
	return t, nil
}
