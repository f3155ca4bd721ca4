package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedUser(t *testing.T, repo *SQLiteRepository) int64 {
	t.Helper()
	id, err := repo.CreateUser(context.Background(), "user@example.com", "Test User")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return id
}

func seedCategory(t *testing.T, repo *SQLiteRepository, userID int64, name string, kind core.Kind) int64 {
	t.Helper()
	id, err := repo.CreateCategory(context.Background(), core.Category{
		UserID: userID,
		Name:   name,
		Color:  "#336699",
		Kind:   kind,
	})
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return id
}

func seedTransaction(t *testing.T, repo *SQLiteRepository, userID, catID int64, kind core.Kind, amount int64, date core.Date) int64 {
	t.Helper()
	id, err := repo.CreateTransaction(context.Background(), core.Transaction{
		UserID:     userID,
		CategoryID: catID,
		Kind:       kind,
		Amount:     core.Money{Units: amount},
		Date:       date,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	return id
}

func TestMonthTotals(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo)
	salary := seedCategory(t, repo, user, "Salary", core.Income)
	rent := seedCategory(t, repo, user, "Rent", core.Expense)

	seedTransaction(t, repo, user, salary, core.Income, 2000, core.NewDate(2024, 1, 5))
	seedTransaction(t, repo, user, rent, core.Expense, 500, core.NewDate(2024, 1, 10))
	// Outside the month, must not count
	seedTransaction(t, repo, user, rent, core.Expense, 999, core.NewDate(2024, 2, 1))

	from, to := core.MonthRange(2024, 1)
	income, expense, count, err := repo.MonthTotals(ctx, user, from, to)
	if err != nil {
		t.Fatalf("month totals: %v", err)
	}
	if income != 2000 || expense != 500 || count != 2 {
		t.Fatalf("got income=%d expense=%d count=%d", income, expense, count)
	}
}

func TestMonthTotalsEmpty(t *testing.T) {
	repo := newTestRepo(t)
	user := seedUser(t, repo)

	from, to := core.MonthRange(2024, 6)
	income, expense, count, err := repo.MonthTotals(context.Background(), user, from, to)
	if err != nil {
		t.Fatalf("month totals: %v", err)
	}
	if income != 0 || expense != 0 || count != 0 {
		t.Fatalf("expected zeros, got income=%d expense=%d count=%d", income, expense, count)
	}
}

func TestCategoryBreakdownOrderAndScope(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo)
	food := seedCategory(t, repo, user, "Food", core.Expense)
	rent := seedCategory(t, repo, user, "Rent", core.Expense)
	salary := seedCategory(t, repo, user, "Salary", core.Income)

	seedTransaction(t, repo, user, food, core.Expense, 300, core.NewDate(2024, 1, 3))
	seedTransaction(t, repo, user, food, core.Expense, 200, core.NewDate(2024, 1, 20))
	seedTransaction(t, repo, user, rent, core.Expense, 1200, core.NewDate(2024, 1, 1))
	seedTransaction(t, repo, user, salary, core.Income, 5000, core.NewDate(2024, 1, 25))

	entries, err := repo.CategoryBreakdown(ctx, user, core.Expense,
		core.NewDate(2024, 1, 1), core.NewDate(2024, 1, 31))
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].CategoryName != "Rent" || entries[0].TotalAmount.Units != 1200 {
		t.Fatalf("first entry = %+v, want Rent/1200", entries[0])
	}
	if entries[1].CategoryName != "Food" || entries[1].TotalAmount.Units != 500 || entries[1].TransactionCount != 2 {
		t.Fatalf("second entry = %+v, want Food/500/2", entries[1])
	}
}

func TestCategoryBreakdownEmptyRange(t *testing.T) {
	repo := newTestRepo(t)
	user := seedUser(t, repo)

	entries, err := repo.CategoryBreakdown(context.Background(), user, core.Expense,
		core.NewDate(2030, 1, 1), core.NewDate(2030, 1, 31))
	if err != nil {
		t.Fatalf("breakdown: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty slice, got %d entries", len(entries))
	}
}

func TestMonthlyTrendSparse(t *testing.T) {
	repo := newTestRepo(t)
	user := seedUser(t, repo)
	salary := seedCategory(t, repo, user, "Salary", core.Income)
	rent := seedCategory(t, repo, user, "Rent", core.Expense)

	seedTransaction(t, repo, user, salary, core.Income, 2000, core.NewDate(2024, 1, 5))
	seedTransaction(t, repo, user, rent, core.Expense, 500, core.NewDate(2024, 1, 10))
	seedTransaction(t, repo, user, rent, core.Expense, 700, core.NewDate(2024, 3, 10))
	// Different year, must be excluded
	seedTransaction(t, repo, user, rent, core.Expense, 999, core.NewDate(2023, 12, 31))

	entries, err := repo.MonthlyTrend(context.Background(), user, 2024)
	if err != nil {
		t.Fatalf("trend: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 sparse entries, got %d: %+v", len(entries), entries)
	}
	// February must be absent entirely
	for _, e := range entries {
		if e.Month == 2 {
			t.Fatalf("month 2 must be absent, got %+v", e)
		}
	}
}

func TestLastTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo)

	last, err := repo.LastTransaction(ctx, user)
	if err != nil {
		t.Fatalf("last transaction: %v", err)
	}
	if last != nil {
		t.Fatalf("expected nil for user with no transactions, got %+v", last)
	}

	cat := seedCategory(t, repo, user, "Misc", core.Both)
	seedTransaction(t, repo, user, cat, core.Expense, 100, core.NewDate(2024, 1, 1))
	wantID := seedTransaction(t, repo, user, cat, core.Expense, 200, core.NewDate(2024, 2, 15))

	last, err = repo.LastTransaction(ctx, user)
	if err != nil {
		t.Fatalf("last transaction: %v", err)
	}
	if last == nil || last.ID != wantID {
		t.Fatalf("got %+v, want id %d", last, wantID)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo)
	cat := seedCategory(t, repo, user, "Rent", core.Expense)
	txID := seedTransaction(t, repo, user, cat, core.Expense, 500, core.NewDate(2024, 1, 1))

	if err := repo.DeleteCategory(ctx, user, cat); !errors.Is(err, core.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := repo.DeleteTransaction(ctx, user, txID); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	if err := repo.DeleteCategory(ctx, user, cat); err != nil {
		t.Fatalf("delete category after freeing: %v", err)
	}
}

func TestDuplicateCategoryName(t *testing.T) {
	repo := newTestRepo(t)
	user := seedUser(t, repo)
	seedCategory(t, repo, user, "Food", core.Expense)

	_, err := repo.CreateCategory(context.Background(), core.Category{
		UserID: user,
		Name:   "fOOd", // case-insensitive uniqueness
		Kind:   core.Expense,
	})
	if !errors.Is(err, core.ErrDuplicateCategory) {
		t.Fatalf("expected ErrDuplicateCategory, got %v", err)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo)
	salary := seedCategory(t, repo, user, "Salary", core.Income)
	rent := seedCategory(t, repo, user, "Rent", core.Expense)

	seedTransaction(t, repo, user, salary, core.Income, 2000, core.NewDate(2024, 1, 5))
	seedTransaction(t, repo, user, rent, core.Expense, 500, core.NewDate(2024, 1, 10))
	seedTransaction(t, repo, user, rent, core.Expense, 700, core.NewDate(2024, 2, 10))

	got, err := repo.ListTransactions(ctx, user, TransactionFilter{Kind: core.Expense})
	if err != nil {
		t.Fatalf("list by kind: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("kind filter: got %d rows", len(got))
	}

	got, err = repo.ListTransactions(ctx, user, TransactionFilter{
		From: core.NewDate(2024, 1, 1),
		To:   core.NewDate(2024, 1, 31),
	})
	if err != nil {
		t.Fatalf("list by range: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("range filter: got %d rows", len(got))
	}

	got, err = repo.ListTransactions(ctx, user, TransactionFilter{Limit: 1, Page: 2})
	if err != nil {
		t.Fatalf("list paginated: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("pagination: got %d rows", len(got))
	}
}

func TestUpdateTransaction(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo)
	cat := seedCategory(t, repo, user, "Misc", core.Both)
	id := seedTransaction(t, repo, user, cat, core.Expense, 100, core.NewDate(2024, 1, 1))

	err := repo.UpdateTransaction(ctx, core.Transaction{
		ID:         id,
		UserID:     user,
		CategoryID: cat,
		Kind:       core.Expense,
		Amount:     core.Money{Units: 250},
		Date:       core.NewDate(2024, 1, 2),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetTransaction(ctx, user, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Units != 250 || got.Date.Day() != 2 {
		t.Fatalf("update not applied: %+v", got)
	}

	err = repo.UpdateTransaction(ctx, core.Transaction{ID: 9999, UserID: user, CategoryID: cat, Kind: core.Expense, Amount: core.Money{Units: 1}, Date: core.NewDate(2024, 1, 1)})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestActiveUserIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	user := seedUser(t, repo)
	cat := seedCategory(t, repo, user, "Food", core.Expense)

	other, err := repo.CreateUser(ctx, "other@example.com", "Other User")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	otherCat := seedCategory(t, repo, other, "Food", core.Expense)

	seedTransaction(t, repo, user, cat, core.Expense, 100, core.NewDate(2024, 3, 10))
	// Before the cutoff, must not count
	seedTransaction(t, repo, other, otherCat, core.Expense, 100, core.NewDate(2024, 2, 1))

	ids, err := repo.ActiveUserIDs(ctx, core.NewDate(2024, 3, 1), 100)
	if err != nil {
		t.Fatalf("active user ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != user {
		t.Fatalf("ids = %v, want [%d]", ids, user)
	}

	ids, err = repo.ActiveUserIDs(ctx, core.NewDate(2024, 1, 1), 100)
	if err != nil {
		t.Fatalf("active user ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want both users", ids)
	}
}
