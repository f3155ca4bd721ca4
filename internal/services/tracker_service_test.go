package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/storage"
)

type fakePublisher struct {
	calls int
	err   error
}

func (f *fakePublisher) PublishAlertCheck(ctx context.Context, userID int64) error {
	f.calls++
	return f.err
}

func newTracker(t *testing.T, pub AlertPublisher) (*TrackerService, int64, int64) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	user, err := repo.CreateUser(ctx, "user@example.com", "Test User")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	cat, err := repo.CreateCategory(ctx, core.Category{
		UserID: user, Name: "Salary", Color: "#00aa00", Kind: core.Income,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	return NewTrackerService(repo, pub), user, cat
}

func TestCreateTransactionKindMismatch(t *testing.T) {
	svc, user, incomeCat := newTracker(t, nil)

	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:     user,
		CategoryID: incomeCat,
		Kind:       core.Expense, // income category must reject this
		Amount:     core.Money{Units: 100},
		Date:       core.NewDate(2024, 1, 1),
	})
	if !errors.Is(err, core.ErrKindMismatch) {
		t.Fatalf("expected ErrKindMismatch, got %v", err)
	}
}

func TestCreateTransactionPublishesAlertCheck(t *testing.T) {
	pub := &fakePublisher{}
	svc, user, cat := newTracker(t, pub)

	id, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:     user,
		CategoryID: cat,
		Kind:       core.Income,
		Amount:     core.Money{Units: 2000},
		Date:       core.NewDate(2024, 1, 5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id <= 0 {
		t.Fatalf("bad id %d", id)
	}
	if pub.calls != 1 {
		t.Fatalf("publisher calls = %d, want 1", pub.calls)
	}
}

func TestCreateTransactionPublishFailureIgnored(t *testing.T) {
	pub := &fakePublisher{err: errors.New("amqp down")}
	svc, user, cat := newTracker(t, pub)

	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:     user,
		CategoryID: cat,
		Kind:       core.Income,
		Amount:     core.Money{Units: 2000},
		Date:       core.NewDate(2024, 1, 5),
	})
	if err != nil {
		t.Fatalf("publish failure must not fail the write: %v", err)
	}
}

func TestCreateTransactionValidation(t *testing.T) {
	svc, user, cat := newTracker(t, nil)

	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:     user,
		CategoryID: cat,
		Kind:       core.Income,
		Amount:     core.Money{Units: 0}, // invalid
		Date:       core.NewDate(2024, 1, 5),
	})
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateTransactionUnknownCategory(t *testing.T) {
	svc, user, _ := newTracker(t, nil)

	_, err := svc.CreateTransaction(context.Background(), core.Transaction{
		UserID:     user,
		CategoryID: 9999,
		Kind:       core.Income,
		Amount:     core.Money{Units: 100},
		Date:       core.NewDate(2024, 1, 5),
	})
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateTransaction(t *testing.T) {
	pub := &fakePublisher{}
	svc, user, cat := newTracker(t, pub)
	ctx := context.Background()

	id, err := svc.CreateTransaction(ctx, core.Transaction{
		UserID:     user,
		CategoryID: cat,
		Kind:       core.Income,
		Amount:     core.Money{Units: 2000},
		Date:       core.NewDate(2024, 1, 5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	err = svc.UpdateTransaction(ctx, core.Transaction{
		ID:         id,
		UserID:     user,
		CategoryID: cat,
		Kind:       core.Income,
		Amount:     core.Money{Units: 2500},
		Date:       core.NewDate(2024, 1, 6),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if pub.calls != 2 {
		t.Fatalf("publisher calls = %d, want 2 (create + update)", pub.calls)
	}

	got, err := svc.GetTransaction(ctx, user, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Units != 2500 {
		t.Fatalf("amount = %d, want 2500", got.Amount.Units)
	}
}

func TestListTransactionsRejectsBadFilter(t *testing.T) {
	svc, user, _ := newTracker(t, nil)
	ctx := context.Background()

	_, err := svc.ListTransactions(ctx, user, storage.TransactionFilter{Kind: core.Kind("transfer")})
	if !errors.Is(err, core.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}

	_, err = svc.ListTransactions(ctx, user, storage.TransactionFilter{
		From: core.NewDate(2024, 2, 1),
		To:   core.NewDate(2024, 1, 1),
	})
	if !errors.Is(err, core.ErrInvalidDateRange) {
		t.Fatalf("expected ErrInvalidDateRange, got %v", err)
	}
}

func TestDeleteCategoryBlockedWhileReferenced(t *testing.T) {
	svc, user, cat := newTracker(t, nil)
	ctx := context.Background()

	id, err := svc.CreateTransaction(ctx, core.Transaction{
		UserID:     user,
		CategoryID: cat,
		Kind:       core.Income,
		Amount:     core.Money{Units: 2000},
		Date:       core.NewDate(2024, 1, 5),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.DeleteCategory(ctx, user, cat); !errors.Is(err, core.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}

	if err := svc.DeleteTransaction(ctx, user, id); err != nil {
		t.Fatalf("delete transaction: %v", err)
	}
	if err := svc.DeleteCategory(ctx, user, cat); err != nil {
		t.Fatalf("delete category: %v", err)
	}
}
