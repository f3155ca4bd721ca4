package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/amqp"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/services"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/storage"
)

type recordingMailer struct {
	sent [][]core.Alert
}

func (m *recordingMailer) SendAlerts(ctx context.Context, to, displayName string, alerts []core.Alert) error {
	m.sent = append(m.sent, alerts)
	return nil
}

func newWorker(t *testing.T, mailer services.Mailer) (*AlertWorker, *storage.SQLiteRepository, int64) {
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

	stats := services.NewStatisticsService(repo)
	alerts := services.NewAlertService(stats, repo, mailer)
	return NewAlertWorker(repo, alerts, 100), repo, user
}

func seed(t *testing.T, repo *storage.SQLiteRepository, user int64, kind core.Kind, amount int64, date core.Date) {
	t.Helper()
	ctx := context.Background()
	cat, err := repo.CreateCategory(ctx, core.Category{
		UserID: user, Name: string(kind) + date.Format("20060102"), Color: "#ccc", Kind: kind,
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	_, err = repo.CreateTransaction(ctx, core.Transaction{
		UserID: user, CategoryID: cat, Kind: kind,
		Amount: core.Money{Units: amount}, Date: date,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
}

func TestHandleAlertCheckSendsEmail(t *testing.T) {
	mailer := &recordingMailer{}
	w, repo, user := newWorker(t, mailer)

	// expense-only current month forces the negative balance rule
	now := time.Now()
	seed(t, repo, user, core.Expense, 300, core.NewDate(now.Year(), int(now.Month()), 1))

	err := w.HandleAlertCheck(context.Background(), amqp.NewAlertCheckMessage(user))
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(mailer.sent))
	}
}

func TestHandleAlertCheckNoTransactions(t *testing.T) {
	mailer := &recordingMailer{}
	w, _, user := newWorker(t, mailer)

	if err := w.HandleAlertCheck(context.Background(), amqp.NewAlertCheckMessage(user)); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(mailer.sent) != 0 {
		t.Fatalf("no alerts should mean no email, sent %d", len(mailer.sent))
	}
}

func TestSweepEvaluatesActiveUsers(t *testing.T) {
	mailer := &recordingMailer{}
	w, repo, user := newWorker(t, mailer)

	now := time.Now()
	seed(t, repo, user, core.Expense, 300, core.NewDate(now.Year(), int(now.Month()), 1))

	w.sweep(context.Background())

	if len(mailer.sent) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(mailer.sent))
	}
}
