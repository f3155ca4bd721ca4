package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/M66TECH/MoneyWise-Project-sub000/internal/core"
	"github.com/M66TECH/MoneyWise-Project-sub000/internal/storage"
)

// AlertPublisher queues an asynchronous alert check for a user.
type AlertPublisher interface {
	PublishAlertCheck(ctx context.Context, userID int64) error
}

// TrackerService orchestrates transaction and category writes: validation,
// business rules, storage, and a best-effort alert-check publish after
// every transaction write.
type TrackerService struct {
	storage   *storage.SQLiteRepository
	publisher AlertPublisher
}

func NewTrackerService(storage *storage.SQLiteRepository, publisher AlertPublisher) *TrackerService {
	return &TrackerService{
		storage:   storage,
		publisher: publisher,
	}
}

// CreateTransaction validates the transaction against its category and
// saves it. The category must belong to the same user and its kind must
// accept the transaction's kind.
func (s *TrackerService) CreateTransaction(ctx context.Context, t core.Transaction) (int64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	if err := s.checkCategoryKind(ctx, t); err != nil {
		return 0, err
	}

	id, err := s.storage.CreateTransaction(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	s.publishAlertCheck(ctx, t.UserID)
	return id, nil
}

// UpdateTransaction applies an in-place edit under the same rules as create.
func (s *TrackerService) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := s.checkCategoryKind(ctx, t); err != nil {
		return err
	}

	if err := s.storage.UpdateTransaction(ctx, t); err != nil {
		return err
	}

	s.publishAlertCheck(ctx, t.UserID)
	return nil
}

func (s *TrackerService) DeleteTransaction(ctx context.Context, userID, id int64) error {
	return s.storage.DeleteTransaction(ctx, userID, id)
}

func (s *TrackerService) GetTransaction(ctx context.Context, userID, id int64) (core.Transaction, error) {
	return s.storage.GetTransaction(ctx, userID, id)
}

func (s *TrackerService) ListTransactions(ctx context.Context, userID int64, f storage.TransactionFilter) ([]core.Transaction, error) {
	if f.Kind != "" {
		if err := f.Kind.Validate(); err != nil {
			return nil, err
		}
	}
	if !f.From.IsZero() && !f.To.IsZero() {
		if err := core.ValidateDateRange(f.From, f.To); err != nil {
			return nil, err
		}
	}
	return s.storage.ListTransactions(ctx, userID, f)
}

func (s *TrackerService) CreateCategory(ctx context.Context, c core.Category) (int64, error) {
	if err := c.Validate(); err != nil {
		return 0, err
	}
	return s.storage.CreateCategory(ctx, c)
}

func (s *TrackerService) ListCategories(ctx context.Context, userID int64) ([]core.Category, error) {
	return s.storage.ListCategories(ctx, userID)
}

// DeleteCategory is rejected with ErrCategoryInUse while any transaction
// still references the category.
func (s *TrackerService) DeleteCategory(ctx context.Context, userID, id int64) error {
	return s.storage.DeleteCategory(ctx, userID, id)
}

// checkCategoryKind enforces the kind-match invariant between a transaction
// and its owning category.
func (s *TrackerService) checkCategoryKind(ctx context.Context, t core.Transaction) error {
	cat, err := s.storage.GetCategory(ctx, t.UserID, t.CategoryID)
	if err != nil {
		return err
	}
	if !cat.Kind.Accepts(t.Kind) {
		return core.ErrKindMismatch
	}
	return nil
}

// publishAlertCheck queues an async evaluation; failures never fail the
// request because the write already succeeded locally.
func (s *TrackerService) publishAlertCheck(ctx context.Context, userID int64) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Alert publisher not available, skipping alert check")
		return
	}
	if err := s.publisher.PublishAlertCheck(ctx, userID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish alert check",
			"user_id", userID, "error", err)
	}
}

// Close releases the underlying storage connection.
func (s *TrackerService) Close() error {
	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			return fmt.Errorf("close tracker service: %w", err)
		}
	}
	return nil
}
