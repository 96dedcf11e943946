// Package transaction provides business logic for recording, editing and
// deleting income/expense entries. Every mutation runs inside one unit of
// work together with its compensating balance reconciliation, so a failed
// balance update rolls the record write back instead of leaving drift.
package transaction

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/dto"
	"github.com/granafacil/financeiro/pkg/repository"
	"github.com/granafacil/financeiro/pkg/service/balance"
)

// Service provides business logic for transaction operations.
type Service struct {
	uow        repository.UnitOfWork
	reconciler *balance.Reconciler
	logger     *slog.Logger
}

// New creates a new transaction Service.
func New(uow repository.UnitOfWork, reconciler *balance.Reconciler, logger *slog.Logger) *Service {
	return &Service{uow: uow, reconciler: reconciler, logger: logger}
}

// CreateInput carries the fields of a new transaction.
type CreateInput struct {
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	Kind        transaction.Kind
	Date        time.Time
	ReceiptURL  *string
}

// UpdateInput carries the editable fields of an existing transaction.
// A nil ReceiptURL keeps the previously stored receipt.
type UpdateInput struct {
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	Kind        transaction.Kind
	Date        time.Time
	ReceiptURL  *string
}

// Create records a new transaction and applies its effect to the account
// balance, both in one unit of work.
func (s *Service) Create(ctx context.Context, input CreateInput) (t *transaction.Transaction, err error) {
	logger := s.logger.With("user_id", input.UserID, "account_id", input.AccountID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		acct, err := accounts.Get(ctx, input.AccountID)
		if err != nil {
			return err
		}
		if err = acct.ValidateEdit(input.UserID); err != nil {
			return err
		}

		t, err = transaction.New().
			WithUserID(input.UserID).
			WithAccountID(input.AccountID).
			WithCategoryID(input.CategoryID).
			WithDescription(input.Description).
			WithAmount(input.Amount).
			WithKind(input.Kind).
			WithDate(input.Date).
			WithReceiptURL(input.ReceiptURL).
			Build()
		if err != nil {
			return err
		}

		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		if err = transactions.Create(ctx, t); err != nil {
			return err
		}

		eff := t.Effect()
		return s.reconciler.Apply(ctx, accounts, t.AccountID, &eff, nil)
	})
	if err != nil {
		t = nil
		logger.Error("create transaction failed", "error", err)
		return
	}
	logger.Info("transaction created", "transaction_id", t.ID, "kind", t.Kind, "amount", t.Amount.String())
	return
}

// Update edits a transaction and issues the reconciliation calls the change
// requires: one call when the account is unchanged (reverse-then-apply as a
// single delta), two calls when the entry moved between accounts.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (t *transaction.Transaction, err error) {
	logger := s.logger.With("user_id", userID, "transaction_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		old, err := transactions.Get(ctx, id)
		if err != nil {
			return err
		}
		if old.UserID != userID {
			return transaction.ErrNotOwner
		}

		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if input.AccountID != old.AccountID {
			acct, err := accounts.Get(ctx, input.AccountID)
			if err != nil {
				return err
			}
			if err = acct.ValidateEdit(userID); err != nil {
				return err
			}
		}

		receiptURL := old.ReceiptURL
		if input.ReceiptURL != nil {
			receiptURL = input.ReceiptURL
		}
		t, err = transaction.New().
			WithID(old.ID).
			WithUserID(old.UserID).
			WithAccountID(input.AccountID).
			WithCategoryID(input.CategoryID).
			WithDescription(input.Description).
			WithAmount(input.Amount).
			WithKind(input.Kind).
			WithDate(input.Date).
			WithReceiptURL(receiptURL).
			WithCreatedAt(old.CreatedAt).
			Build()
		if err != nil {
			return err
		}

		kind := string(t.Kind)
		if err = transactions.Update(ctx, id, dto.TransactionUpdate{
			AccountID:   &t.AccountID,
			CategoryID:  t.CategoryID,
			Description: &t.Description,
			Amount:      &t.Amount,
			Kind:        &kind,
			Date:        &t.Date,
			ReceiptURL:  t.ReceiptURL,
		}); err != nil {
			return err
		}

		prev := old.Effect()
		eff := t.Effect()
		if t.AccountID == old.AccountID {
			return s.reconciler.Apply(ctx, accounts, t.AccountID, &eff, &prev)
		}
		// The entry moved: undo it on the old account, record it on the new.
		if err = s.reconciler.Apply(ctx, accounts, old.AccountID, nil, &prev); err != nil {
			return err
		}
		return s.reconciler.Apply(ctx, accounts, t.AccountID, &eff, nil)
	})
	if err != nil {
		t = nil
		logger.Error("update transaction failed", "error", err)
		return
	}
	logger.Info("transaction updated", "account_id", t.AccountID)
	return
}

// Delete removes a transaction and reverses its effect on the account
// balance.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	logger := s.logger.With("user_id", userID, "transaction_id", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		old, err := transactions.Get(ctx, id)
		if err != nil {
			return err
		}
		if old.UserID != userID {
			return transaction.ErrNotOwner
		}
		if err = transactions.Delete(ctx, id); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		prev := old.Effect()
		return s.reconciler.Apply(ctx, accounts, old.AccountID, nil, &prev)
	})
	if err != nil {
		logger.Error("delete transaction failed", "error", err)
		return err
	}
	logger.Info("transaction deleted")
	return nil
}

// Get retrieves a single transaction owned by userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (t *transaction.Transaction, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		t, err = transactions.Get(ctx, id)
		if err != nil {
			return err
		}
		if t.UserID != userID {
			return transaction.ErrNotOwner
		}
		return nil
	})
	if err != nil {
		t = nil
	}
	return
}

// ListMonth lists the user's transactions for the month containing ref,
// most recent first.
func (s *Service) ListMonth(ctx context.Context, userID uuid.UUID, ref time.Time) (list []*transaction.Transaction, err error) {
	from := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		transactions, err := uow.TransactionRepository()
		if err != nil {
			return err
		}
		list, err = transactions.ListByUserBetween(ctx, userID, from, to)
		return err
	})
	return
}
