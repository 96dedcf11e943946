// Package bill provides business logic for accounts payable and receivable.
// Bills track obligations only: settling a bill never touches an account
// balance, the user records the matching transaction separately.
package bill

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/bill"
	"github.com/granafacil/financeiro/pkg/dto"
	"github.com/granafacil/financeiro/pkg/repository"
)

// Service provides business logic for bill operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new bill Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateInput carries the fields of a new bill.
type CreateInput struct {
	UserID       uuid.UUID
	Kind         bill.Kind
	Counterparty string
	Description  *string
	TotalAmount  decimal.Decimal
	DueDate      time.Time
	CategoryID   *uuid.UUID
}

// UpdateInput carries the editable fields of an existing bill. Nil fields
// are left untouched.
type UpdateInput struct {
	Kind         *string
	Counterparty *string
	Description  *string
	TotalAmount  *decimal.Decimal
	DueDate      *time.Time
	Status       *string
	CategoryID   *uuid.UUID
}

// Create registers a new pending bill.
func (s *Service) Create(ctx context.Context, input CreateInput) (b *bill.Bill, err error) {
	logger := s.logger.With("user_id", input.UserID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		b, err = bill.New(input.UserID, input.Kind, input.Counterparty,
			input.Description, input.TotalAmount, input.DueDate, input.CategoryID)
		if err != nil {
			return err
		}
		bills, err := uow.BillRepository()
		if err != nil {
			return err
		}
		return bills.Create(ctx, b)
	})
	if err != nil {
		b = nil
		logger.Error("create bill failed", "error", err)
		return
	}
	logger.Info("bill created", "bill_id", b.ID, "kind", b.Kind, "due", b.DueDate)
	return
}

// Get retrieves a single bill owned by userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (b *bill.Bill, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		bills, err := uow.BillRepository()
		if err != nil {
			return err
		}
		b, err = bills.Get(ctx, id)
		if err != nil {
			return err
		}
		if b.UserID != userID {
			return bill.ErrBillNotFound
		}
		return nil
	})
	if err != nil {
		b = nil
	}
	return
}

// List lists the user's bills.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (list []*bill.Bill, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		bills, err := uow.BillRepository()
		if err != nil {
			return err
		}
		list, err = bills.ListByUser(ctx, userID)
		return err
	})
	return
}

// Update edits a bill.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (b *bill.Bill, err error) {
	logger := s.logger.With("user_id", userID, "bill_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		bills, err := uow.BillRepository()
		if err != nil {
			return err
		}
		b, err = bills.Get(ctx, id)
		if err != nil {
			return err
		}
		if b.UserID != userID {
			return bill.ErrBillNotFound
		}
		if input.Kind != nil && !bill.Kind(*input.Kind).Valid() {
			return bill.ErrInvalidKind
		}
		if input.Status != nil && !bill.Status(*input.Status).Valid() {
			return bill.ErrInvalidStatus
		}
		if input.Counterparty != nil && *input.Counterparty == "" {
			return bill.ErrCounterpartyRequired
		}
		if input.TotalAmount != nil && !input.TotalAmount.IsPositive() {
			return bill.ErrAmountMustBePositive
		}
		if err = bills.Update(ctx, id, dto.BillUpdate{
			Kind:         input.Kind,
			Counterparty: input.Counterparty,
			Description:  input.Description,
			TotalAmount:  input.TotalAmount,
			DueDate:      input.DueDate,
			Status:       input.Status,
			CategoryID:   input.CategoryID,
		}); err != nil {
			return err
		}
		b, err = bills.Get(ctx, id)
		return err
	})
	if err != nil {
		b = nil
		logger.Error("update bill failed", "error", err)
		return
	}
	logger.Info("bill updated", "status", b.Status)
	return
}

// Settle marks a bill as settled.
func (s *Service) Settle(ctx context.Context, userID, id uuid.UUID) (b *bill.Bill, err error) {
	status := string(bill.StatusSettled)
	return s.Update(ctx, userID, id, UpdateInput{Status: &status})
}

// Delete removes a bill.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	logger := s.logger.With("user_id", userID, "bill_id", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		bills, err := uow.BillRepository()
		if err != nil {
			return err
		}
		b, err := bills.Get(ctx, id)
		if err != nil {
			return err
		}
		if b.UserID != userID {
			return bill.ErrBillNotFound
		}
		return bills.Delete(ctx, id)
	})
	if err != nil {
		logger.Error("delete bill failed", "error", err)
		return err
	}
	logger.Info("bill deleted")
	return nil
}
