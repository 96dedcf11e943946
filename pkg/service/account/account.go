// Package account provides business logic for managing financial accounts.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/dto"
	"github.com/granafacil/financeiro/pkg/repository"
	"github.com/granafacil/financeiro/pkg/service/balance"
)

// Service provides business logic for account operations.
type Service struct {
	uow        repository.UnitOfWork
	reconciler *balance.Reconciler
	logger     *slog.Logger
}

// New creates a new account Service.
func New(uow repository.UnitOfWork, reconciler *balance.Reconciler, logger *slog.Logger) *Service {
	return &Service{uow: uow, reconciler: reconciler, logger: logger}
}

// CreateInput carries the fields of a new account.
type CreateInput struct {
	UserID      uuid.UUID
	Name        string
	Type        account.Type
	Balance     decimal.Decimal
	Institution *string
	Color       string
}

// UpdateInput carries the editable fields of an existing account. Nil fields
// are left untouched.
type UpdateInput struct {
	Name        *string
	Type        *string
	Balance     *decimal.Decimal
	Institution *string
	Color       *string
}

// Create opens a new account. The opening balance becomes the reconciliation
// baseline.
func (s *Service) Create(ctx context.Context, input CreateInput) (a *account.Account, err error) {
	logger := s.logger.With("user_id", input.UserID)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		b := account.New().
			WithUserID(input.UserID).
			WithName(input.Name).
			WithBalance(input.Balance).
			WithInstitution(input.Institution)
		if input.Type != "" {
			b = b.WithType(input.Type)
		}
		if input.Color != "" {
			b = b.WithColor(input.Color)
		}
		a, err = b.Build()
		if err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return accounts.Create(ctx, a)
	})
	if err != nil {
		a = nil
		logger.Error("create account failed", "error", err)
		return
	}
	logger.Info("account created", "account_id", a.ID, "type", a.Type)
	return
}

// Get retrieves a single account owned by userID.
func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		return a.ValidateEdit(userID)
	})
	if err != nil {
		a = nil
	}
	return
}

// List lists the user's accounts.
func (s *Service) List(ctx context.Context, userID uuid.UUID) (list []*account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		list, err = accounts.ListByUser(ctx, userID)
		return err
	})
	return
}

// Update edits an account. When the balance itself is edited, the baseline
// (initial balance) is re-derived so that balance still equals baseline plus
// the net effect of the account's transactions.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, input UpdateInput) (a *account.Account, err error) {
	logger := s.logger.With("user_id", userID, "account_id", id)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = a.ValidateEdit(userID); err != nil {
			return err
		}
		if input.Type != nil && !account.Type(*input.Type).Valid() {
			return account.ErrInvalidType
		}
		if input.Name != nil && *input.Name == "" {
			return account.ErrNameRequired
		}

		update := dto.AccountUpdate{
			Name:        input.Name,
			Type:        input.Type,
			Institution: input.Institution,
			Color:       input.Color,
		}
		if input.Balance != nil {
			net, err := accounts.NetEffect(ctx, id)
			if err != nil {
				return err
			}
			newInitial := input.Balance.Sub(net)
			update.Balance = input.Balance
			update.InitialBalance = &newInitial
		}
		if err = accounts.Update(ctx, id, update); err != nil {
			return err
		}
		a, err = accounts.Get(ctx, id)
		return err
	})
	if err != nil {
		a = nil
		logger.Error("update account failed", "error", err)
		return
	}
	logger.Info("account updated")
	return
}

// Delete removes an account and, through the schema's cascade, the
// transactions attributed to it.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	logger := s.logger.With("user_id", userID, "account_id", id)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = a.ValidateEdit(userID); err != nil {
			return err
		}
		return accounts.Delete(ctx, id)
	})
	if err != nil {
		logger.Error("delete account failed", "error", err)
		return err
	}
	logger.Info("account deleted")
	return nil
}

// Recompute resets the account's stored balance from ground truth.
func (s *Service) Recompute(ctx context.Context, userID, id uuid.UUID) (a *account.Account, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err = accounts.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = a.ValidateEdit(userID); err != nil {
			return err
		}
		if err = s.reconciler.Recompute(ctx, accounts, id); err != nil {
			return err
		}
		a, err = accounts.Get(ctx, id)
		return err
	})
	if err != nil {
		a = nil
	}
	return
}

// RecomputeAll resets every account's stored balance from ground truth. It
// backs the scheduled reconciliation job.
func (s *Service) RecomputeAll(ctx context.Context) error {
	return s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		return s.reconciler.RecomputeAll(ctx, accounts)
	})
}
