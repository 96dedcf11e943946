package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/dto"
)

// Repository defines data access operations for accounts.
type Repository interface {
	// Create inserts a new account record.
	Create(ctx context.Context, a *account.Account) error

	// Get retrieves an account by its ID.
	Get(ctx context.Context, id uuid.UUID) (*account.Account, error)

	// ListByUser lists all accounts owned by a user.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*account.Account, error)

	// Update updates an existing account by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.AccountUpdate) error

	// Delete removes an account by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyBalanceDelta atomically adds delta to the account's stored balance
	// with a single server-side conditional update (balance = balance + delta).
	// Returns account.ErrAccountNotFound when no row matches the ID.
	ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal) error

	// NetEffect returns the sum of signed transaction effects currently
	// attributed to the account (income positive, expense negative).
	NetEffect(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)

	// RecomputeBalance resets the account's stored balance to
	// initial_balance plus the net effect of its transactions, in a single
	// server-side statement. Returns account.ErrAccountNotFound when no row
	// matches the ID.
	RecomputeBalance(ctx context.Context, id uuid.UUID) error

	// RecomputeAllBalances runs RecomputeBalance over every account.
	RecomputeAllBalances(ctx context.Context) error
}
