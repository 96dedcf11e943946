package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/dto"
)

// Repository defines data access operations for transactions.
type Repository interface {
	// Create inserts a new transaction record.
	Create(ctx context.Context, t *transaction.Transaction) error

	// Get retrieves a transaction by its ID.
	Get(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)

	// ListByUserBetween lists a user's transactions with dates in [from, to],
	// most recent first.
	ListByUserBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*transaction.Transaction, error)

	// ListByAccount lists all transactions attributed to an account.
	ListByAccount(ctx context.Context, accountID uuid.UUID) ([]*transaction.Transaction, error)

	// Update updates an existing transaction by its ID using a DTO.
	Update(ctx context.Context, id uuid.UUID, update dto.TransactionUpdate) error

	// Delete removes a transaction by its ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// TotalsBetween sums a user's income and expense amounts with dates in
	// [from, to].
	TotalsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (dto.MonthTotals, error)
}
