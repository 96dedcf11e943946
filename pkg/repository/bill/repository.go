package bill

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/domain/bill"
	"github.com/granafacil/financeiro/pkg/dto"
)

// Repository defines data access operations for bills (accounts payable and
// receivable).
type Repository interface {
	Create(ctx context.Context, b *bill.Bill) error
	Get(ctx context.Context, id uuid.UUID) (*bill.Bill, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*bill.Bill, error)
	Update(ctx context.Context, id uuid.UUID, update dto.BillUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error

	// CountPending counts a user's pending bills.
	CountPending(ctx context.Context, userID uuid.UUID) (int64, error)

	// ListPendingDueBetween lists a user's pending bills with due dates in
	// [from, to], ordered by due date, at most limit rows.
	ListPendingDueBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, limit int) ([]*bill.Bill, error)
}
