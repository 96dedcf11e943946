package bill

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrBillNotFound is returned when a bill cannot be found.
	ErrBillNotFound = errors.New("bill not found")
	// ErrCounterpartyRequired is returned when a bill has no supplier/client name.
	ErrCounterpartyRequired = errors.New("bill counterparty is required")
	// ErrAmountMustBePositive is returned when a bill total is not positive.
	ErrAmountMustBePositive = errors.New("bill amount must be positive")
	// ErrInvalidKind is returned when a bill kind is unknown.
	ErrInvalidKind = errors.New("invalid bill kind")
	// ErrInvalidStatus is returned when a bill status is unknown.
	ErrInvalidStatus = errors.New("invalid bill status")
)

// Kind is the direction of a bill.
type Kind string

const (
	KindPayable    Kind = "payable"
	KindReceivable Kind = "receivable"
)

// Valid reports whether k is a known bill kind.
func (k Kind) Valid() bool {
	return k == KindPayable || k == KindReceivable
}

// Status is the settlement state of a bill.
type Status string

const (
	StatusPending Status = "pending"
	StatusSettled Status = "settled"
)

// Valid reports whether s is a known bill status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusSettled
}

// Bill is an account payable or receivable with a due date. Pending bills
// feed the dashboard's pending count and the upcoming-bills list.
type Bill struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Kind         Kind
	Counterparty string
	Description  *string
	TotalAmount  decimal.Decimal
	DueDate      time.Time
	Status       Status
	CategoryID   *uuid.UUID
	CreatedAt    time.Time
}

// New constructs a pending Bill, validating its invariants.
func New(userID uuid.UUID, kind Kind, counterparty string, description *string, total decimal.Decimal, due time.Time, categoryID *uuid.UUID) (*Bill, error) {
	if userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if counterparty == "" {
		return nil, ErrCounterpartyRequired
	}
	if !total.IsPositive() {
		return nil, ErrAmountMustBePositive
	}
	return &Bill{
		ID:           uuid.New(),
		UserID:       userID,
		Kind:         kind,
		Counterparty: counterparty,
		Description:  description,
		TotalAmount:  total,
		DueDate:      due,
		Status:       StatusPending,
		CategoryID:   categoryID,
		CreatedAt:    time.Now(),
	}, nil
}

// Overdue reports whether a pending bill is past its due date.
func (b *Bill) Overdue(now time.Time) bool {
	return b.Status == StatusPending && b.DueDate.Before(now)
}
