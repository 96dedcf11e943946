package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrTransactionNotFound is returned when a transaction cannot be found.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrAmountMustBePositive is returned when a transaction amount is zero or
	// negative. Direction is carried by Kind, never by a negative amount.
	ErrAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrInvalidKind is returned when a transaction kind is not income or expense.
	ErrInvalidKind = errors.New("invalid transaction kind")

	// ErrDescriptionRequired is returned when a transaction has no description.
	ErrDescriptionRequired = errors.New("transaction description is required")

	// ErrAccountRequired is returned when a transaction references no account.
	ErrAccountRequired = errors.New("transaction account is required")

	// ErrNotOwner is returned when a user attempts to act on a transaction they do not own.
	ErrNotOwner = errors.New("not owner")
)

// Kind is the direction of a transaction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is a known transaction kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction represents a single income or expense entry against an account.
//
// Invariants:
//   - Amount is always strictly positive; Kind carries the sign.
//   - Every create, update or delete of a transaction triggers exactly one
//     compensating balance reconciliation per affected account.
type Transaction struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AccountID   uuid.UUID
	CategoryID  *uuid.UUID
	Description string
	Amount      decimal.Decimal
	Kind        Kind
	Date        time.Time
	ReceiptURL  *string
	CreatedAt   time.Time
}

// Effect is the signed impact of a transaction on its account's balance.
// It is the unit the balance reconciler operates on: applying an effect and
// then its exact reversal restores the prior balance decimal-exactly.
type Effect struct {
	AccountID uuid.UUID
	Amount    decimal.Decimal
	Kind      Kind
}

// Validate checks the effect's invariants.
func (e Effect) Validate() error {
	if e.AccountID == uuid.Nil {
		return ErrAccountRequired
	}
	if !e.Kind.Valid() {
		return ErrInvalidKind
	}
	if !e.Amount.IsPositive() {
		return ErrAmountMustBePositive
	}
	return nil
}

// Signed returns the effect's delta on the account balance: positive for
// income, negative for expense.
func (e Effect) Signed() decimal.Decimal {
	if e.Kind == KindExpense {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Reversed returns the effect that undoes e.
func (e Effect) Reversed() Effect {
	kind := KindIncome
	if e.Kind == KindIncome {
		kind = KindExpense
	}
	return Effect{AccountID: e.AccountID, Amount: e.Amount, Kind: kind}
}

// Effect returns the transaction's effect on its account.
func (t *Transaction) Effect() Effect {
	return Effect{AccountID: t.AccountID, Amount: t.Amount, Kind: t.Kind}
}

// Builder provides a fluent API for constructing Transaction instances.
type Builder struct {
	id          uuid.UUID
	userID      uuid.UUID
	accountID   uuid.UUID
	categoryID  *uuid.UUID
	description string
	amount      decimal.Decimal
	kind        Kind
	date        time.Time
	receiptURL  *string
	createdAt   time.Time
}

// New creates a new Builder with a fresh ID and the current date.
func New() *Builder {
	return &Builder{
		id:        uuid.New(),
		kind:      KindExpense,
		date:      time.Now(),
		createdAt: time.Now(),
	}
}

// WithID sets the ID for the transaction being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owner. Mandatory.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithAccountID sets the account the entry is recorded against. Mandatory.
func (b *Builder) WithAccountID(accountID uuid.UUID) *Builder {
	b.accountID = accountID
	return b
}

// WithCategoryID sets the optional category reference.
func (b *Builder) WithCategoryID(categoryID *uuid.UUID) *Builder {
	b.categoryID = categoryID
	return b
}

// WithDescription sets the description. Mandatory.
func (b *Builder) WithDescription(description string) *Builder {
	b.description = description
	return b
}

// WithAmount sets the amount. Must be strictly positive.
func (b *Builder) WithAmount(amount decimal.Decimal) *Builder {
	b.amount = amount
	return b
}

// WithKind sets the direction of the entry.
func (b *Builder) WithKind(kind Kind) *Builder {
	b.kind = kind
	return b
}

// WithDate sets the accounting date of the entry.
func (b *Builder) WithDate(date time.Time) *Builder {
	b.date = date
	return b
}

// WithReceiptURL sets the optional receipt attachment URL.
func (b *Builder) WithReceiptURL(url *string) *Builder {
	b.receiptURL = url
	return b
}

// WithCreatedAt sets the creation timestamp, for hydrating from a data store.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// Build finalizes the construction of the Transaction, validating all
// invariants.
func (b *Builder) Build() (*Transaction, error) {
	if b.userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if b.accountID == uuid.Nil {
		return nil, ErrAccountRequired
	}
	if b.description == "" {
		return nil, ErrDescriptionRequired
	}
	if !b.kind.Valid() {
		return nil, ErrInvalidKind
	}
	if !b.amount.IsPositive() {
		return nil, ErrAmountMustBePositive
	}
	return &Transaction{
		ID:          b.id,
		UserID:      b.userID,
		AccountID:   b.accountID,
		CategoryID:  b.categoryID,
		Description: b.description,
		Amount:      b.amount,
		Kind:        b.kind,
		Date:        b.date,
		ReceiptURL:  b.receiptURL,
		CreatedAt:   b.createdAt,
	}, nil
}
