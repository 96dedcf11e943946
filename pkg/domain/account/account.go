package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrAccountNotFound is returned when an account cannot be found.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNameRequired is returned when an account is created without a name.
	ErrNameRequired = errors.New("account name is required")

	// ErrInvalidType is returned when an account type is not one of the known types.
	ErrInvalidType = errors.New("invalid account type")

	// ErrNotOwner is returned when a user attempts to act on an account they do not own.
	ErrNotOwner = errors.New("not owner")
)

// Type classifies an account.
type Type string

const (
	TypeChecking   Type = "checking"
	TypeSavings    Type = "savings"
	TypeInvestment Type = "investment"
	TypeCash       Type = "cash"
	TypeOther      Type = "other"
)

// Valid reports whether t is a known account type.
func (t Type) Valid() bool {
	switch t {
	case TypeChecking, TypeSavings, TypeInvestment, TypeCash, TypeOther:
		return true
	}
	return false
}

// Account represents a user's financial account (bank account, wallet, etc.).
//
// Invariants:
//   - An account always has a valid owner (UserID) and a non-empty name.
//   - Balance always equals InitialBalance plus the net effect of all
//     transactions currently attributed to the account. The balance is only
//     mutated through the balance reconciler or by an explicit balance edit,
//     which re-derives InitialBalance so the invariant keeps holding.
type Account struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Name           string
	Type           Type
	Balance        decimal.Decimal
	InitialBalance decimal.Decimal
	Institution    *string
	Color          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id          uuid.UUID
	userID      uuid.UUID
	name        string
	accountType Type
	balance     decimal.Decimal
	institution *string
	color       string
	createdAt   time.Time
	updatedAt   time.Time
}

// New creates a new Builder with sensible defaults.
func New() *Builder {
	return &Builder{
		id:          uuid.New(),
		accountType: TypeChecking,
		color:       "#2563eb",
		createdAt:   time.Now(),
	}
}

// WithID sets the ID for the account being built.
func (b *Builder) WithID(id uuid.UUID) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owner of the account. This is a mandatory field.
func (b *Builder) WithUserID(userID uuid.UUID) *Builder {
	b.userID = userID
	return b
}

// WithName sets the display name of the account. This is a mandatory field.
func (b *Builder) WithName(name string) *Builder {
	b.name = name
	return b
}

// WithType sets the account type. Defaults to TypeChecking.
func (b *Builder) WithType(t Type) *Builder {
	b.accountType = t
	return b
}

// WithBalance sets the opening balance. The opening balance also becomes the
// reconciliation baseline (InitialBalance).
func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithInstitution sets the optional institution name.
func (b *Builder) WithInstitution(institution *string) *Builder {
	b.institution = institution
	return b
}

// WithColor sets the display color.
func (b *Builder) WithColor(color string) *Builder {
	b.color = color
	return b
}

// WithCreatedAt sets the creation timestamp. This is primarily for hydrating
// an existing account from a data store.
func (b *Builder) WithCreatedAt(t time.Time) *Builder {
	b.createdAt = t
	return b
}

// WithUpdatedAt sets the last-updated timestamp. This is primarily for
// hydrating an existing account from a data store.
func (b *Builder) WithUpdatedAt(t time.Time) *Builder {
	b.updatedAt = t
	return b
}

// Build finalizes the construction of the Account. It validates all
// invariants before returning the new Account instance.
func (b *Builder) Build() (*Account, error) {
	if b.userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if b.name == "" {
		return nil, ErrNameRequired
	}
	if !b.accountType.Valid() {
		return nil, ErrInvalidType
	}
	return &Account{
		ID:             b.id,
		UserID:         b.userID,
		Name:           b.name,
		Type:           b.accountType,
		Balance:        b.balance,
		InitialBalance: b.balance,
		Institution:    b.institution,
		Color:          b.color,
		CreatedAt:      b.createdAt,
		UpdatedAt:      b.updatedAt,
	}, nil
}

// validate checks ownership for an operation on the account.
func (a *Account) validate(userID uuid.UUID) error {
	if a.UserID != userID {
		return ErrNotOwner
	}
	return nil
}

// ValidateEdit checks that userID may edit the account.
func (a *Account) ValidateEdit(userID uuid.UUID) error {
	return a.validate(userID)
}
