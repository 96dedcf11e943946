package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCategoryNotFound is returned when a category cannot be found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrNameRequired is returned when a category is created without a name.
	ErrNameRequired = errors.New("category name is required")
	// ErrInvalidKind is returned when a category kind is unknown.
	ErrInvalidKind = errors.New("invalid category kind")
)

// Kind restricts which transaction directions a category may be used for.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
	KindBoth    Kind = "both"
)

// Valid reports whether k is a known category kind.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense || k == KindBoth
}

// Category labels transactions and bills. Categories are referenced, never
// owned, by transactions; deleting a category leaves its transactions
// uncategorized.
type Category struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description *string
	Color       string
	Kind        Kind
	CreatedAt   time.Time
}

// New constructs a Category, validating its invariants.
func New(userID uuid.UUID, name string, description *string, color string, kind Kind) (*Category, error) {
	if userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if !kind.Valid() {
		return nil, ErrInvalidKind
	}
	if color == "" {
		color = "#64748b"
	}
	return &Category{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Color:       color,
		Kind:        kind,
		CreatedAt:   time.Now(),
	}, nil
}
