package dto

import (
	"github.com/shopspring/decimal"
)

// AccountUpdate is a DTO for updating one or more fields of an account.
// Nil fields are left untouched.
type AccountUpdate struct {
	Name           *string
	Type           *string
	Balance        *decimal.Decimal
	InitialBalance *decimal.Decimal
	Institution    *string
	Color          *string
}
