package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionUpdate is a DTO for updating one or more fields of a
// transaction. Nil fields are left untouched.
type TransactionUpdate struct {
	AccountID   *uuid.UUID
	CategoryID  *uuid.UUID
	Description *string
	Amount      *decimal.Decimal
	Kind        *string
	Date        *time.Time
	ReceiptURL  *string
}

// MonthTotals aggregates the signed totals of a user's transactions in a
// date range.
type MonthTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Net returns income minus expense.
func (t MonthTotals) Net() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}
