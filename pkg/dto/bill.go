package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillUpdate is a DTO for updating one or more fields of a bill. Nil fields
// are left untouched.
type BillUpdate struct {
	Kind         *string
	Counterparty *string
	Description  *string
	TotalAmount  *decimal.Decimal
	DueDate      *time.Time
	Status       *string
	CategoryID   *uuid.UUID
}
