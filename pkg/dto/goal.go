package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalUpdate is a DTO for updating one or more fields of a goal. Nil fields
// are left untouched. Completed is always recomputed by the service from the
// amounts; it is never accepted from callers.
type GoalUpdate struct {
	Title         *string
	Description   *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	StartDate     *time.Time
	EndDate       *time.Time
	Color         *string
	Completed     *bool
}
