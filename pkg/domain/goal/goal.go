package goal

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrGoalNotFound is returned when a goal cannot be found.
	ErrGoalNotFound = errors.New("goal not found")
	// ErrTitleRequired is returned when a goal is created without a title.
	ErrTitleRequired = errors.New("goal title is required")
	// ErrTargetMustBePositive is returned when a goal target amount is not positive.
	ErrTargetMustBePositive = errors.New("goal target amount must be positive")
	// ErrCurrentAmountNegative is returned when a goal current amount is negative.
	ErrCurrentAmountNegative = errors.New("goal current amount cannot be negative")
)

// Goal is a savings goal. Completion is purely derived from the amounts:
// a goal is completed exactly when CurrentAmount has reached TargetAmount.
// There is no independent completed toggle.
type Goal struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Title         string
	Description   *string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	StartDate     time.Time
	EndDate       *time.Time
	Color         string
	CreatedAt     time.Time
}

// New constructs a Goal, validating its invariants.
func New(userID uuid.UUID, title string, description *string, target, current decimal.Decimal, start time.Time, end *time.Time, color string) (*Goal, error) {
	if userID == uuid.Nil {
		return nil, errors.New("userID is required")
	}
	if title == "" {
		return nil, ErrTitleRequired
	}
	if !target.IsPositive() {
		return nil, ErrTargetMustBePositive
	}
	if current.IsNegative() {
		return nil, ErrCurrentAmountNegative
	}
	if color == "" {
		color = "#16a34a"
	}
	return &Goal{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         title,
		Description:   description,
		TargetAmount:  target,
		CurrentAmount: current,
		StartDate:     start,
		EndDate:       end,
		Color:         color,
		CreatedAt:     time.Now(),
	}, nil
}

// Completed reports whether the goal has been reached.
func (g *Goal) Completed() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// Remaining returns the amount still missing to reach the target. Never
// negative.
func (g *Goal) Remaining() decimal.Decimal {
	r := g.TargetAmount.Sub(g.CurrentAmount)
	if r.IsNegative() {
		return decimal.Zero
	}
	return r
}

// Progress returns the completion percentage clamped to [0, 100].
func (g *Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}
	p, _ := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Float64()
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
