package goal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/goal"
)

// CreateGoalRequest is the request body for POST /goal.
type CreateGoalRequest struct {
	Title         string          `json:"title" validate:"required,min=1,max=255"`
	Description   *string         `json:"description" validate:"omitempty,max=1000"`
	TargetAmount  decimal.Decimal `json:"target_amount" validate:"required"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
	Color         string          `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateGoalRequest is the request body for PUT /goal/:id. All fields are
// optional. Completion cannot be set: it is derived from the amounts.
type UpdateGoalRequest struct {
	Title         *string          `json:"title" validate:"omitempty,min=1,max=255"`
	Description   *string          `json:"description" validate:"omitempty,max=1000"`
	TargetAmount  *decimal.Decimal `json:"target_amount"`
	CurrentAmount *decimal.Decimal `json:"current_amount"`
	StartDate     *time.Time       `json:"start_date"`
	EndDate       *time.Time       `json:"end_date"`
	Color         *string          `json:"color" validate:"omitempty,hexcolor"`
}

// ContributeRequest is the request body for POST /goal/:id/contribute.
type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// GoalResponse is the public view of a goal.
type GoalResponse struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Description   *string         `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Remaining     decimal.Decimal `json:"remaining"`
	Progress      float64         `json:"progress"`
	Completed     bool            `json:"completed"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	Color         string          `json:"color"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToGoalResponse maps the entity to its public view.
func ToGoalResponse(g *goal.Goal) GoalResponse {
	return GoalResponse{
		ID:            g.ID.String(),
		Title:         g.Title,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Remaining:     g.Remaining(),
		Progress:      g.Progress(),
		Completed:     g.Completed(),
		StartDate:     g.StartDate,
		EndDate:       g.EndDate,
		Color:         g.Color,
		CreatedAt:     g.CreatedAt,
	}
}

// ToGoalResponses maps a list of entities to their public views.
func ToGoalResponses(list []*goal.Goal) []GoalResponse {
	out := make([]GoalResponse, 0, len(list))
	for _, g := range list {
		out = append(out, ToGoalResponse(g))
	}
	return out
}
