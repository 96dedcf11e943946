package account

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/account"
)

// CreateAccountRequest is the request body for POST /account.
type CreateAccountRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=255"`
	Type        string          `json:"type" validate:"omitempty,oneof=checking savings investment cash other"`
	Balance     decimal.Decimal `json:"balance"`
	Institution *string         `json:"institution" validate:"omitempty,max=255"`
	Color       string          `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateAccountRequest is the request body for PUT /account/:id. All fields
// are optional; editing the balance re-derives the reconciliation baseline.
type UpdateAccountRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Type        *string          `json:"type" validate:"omitempty,oneof=checking savings investment cash other"`
	Balance     *decimal.Decimal `json:"balance"`
	Institution *string          `json:"institution" validate:"omitempty,max=255"`
	Color       *string          `json:"color" validate:"omitempty,hexcolor"`
}

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	Institution *string         `json:"institution,omitempty"`
	Color       string          `json:"color"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToAccountResponse maps the entity to its public view.
func ToAccountResponse(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Type:        string(a.Type),
		Balance:     a.Balance,
		Institution: a.Institution,
		Color:       a.Color,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAccountResponses maps a list of entities to their public views.
func ToAccountResponses(accounts []*account.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, ToAccountResponse(a))
	}
	return out
}
