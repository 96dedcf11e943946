package bill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/bill"
)

// CreateBillRequest is the request body for POST /bill.
type CreateBillRequest struct {
	Kind         string          `json:"kind" validate:"required,oneof=payable receivable"`
	Counterparty string          `json:"counterparty" validate:"required,min=1,max=255"`
	Description  *string         `json:"description" validate:"omitempty,max=1000"`
	TotalAmount  decimal.Decimal `json:"total_amount" validate:"required"`
	DueDate      time.Time       `json:"due_date" validate:"required"`
	CategoryID   *string         `json:"category_id" validate:"omitempty,uuid4"`
}

// UpdateBillRequest is the request body for PUT /bill/:id. All fields are
// optional.
type UpdateBillRequest struct {
	Kind         *string          `json:"kind" validate:"omitempty,oneof=payable receivable"`
	Counterparty *string          `json:"counterparty" validate:"omitempty,min=1,max=255"`
	Description  *string          `json:"description" validate:"omitempty,max=1000"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
	DueDate      *time.Time       `json:"due_date"`
	Status       *string          `json:"status" validate:"omitempty,oneof=pending settled"`
	CategoryID   *string          `json:"category_id" validate:"omitempty,uuid4"`
}

// BillResponse is the public view of a bill.
type BillResponse struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Counterparty string          `json:"counterparty"`
	Description  *string         `json:"description,omitempty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	DueDate      time.Time       `json:"due_date"`
	Status       string          `json:"status"`
	Overdue      bool            `json:"overdue"`
	CategoryID   *string         `json:"category_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// ToBillResponse maps the entity to its public view.
func ToBillResponse(b *bill.Bill, now time.Time) BillResponse {
	resp := BillResponse{
		ID:           b.ID.String(),
		Kind:         string(b.Kind),
		Counterparty: b.Counterparty,
		Description:  b.Description,
		TotalAmount:  b.TotalAmount,
		DueDate:      b.DueDate,
		Status:       string(b.Status),
		Overdue:      b.Overdue(now),
		CreatedAt:    b.CreatedAt,
	}
	if b.CategoryID != nil {
		id := b.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

// ToBillResponses maps a list of entities to their public views.
func ToBillResponses(list []*bill.Bill, now time.Time) []BillResponse {
	out := make([]BillResponse, 0, len(list))
	for _, b := range list {
		out = append(out, ToBillResponse(b, now))
	}
	return out
}
