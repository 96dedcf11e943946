package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/granafacil/financeiro/pkg/domain/transaction"
)

// CreateTransactionRequest is the request body for POST /transaction.
type CreateTransactionRequest struct {
	AccountID   string          `json:"account_id" validate:"required,uuid4"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid4"`
	Description string          `json:"description" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Kind        string          `json:"kind" validate:"required,oneof=income expense"`
	Date        time.Time       `json:"date" validate:"required"`
}

// UpdateTransactionRequest is the request body for PUT /transaction/:id.
// The full new version of the entry is sent; the receipt is kept unless a
// new URL is given.
type UpdateTransactionRequest struct {
	AccountID   string          `json:"account_id" validate:"required,uuid4"`
	CategoryID  *string         `json:"category_id" validate:"omitempty,uuid4"`
	Description string          `json:"description" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Kind        string          `json:"kind" validate:"required,oneof=income expense"`
	Date        time.Time       `json:"date" validate:"required"`
	ReceiptURL  *string         `json:"receipt_url" validate:"omitempty,url"`
}

// TransactionResponse is the public view of a transaction.
type TransactionResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	CategoryID  *string         `json:"category_id,omitempty"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Date        time.Time       `json:"date"`
	ReceiptURL  *string         `json:"receipt_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToTransactionResponse maps the entity to its public view.
func ToTransactionResponse(t *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:          t.ID.String(),
		AccountID:   t.AccountID.String(),
		Description: t.Description,
		Amount:      t.Amount,
		Kind:        string(t.Kind),
		Date:        t.Date,
		ReceiptURL:  t.ReceiptURL,
		CreatedAt:   t.CreatedAt,
	}
	if t.CategoryID != nil {
		id := t.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

// ToTransactionResponses maps a list of entities to their public views.
func ToTransactionResponses(list []*transaction.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}
