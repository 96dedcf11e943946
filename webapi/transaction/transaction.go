// Package transaction exposes the transaction endpoints, including the
// receipt upload.
package transaction

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/domain/transaction"
	"github.com/granafacil/financeiro/pkg/middleware"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	transactionsvc "github.com/granafacil/financeiro/pkg/service/transaction"
	"github.com/granafacil/financeiro/pkg/storage"
	"github.com/granafacil/financeiro/webapi/common"
)

// Routes registers HTTP routes for transaction operations. All routes
// require a valid token.
//
// Routes:
//   - POST   /transaction             : Record a new income/expense entry.
//   - GET    /transaction             : List a month's entries (?month=2026-08, default current).
//   - GET    /transaction/:id         : Fetch one entry.
//   - PUT    /transaction/:id         : Update an entry, reconciling the affected balances.
//   - DELETE /transaction/:id         : Delete an entry, reversing its balance effect.
//   - POST   /transaction/:id/receipt : Attach a receipt file to an entry.
func Routes(app *fiber.App, transactionSvc *transactionsvc.Service, authSvc *authsvc.Service, uploader storage.Uploader, cfg *config.App) {
	jwt := middleware.JwtProtected(*cfg.Jwt)
	app.Post("/transaction", jwt, CreateTransaction(transactionSvc, authSvc))
	app.Get("/transaction", jwt, ListTransactions(transactionSvc, authSvc))
	app.Get("/transaction/:id", jwt, GetTransaction(transactionSvc, authSvc))
	app.Put("/transaction/:id", jwt, UpdateTransaction(transactionSvc, authSvc))
	app.Delete("/transaction/:id", jwt, DeleteTransaction(transactionSvc, authSvc))
	app.Post("/transaction/:id/receipt", jwt, UploadReceipt(transactionSvc, authSvc, uploader, cfg.Storage.Bucket))
}

func parseCategoryID(raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// monthOf resolves the ?month=YYYY-MM query parameter, defaulting to now.
func monthOf(c *fiber.Ctx) (time.Time, error) {
	raw := c.Query("month")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01", raw)
}

// CreateTransaction returns a Fiber handler that records a new entry and
// applies its effect to the account balance.
// @Summary Record a transaction
// @Description Records an income or expense entry. The account balance is adjusted in the same unit of work.
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction details"
// @Success 201 {object} common.Response "Transaction recorded"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Account not found"
// @Router /transaction [post]
// @Security Bearer
func CreateTransaction(transactionSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateTransactionRequest](c)
		if input == nil {
			return err
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		categoryID, err := parseCategoryID(input.CategoryID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		}
		t, err := transactionSvc.Create(c.Context(), transactionsvc.CreateInput{
			UserID:      userID,
			AccountID:   accountID,
			CategoryID:  categoryID,
			Description: input.Description,
			Amount:      input.Amount,
			Kind:        transaction.Kind(input.Kind),
			Date:        input.Date,
		})
		if err != nil {
			log.Errorf("Failed to record transaction: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to record transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Transaction recorded", ToTransactionResponse(t))
	}
}

// ListTransactions returns a Fiber handler that lists a month's entries.
// @Summary List a month's transactions
// @Tags transactions
// @Produce json
// @Param month query string false "Month as YYYY-MM, default current"
// @Success 200 {object} common.Response "Transactions fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /transaction [get]
// @Security Bearer
func ListTransactions(transactionSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		ref, err := monthOf(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid month", err, "Month must be formatted as YYYY-MM", fiber.StatusBadRequest)
		}
		list, err := transactionSvc.ListMonth(c.Context(), userID, ref)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list transactions", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", ToTransactionResponses(list))
	}
}

// GetTransaction returns a Fiber handler that fetches one entry.
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response "Transaction fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /transaction/{id} [get]
// @Security Bearer
func GetTransaction(transactionSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		t, err := transactionSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction fetched", ToTransactionResponse(t))
	}
}

// UpdateTransaction returns a Fiber handler that updates an entry. The
// balance reconciliation covers both the old and, when the entry moved, the
// new account.
// @Summary Update a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body UpdateTransactionRequest true "New version of the entry"
// @Success 200 {object} common.Response "Transaction updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /transaction/{id} [put]
// @Security Bearer
func UpdateTransaction(transactionSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateTransactionRequest](c)
		if input == nil {
			return err
		}
		accountID, err := uuid.Parse(input.AccountID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, fiber.StatusBadRequest)
		}
		categoryID, err := parseCategoryID(input.CategoryID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		}
		t, err := transactionSvc.Update(c.Context(), userID, id, transactionsvc.UpdateInput{
			AccountID:   accountID,
			CategoryID:  categoryID,
			Description: input.Description,
			Amount:      input.Amount,
			Kind:        transaction.Kind(input.Kind),
			Date:        input.Date,
			ReceiptURL:  input.ReceiptURL,
		})
		if err != nil {
			log.Errorf("Failed to update transaction %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction updated", ToTransactionResponse(t))
	}
}

// DeleteTransaction returns a Fiber handler that deletes an entry and
// reverses its effect on the account balance.
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response "Transaction deleted"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /transaction/{id} [delete]
// @Security Bearer
func DeleteTransaction(transactionSvc *transactionsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		if err := transactionSvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete transaction", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transaction deleted", nil)
	}
}

// UploadReceipt returns a Fiber handler that stores a receipt file and
// attaches its public URL to the entry.
// @Summary Attach a receipt
// @Description Accepts a multipart form with a "file" field, stores it and saves the public URL on the transaction.
// @Tags transactions
// @Accept mpfd
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} common.Response "Receipt attached"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Failure 413 {object} common.ProblemDetails "File too large"
// @Router /transaction/{id}/receipt [post]
// @Security Bearer
func UploadReceipt(transactionSvc *transactionsvc.Service, authSvc *authsvc.Service, uploader storage.Uploader, bucket string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid transaction ID", err, fiber.StatusBadRequest)
		}
		// Ownership check before the file is touched.
		t, err := transactionSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch transaction", err)
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return common.ProblemDetailsJSON(c, "Missing receipt file", err, `multipart field "file" is required`, fiber.StatusBadRequest)
		}
		file, err := fileHeader.Open()
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to read receipt file", err, fiber.StatusBadRequest)
		}
		defer file.Close()

		name := id.String()
		url, err := uploader.Upload(c.Context(), bucket, name, fileHeader.Header.Get(fiber.HeaderContentType), file)
		if err != nil {
			log.Errorf("Failed to store receipt for transaction %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to store receipt", err)
		}

		updated, err := transactionSvc.Update(c.Context(), userID, id, transactionsvc.UpdateInput{
			AccountID:   t.AccountID,
			CategoryID:  t.CategoryID,
			Description: t.Description,
			Amount:      t.Amount,
			Kind:        t.Kind,
			Date:        t.Date,
			ReceiptURL:  &url,
		})
		if err != nil {
			log.Errorf("Failed to attach receipt to transaction %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to attach receipt", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Receipt attached", ToTransactionResponse(updated))
	}
}
