// Package bill exposes the accounts payable and receivable endpoints.
package bill

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/domain/bill"
	"github.com/granafacil/financeiro/pkg/middleware"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	billsvc "github.com/granafacil/financeiro/pkg/service/bill"
	"github.com/granafacil/financeiro/webapi/common"
)

// Routes registers HTTP routes for bill operations. All routes require a
// valid token.
//
// Routes:
//   - POST   /bill            : Create a pending bill.
//   - GET    /bill            : List the user's bills.
//   - GET    /bill/:id        : Fetch one bill.
//   - PUT    /bill/:id        : Update a bill.
//   - POST   /bill/:id/settle : Mark a bill settled (balances never change).
//   - DELETE /bill/:id        : Delete a bill.
func Routes(app *fiber.App, billSvc *billsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(*cfg.Jwt)
	app.Post("/bill", jwt, CreateBill(billSvc, authSvc))
	app.Get("/bill", jwt, ListBills(billSvc, authSvc))
	app.Get("/bill/:id", jwt, GetBill(billSvc, authSvc))
	app.Put("/bill/:id", jwt, UpdateBill(billSvc, authSvc))
	app.Post("/bill/:id/settle", jwt, SettleBill(billSvc, authSvc))
	app.Delete("/bill/:id", jwt, DeleteBill(billSvc, authSvc))
}

// CreateBill returns a Fiber handler that registers a pending bill.
// @Summary Create a bill
// @Tags bills
// @Accept json
// @Produce json
// @Param request body CreateBillRequest true "Bill details"
// @Success 201 {object} common.Response "Bill created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /bill [post]
// @Security Bearer
func CreateBill(billSvc *billsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateBillRequest](c)
		if input == nil {
			return err
		}
		categoryID, err := parseCategoryID(input.CategoryID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		}
		b, err := billSvc.Create(c.Context(), billsvc.CreateInput{
			UserID:       userID,
			Kind:         bill.Kind(input.Kind),
			Counterparty: input.Counterparty,
			Description:  input.Description,
			TotalAmount:  input.TotalAmount,
			DueDate:      input.DueDate,
			CategoryID:   categoryID,
		})
		if err != nil {
			log.Errorf("Failed to create bill: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create bill", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Bill created", ToBillResponse(b, time.Now()))
	}
}

// ListBills returns a Fiber handler that lists the user's bills.
// @Summary List bills
// @Tags bills
// @Produce json
// @Success 200 {object} common.Response "Bills fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /bill [get]
// @Security Bearer
func ListBills(billSvc *billsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := billSvc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list bills", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bills fetched", ToBillResponses(list, time.Now()))
	}
}

// GetBill returns a Fiber handler that fetches one bill.
// @Summary Get a bill
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} common.Response "Bill fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /bill/{id} [get]
// @Security Bearer
func GetBill(billSvc *billsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bill ID", err, fiber.StatusBadRequest)
		}
		b, err := billSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch bill", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bill fetched", ToBillResponse(b, time.Now()))
	}
}

// UpdateBill returns a Fiber handler that updates a bill.
// @Summary Update a bill
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "Bill ID"
// @Param request body UpdateBillRequest true "Bill changes"
// @Success 200 {object} common.Response "Bill updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /bill/{id} [put]
// @Security Bearer
func UpdateBill(billSvc *billsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bill ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateBillRequest](c)
		if input == nil {
			return err
		}
		categoryID, err := parseCategoryID(input.CategoryID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		}
		b, err := billSvc.Update(c.Context(), userID, id, billsvc.UpdateInput{
			Kind:         input.Kind,
			Counterparty: input.Counterparty,
			Description:  input.Description,
			TotalAmount:  input.TotalAmount,
			DueDate:      input.DueDate,
			Status:       input.Status,
			CategoryID:   categoryID,
		})
		if err != nil {
			log.Errorf("Failed to update bill %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update bill", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bill updated", ToBillResponse(b, time.Now()))
	}
}

// SettleBill returns a Fiber handler that marks a bill settled.
// @Summary Settle a bill
// @Description Marks the bill settled. Account balances are not touched; record the matching transaction separately.
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} common.Response "Bill settled"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /bill/{id}/settle [post]
// @Security Bearer
func SettleBill(billSvc *billsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bill ID", err, fiber.StatusBadRequest)
		}
		b, err := billSvc.Settle(c.Context(), userID, id)
		if err != nil {
			log.Errorf("Failed to settle bill %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to settle bill", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bill settled", ToBillResponse(b, time.Now()))
	}
}

// DeleteBill returns a Fiber handler that deletes a bill.
// @Summary Delete a bill
// @Tags bills
// @Produce json
// @Param id path string true "Bill ID"
// @Success 200 {object} common.Response "Bill deleted"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /bill/{id} [delete]
// @Security Bearer
func DeleteBill(billSvc *billsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid bill ID", err, fiber.StatusBadRequest)
		}
		if err := billSvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete bill", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Bill deleted", nil)
	}
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
