// Package account exposes the account endpoints.
package account

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/domain/account"
	"github.com/granafacil/financeiro/pkg/middleware"
	accountsvc "github.com/granafacil/financeiro/pkg/service/account"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	"github.com/granafacil/financeiro/webapi/common"
)

// Routes registers HTTP routes for account operations. All routes require a
// valid token.
//
// Routes:
//   - POST   /account               : Create a new account.
//   - GET    /account               : List the user's accounts.
//   - GET    /account/:id           : Fetch one account.
//   - PUT    /account/:id           : Update an account (balance edits re-derive the baseline).
//   - DELETE /account/:id           : Delete an account and its transactions.
//   - POST   /account/:id/recompute : Reset the stored balance from ground truth.
func Routes(app *fiber.App, accountSvc *accountsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(*cfg.Jwt)
	app.Post("/account", jwt, CreateAccount(accountSvc, authSvc))
	app.Get("/account", jwt, ListAccounts(accountSvc, authSvc))
	app.Get("/account/:id", jwt, GetAccount(accountSvc, authSvc))
	app.Put("/account/:id", jwt, UpdateAccount(accountSvc, authSvc))
	app.Delete("/account/:id", jwt, DeleteAccount(accountSvc, authSvc))
	app.Post("/account/:id/recompute", jwt, RecomputeBalance(accountSvc, authSvc))
}

func parseAccountID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("id"))
}

// CreateAccount returns a Fiber handler that creates a new account for the
// current user.
// @Summary Create a new account
// @Description Creates an account with an opening balance. The opening balance becomes the reconciliation baseline.
// @Tags accounts
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account details"
// @Success 201 {object} common.Response "Account created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /account [post]
// @Security Bearer
func CreateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Create(c.Context(), accountsvc.CreateInput{
			UserID:      userID,
			Name:        input.Name,
			Type:        account.Type(input.Type),
			Balance:     input.Balance,
			Institution: input.Institution,
			Color:       input.Color,
		})
		if err != nil {
			log.Errorf("Failed to create account: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", ToAccountResponse(a))
	}
}

// ListAccounts returns a Fiber handler that lists the user's accounts.
// @Summary List accounts
// @Tags accounts
// @Produce json
// @Success 200 {object} common.Response "Accounts fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /account [get]
// @Security Bearer
func ListAccounts(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := accountSvc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list accounts", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", ToAccountResponses(list))
	}
}

// GetAccount returns a Fiber handler that fetches one account.
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response "Account fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /account/{id} [get]
// @Security Bearer
func GetAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := parseAccountID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		a, err := accountSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account fetched", ToAccountResponse(a))
	}
}

// UpdateAccount returns a Fiber handler that updates an account. When the
// balance is edited, the reconciliation baseline is re-derived so the
// balance invariant keeps holding.
// @Summary Update an account
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path string true "Account ID"
// @Param request body UpdateAccountRequest true "Account changes"
// @Success 200 {object} common.Response "Account updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /account/{id} [put]
// @Security Bearer
func UpdateAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := parseAccountID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := accountSvc.Update(c.Context(), userID, id, accountsvc.UpdateInput{
			Name:        input.Name,
			Type:        input.Type,
			Balance:     input.Balance,
			Institution: input.Institution,
			Color:       input.Color,
		})
		if err != nil {
			log.Errorf("Failed to update account %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account updated", ToAccountResponse(a))
	}
}

// DeleteAccount returns a Fiber handler that deletes an account.
// @Summary Delete an account
// @Description Deletes the account together with its transactions.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response "Account deleted"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /account/{id} [delete]
// @Security Bearer
func DeleteAccount(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := parseAccountID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		if err := accountSvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", nil)
	}
}

// RecomputeBalance returns a Fiber handler that resets an account's stored
// balance from its baseline plus the net effect of its transactions.
// @Summary Recompute an account balance
// @Description Resets the stored balance from ground truth. Fixes drift introduced outside the normal write path.
// @Tags accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} common.Response "Balance recomputed"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /account/{id}/recompute [post]
// @Security Bearer
func RecomputeBalance(accountSvc *accountsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := parseAccountID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid account ID", err, "Account ID must be a valid UUID", fiber.StatusBadRequest)
		}
		a, err := accountSvc.Recompute(c.Context(), userID, id)
		if err != nil {
			log.Errorf("Failed to recompute balance for account %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to recompute balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance recomputed", ToAccountResponse(a))
	}
}
