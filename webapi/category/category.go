// Package category exposes the category endpoints.
package category

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/domain/category"
	"github.com/granafacil/financeiro/pkg/middleware"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	categorysvc "github.com/granafacil/financeiro/pkg/service/category"
	"github.com/granafacil/financeiro/webapi/common"
)

// Routes registers HTTP routes for category operations. All routes require
// a valid token.
//
// Routes:
//   - POST   /category     : Create a category.
//   - GET    /category     : List the user's categories.
//   - GET    /category/:id : Fetch one category.
//   - PUT    /category/:id : Update a category.
//   - DELETE /category/:id : Delete a category (transactions keep their rows).
func Routes(app *fiber.App, categorySvc *categorysvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(*cfg.Jwt)
	app.Post("/category", jwt, CreateCategory(categorySvc, authSvc))
	app.Get("/category", jwt, ListCategories(categorySvc, authSvc))
	app.Get("/category/:id", jwt, GetCategory(categorySvc, authSvc))
	app.Put("/category/:id", jwt, UpdateCategory(categorySvc, authSvc))
	app.Delete("/category/:id", jwt, DeleteCategory(categorySvc, authSvc))
}

// CreateCategory returns a Fiber handler that creates a category.
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body CreateCategoryRequest true "Category details"
// @Success 201 {object} common.Response "Category created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /category [post]
// @Security Bearer
func CreateCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateCategoryRequest](c)
		if input == nil {
			return err
		}
		created, err := categorySvc.Create(c.Context(), categorysvc.CreateInput{
			UserID:      userID,
			Name:        input.Name,
			Description: input.Description,
			Color:       input.Color,
			Kind:        category.Kind(input.Kind),
		})
		if err != nil {
			log.Errorf("Failed to create category: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Category created", ToCategoryResponse(created))
	}
}

// ListCategories returns a Fiber handler that lists the user's categories.
// @Summary List categories
// @Tags categories
// @Produce json
// @Success 200 {object} common.Response "Categories fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /category [get]
// @Security Bearer
func ListCategories(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := categorySvc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list categories", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Categories fetched", ToCategoryResponses(list))
	}
}

// GetCategory returns a Fiber handler that fetches one category.
// @Summary Get a category
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} common.Response "Category fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /category/{id} [get]
// @Security Bearer
func GetCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		}
		got, err := categorySvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category fetched", ToCategoryResponse(got))
	}
}

// UpdateCategory returns a Fiber handler that updates a category.
// @Summary Update a category
// @Tags categories
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param request body UpdateCategoryRequest true "Category changes"
// @Success 200 {object} common.Response "Category updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /category/{id} [put]
// @Security Bearer
func UpdateCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateCategoryRequest](c)
		if input == nil {
			return err
		}
		updated, err := categorySvc.Update(c.Context(), userID, id, categorysvc.UpdateInput{
			Name:        input.Name,
			Description: input.Description,
			Color:       input.Color,
			Kind:        input.Kind,
		})
		if err != nil {
			log.Errorf("Failed to update category %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category updated", ToCategoryResponse(updated))
	}
}

// DeleteCategory returns a Fiber handler that deletes a category.
// @Summary Delete a category
// @Description Deletes the category. Transactions that referenced it become uncategorized; balances never change.
// @Tags categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} common.Response "Category deleted"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /category/{id} [delete]
// @Security Bearer
func DeleteCategory(categorySvc *categorysvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid category ID", err, fiber.StatusBadRequest)
		}
		if err := categorySvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete category", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Category deleted", nil)
	}
}
