// Package goal exposes the savings goal endpoints.
package goal

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/middleware"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	goalsvc "github.com/granafacil/financeiro/pkg/service/goal"
	"github.com/granafacil/financeiro/webapi/common"
)

// Routes registers HTTP routes for goal operations. All routes require a
// valid token.
//
// Routes:
//   - POST   /goal                : Create a goal.
//   - GET    /goal                : List the user's goals, open ones first.
//   - GET    /goal/:id            : Fetch one goal.
//   - PUT    /goal/:id            : Update a goal; completion is recomputed.
//   - POST   /goal/:id/contribute : Add to (or take from) the saved amount.
//   - DELETE /goal/:id            : Delete a goal.
func Routes(app *fiber.App, goalSvc *goalsvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	jwt := middleware.JwtProtected(*cfg.Jwt)
	app.Post("/goal", jwt, CreateGoal(goalSvc, authSvc))
	app.Get("/goal", jwt, ListGoals(goalSvc, authSvc))
	app.Get("/goal/:id", jwt, GetGoal(goalSvc, authSvc))
	app.Put("/goal/:id", jwt, UpdateGoal(goalSvc, authSvc))
	app.Post("/goal/:id/contribute", jwt, Contribute(goalSvc, authSvc))
	app.Delete("/goal/:id", jwt, DeleteGoal(goalSvc, authSvc))
}

// CreateGoal returns a Fiber handler that creates a goal.
// @Summary Create a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param request body CreateGoalRequest true "Goal details"
// @Success 201 {object} common.Response "Goal created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /goal [post]
// @Security Bearer
func CreateGoal(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[CreateGoalRequest](c)
		if input == nil {
			return err
		}
		g, err := goalSvc.Create(c.Context(), goalsvc.CreateInput{
			UserID:        userID,
			Title:         input.Title,
			Description:   input.Description,
			TargetAmount:  input.TargetAmount,
			CurrentAmount: input.CurrentAmount,
			StartDate:     input.StartDate,
			EndDate:       input.EndDate,
			Color:         input.Color,
		})
		if err != nil {
			log.Errorf("Failed to create goal: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Goal created", ToGoalResponse(g))
	}
}

// ListGoals returns a Fiber handler that lists the user's goals.
// @Summary List goals
// @Tags goals
// @Produce json
// @Success 200 {object} common.Response "Goals fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /goal [get]
// @Security Bearer
func ListGoals(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		list, err := goalSvc.List(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list goals", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goals fetched", ToGoalResponses(list))
	}
}

// GetGoal returns a Fiber handler that fetches one goal.
// @Summary Get a goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} common.Response "Goal fetched"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /goal/{id} [get]
// @Security Bearer
func GetGoal(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err, fiber.StatusBadRequest)
		}
		g, err := goalSvc.Get(c.Context(), userID, id)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal fetched", ToGoalResponse(g))
	}
}

// UpdateGoal returns a Fiber handler that updates a goal. Completion is
// always recomputed from the resulting amounts.
// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body UpdateGoalRequest true "Goal changes"
// @Success 200 {object} common.Response "Goal updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /goal/{id} [put]
// @Security Bearer
func UpdateGoal(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[UpdateGoalRequest](c)
		if input == nil {
			return err
		}
		g, err := goalSvc.Update(c.Context(), userID, id, goalsvc.UpdateInput{
			Title:         input.Title,
			Description:   input.Description,
			TargetAmount:  input.TargetAmount,
			CurrentAmount: input.CurrentAmount,
			StartDate:     input.StartDate,
			EndDate:       input.EndDate,
			Color:         input.Color,
		})
		if err != nil {
			log.Errorf("Failed to update goal %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to update goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal updated", ToGoalResponse(g))
	}
}

// Contribute returns a Fiber handler that adds to the goal's saved amount.
// @Summary Contribute to a goal
// @Description Adds the amount to the saved total. A negative amount takes a withdrawal back out.
// @Tags goals
// @Accept json
// @Produce json
// @Param id path string true "Goal ID"
// @Param request body ContributeRequest true "Contribution"
// @Success 200 {object} common.Response "Contribution recorded"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /goal/{id}/contribute [post]
// @Security Bearer
func Contribute(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err, fiber.StatusBadRequest)
		}
		input, err := common.BindAndValidate[ContributeRequest](c)
		if input == nil {
			return err
		}
		g, err := goalSvc.AddContribution(c.Context(), userID, id, input.Amount)
		if err != nil {
			log.Errorf("Failed to contribute to goal %s: %v", id, err)
			return common.ProblemDetailsJSON(c, "Failed to contribute", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Contribution recorded", ToGoalResponse(g))
	}
}

// DeleteGoal returns a Fiber handler that deletes a goal.
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Param id path string true "Goal ID"
// @Success 200 {object} common.Response "Goal deleted"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 404 {object} common.ProblemDetails "Not found"
// @Router /goal/{id} [delete]
// @Security Bearer
func DeleteGoal(goalSvc *goalsvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid goal ID", err, fiber.StatusBadRequest)
		}
		if err := goalSvc.Delete(c.Context(), userID, id); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete goal", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Goal deleted", nil)
	}
}
