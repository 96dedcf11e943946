// Package user exposes registration and profile endpoints.
package user

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/granafacil/financeiro/pkg/config"
	"github.com/granafacil/financeiro/pkg/middleware"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	usersvc "github.com/granafacil/financeiro/pkg/service/user"
	"github.com/granafacil/financeiro/webapi/common"
)

// Routes registers user routes. Registration is open, the profile routes
// require a valid token.
//
// Routes:
//   - POST   /user     : Register a new user.
//   - GET    /user/me  : Fetch the authenticated user's profile.
//   - PUT    /user/me  : Update the authenticated user's profile.
//   - DELETE /user/me  : Delete the authenticated user and everything they own.
func Routes(app *fiber.App, userSvc *usersvc.Service, authSvc *authsvc.Service, cfg *config.App) {
	app.Post("/user", Register(userSvc))
	app.Get("/user/me", middleware.JwtProtected(*cfg.Jwt), Me(userSvc, authSvc))
	app.Put("/user/me", middleware.JwtProtected(*cfg.Jwt), UpdateMe(userSvc, authSvc))
	app.Delete("/user/me", middleware.JwtProtected(*cfg.Jwt), DeleteMe(userSvc, authSvc))
}

// Register returns a Fiber handler that creates a new user.
// @Summary Register a new user
// @Description Creates a user with a hashed password and returns the public profile.
// @Tags users
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration details"
// @Success 201 {object} common.Response "User created"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 409 {object} common.ProblemDetails "Email already registered"
// @Router /user [post]
func Register(userSvc *usersvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[RegisterRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Create(c.Context(), input.Name, input.Email, input.Password)
		if err != nil {
			log.Errorf("Failed to create user: %v", err)
			return common.ProblemDetailsJSON(c, "Failed to create user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "User created", ToUserResponse(u))
	}
}

// Me returns a Fiber handler that fetches the authenticated user's profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} common.Response "Profile fetched"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /user/me [get]
// @Security Bearer
func Me(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		u, err := userSvc.Get(c.Context(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch profile", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile fetched", ToUserResponse(u))
	}
}

// UpdateMe returns a Fiber handler that updates the authenticated user's
// profile.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "Profile changes"
// @Success 200 {object} common.Response "Profile updated"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /user/me [put]
// @Security Bearer
func UpdateMe(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		input, err := common.BindAndValidate[UpdateRequest](c)
		if input == nil {
			return err
		}
		u, err := userSvc.Update(c.Context(), userID, usersvc.UpdateInput{
			Name:      input.Name,
			Email:     input.Email,
			Password:  input.Password,
			AvatarURL: input.AvatarURL,
		})
		if err != nil {
			log.Errorf("Failed to update user %s: %v", userID, err)
			return common.ProblemDetailsJSON(c, "Failed to update profile", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile updated", ToUserResponse(u))
	}
}

// DeleteMe returns a Fiber handler that deletes the authenticated user.
// @Summary Delete own account
// @Tags users
// @Produce json
// @Success 200 {object} common.Response "User deleted"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Router /user/me [delete]
// @Security Bearer
func DeleteMe(userSvc *usersvc.Service, authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := common.CurrentUserID(c, authSvc)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		if err := userSvc.Delete(c.Context(), userID); err != nil {
			return common.ProblemDetailsJSON(c, "Failed to delete user", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User deleted", nil)
	}
}
