// Package auth exposes the login endpoint.
package auth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/granafacil/financeiro/pkg/domain/user"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
	"github.com/granafacil/financeiro/webapi/common"
)

// Routes registers the authentication routes.
//
// Routes:
//   - POST /auth/login : Exchange email and password for a JWT.
func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/login", Login(authSvc))
}

// Login returns a Fiber handler that verifies credentials and issues a JWT.
// @Summary Login
// @Description Verifies email and password and returns a signed JWT together with the user's profile.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} common.Response "Login successful"
// @Failure 400 {object} common.ProblemDetails "Invalid request"
// @Failure 401 {object} common.ProblemDetails "Unauthorized"
// @Failure 429 {object} common.ProblemDetails "Too many requests"
// @Router /auth/login [post]
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[LoginRequest](c)
		if input == nil {
			return err
		}
		u, err := authSvc.Login(c.Context(), input.Email, input.Password)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Login failed", user.ErrUserUnauthorized, "invalid credentials")
		}
		token, err := authSvc.GenerateToken(u)
		if err != nil {
			log.Errorf("Failed to generate token: %v", err)
			return common.ProblemDetailsJSON(c, "Login failed", err, fiber.StatusInternalServerError)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Login successful", LoginResponse{
			Token: token,
			User: UserResponse{
				ID:        u.ID.String(),
				Name:      u.Name,
				Email:     u.Email,
				AvatarURL: u.AvatarURL,
			},
		})
	}
}
