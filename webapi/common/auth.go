package common

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/granafacil/financeiro/pkg/domain/user"
	authsvc "github.com/granafacil/financeiro/pkg/service/auth"
)

// CurrentUserID extracts the authenticated user's ID from the verified JWT
// that the auth middleware stored in the request context.
func CurrentUserID(c *fiber.Ctx, authSvc *authsvc.Service) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, user.ErrUserUnauthorized
	}
	return authSvc.GetCurrentUserID(token)
}
