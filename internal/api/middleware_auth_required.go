package api

import (
	"github.com/gofiber/fiber/v2"
)

// AuthRequired always demands a valid bearer token.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required")
	}
	c.Locals(contextUserKey, user)
	return c.Next()
}

// Authorize demands a bearer token only when enforcement is on.
func (handler *Handler) Authorize(c *fiber.Ctx) error {
	if !handler.enforceAuth {
		return c.Next()
	}
	return handler.AuthRequired(c)
}

// AdminOnly must run after Authorize.
func (handler *Handler) AdminOnly(c *fiber.Ctx) error {
	if !handler.enforceAuth {
		return c.Next()
	}
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required")
	}
	if !user.IsAdmin {
		return apiError(c, fiber.StatusForbidden, "Admin access required")
	}
	return c.Next()
}
