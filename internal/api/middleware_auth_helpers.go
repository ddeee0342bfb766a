package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ruralhealth/internal/models"
)

const contextUserKey = "current_user"

// authenticateRequest resolves the bearer token to a stored user. The user
// is reloaded so deleted accounts lose access before their token expires.
func (handler *Handler) authenticateRequest(c *fiber.Ctx) (*models.User, error) {
	raw, err := bearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := handler.parseToken(raw)
	if err != nil {
		return nil, err
	}

	user, err := handler.auth.FindByID(c.UserContext(), claims.UserID)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok && user != nil
}

// canActFor reports whether the caller may touch records owned by ownerID.
// Without enforcement every caller may.
func (handler *Handler) canActFor(c *fiber.Ctx, ownerID uint) bool {
	if !handler.enforceAuth {
		return true
	}
	user, ok := currentUser(c)
	if !ok {
		return false
	}
	return user.IsAdmin || user.ID == ownerID
}

// ownerFilter resolves the userId filter of the list endpoints. Under
// enforcement a non-admin is pinned to their own records.
func (handler *Handler) ownerFilter(c *fiber.Ctx) (*uint, *fiber.Error) {
	ownerID, err := parseOwnerQuery(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid userId")
	}
	if !handler.enforceAuth {
		return ownerID, nil
	}

	user, ok := currentUser(c)
	switch {
	case !ok:
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
	case user.IsAdmin:
		return ownerID, nil
	case ownerID == nil:
		own := user.ID
		return &own, nil
	case *ownerID != user.ID:
		return nil, fiber.NewError(fiber.StatusForbidden, "Cannot view another user's records")
	default:
		return ownerID, nil
	}
}
