package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/services"
)

func (handler *Handler) ListUsers(c *fiber.Ctx) error {
	users, err := handler.users.List(c.UserContext())
	if err != nil {
		return handler.internalError(c, "Failed to fetch users", err)
	}
	return c.JSON(lo.Map(users, func(user models.User, _ int) models.UserProfile {
		return user.Profile()
	}))
}

func (handler *Handler) GetUser(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	user, err := handler.users.Get(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return apiError(c, fiber.StatusNotFound, "User not found")
	}
	if err != nil {
		return handler.internalError(c, "Failed to fetch user", err)
	}
	return c.JSON(user.Profile())
}

func (handler *Handler) DeleteUser(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	err = handler.users.Delete(c.UserContext(), id, handler.enforceAuth)
	switch {
	case errors.Is(err, services.ErrNotFound):
		return apiError(c, fiber.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrAdminDeleteDenied):
		return apiError(c, fiber.StatusBadRequest, "Admin accounts cannot be deleted")
	case err != nil:
		return handler.internalError(c, "Failed to delete user", err)
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully"})
}
