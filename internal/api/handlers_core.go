package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}

// ErrorHandler answers errors that escaped a handler, including recovered
// panics. Only fiber errors keep their message; anything else becomes a
// generic 500.
func (handler *Handler) ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		message := fiberErr.Message
		if strings.TrimSpace(message) == "" {
			message = "Request failed"
		}
		return apiError(c, fiberErr.Code, message)
	}
	return handler.internalError(c, "Internal server error", err)
}
