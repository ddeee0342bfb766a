package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/ruralhealth/internal/validation"
)

var errInvalidID = errors.New("invalid id")

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// invalidPayload answers 400 with one message per offending field when the
// failure came from validation.
func invalidPayload(c *fiber.Ctx, message string, err error) error {
	body := fiber.Map{"message": message}
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		body["errors"] = validationErr.Fields
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// internalError logs the cause and answers 500 without exposing it.
func (handler *Handler) internalError(c *fiber.Ctx, message string, err error) error {
	handler.logger.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"method":     c.Method(),
		"path":       c.Path(),
	}).WithError(err).Error(message)
	return apiError(c, fiber.StatusInternalServerError, message)
}

func parsePathID(c *fiber.Ctx) (uint, error) {
	return parsePositiveID(c.Params("id"))
}

// parseOwnerQuery reads the optional userId filter. An absent or empty value
// yields nil.
func parseOwnerQuery(c *fiber.Ctx) (*uint, error) {
	raw := strings.TrimSpace(c.Query("userId"))
	if raw == "" {
		return nil, nil
	}
	id, err := parsePositiveID(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parsePositiveID(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || value == 0 {
		return 0, errInvalidID
	}
	return uint(value), nil
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDKey).(string)
	return id
}
