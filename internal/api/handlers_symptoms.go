package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/services"
	"github.com/terraincognita07/ruralhealth/internal/validation"
)

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	ownerID, filterErr := handler.ownerFilter(c)
	if filterErr != nil {
		return apiError(c, filterErr.Code, filterErr.Message)
	}

	symptoms, err := handler.symptoms.List(c.UserContext(), ownerID)
	if err != nil {
		return handler.internalError(c, "Failed to fetch symptoms", err)
	}
	return c.JSON(symptoms)
}

func (handler *Handler) CreateSymptom(c *fiber.Ctx) error {
	var payload models.SymptomCreate
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid symptom data")
	}
	input, err := validation.CreateSymptom(payload)
	if err != nil {
		return invalidPayload(c, "Invalid symptom data", err)
	}
	if !handler.canActFor(c, input.UserID) {
		return apiError(c, fiber.StatusForbidden, "Cannot log symptoms for another user")
	}

	symptom, err := handler.symptoms.Create(c.UserContext(), input)
	if err != nil {
		return handler.internalError(c, "Failed to create symptom", err)
	}
	return c.Status(fiber.StatusCreated).JSON(symptom)
}

func (handler *Handler) DeleteSymptom(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid symptom id")
	}

	if handler.enforceAuth {
		symptom, err := handler.symptoms.Get(c.UserContext(), id)
		if errors.Is(err, services.ErrNotFound) {
			return apiError(c, fiber.StatusNotFound, "Symptom not found")
		}
		if err != nil {
			return handler.internalError(c, "Failed to delete symptom", err)
		}
		if !handler.canActFor(c, symptom.UserID) {
			return apiError(c, fiber.StatusForbidden, "Cannot delete another user's symptom")
		}
	}

	err = handler.symptoms.Delete(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return apiError(c, fiber.StatusNotFound, "Symptom not found")
	}
	if err != nil {
		return handler.internalError(c, "Failed to delete symptom", err)
	}
	return c.JSON(fiber.Map{"message": "Symptom deleted successfully"})
}
