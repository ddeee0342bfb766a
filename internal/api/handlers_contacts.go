package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/services"
	"github.com/terraincognita07/ruralhealth/internal/validation"
)

func (handler *Handler) ListContacts(c *fiber.Ctx) error {
	contacts, err := handler.contacts.List(c.UserContext())
	if err != nil {
		return handler.internalError(c, "Failed to fetch contacts", err)
	}
	return c.JSON(contacts)
}

func (handler *Handler) CreateContact(c *fiber.Ctx) error {
	var payload models.ContactCreate
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid contact data")
	}
	input, err := validation.CreateContact(payload)
	if err != nil {
		return invalidPayload(c, "Invalid contact data", err)
	}

	contact, err := handler.contacts.Create(c.UserContext(), input)
	if err != nil {
		return handler.internalError(c, "Failed to send message", err)
	}
	return c.Status(fiber.StatusCreated).JSON(contact)
}

func (handler *Handler) DeleteContact(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid contact id")
	}

	err = handler.contacts.Delete(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return apiError(c, fiber.StatusNotFound, "Contact not found")
	}
	if err != nil {
		return handler.internalError(c, "Failed to delete contact", err)
	}
	return c.JSON(fiber.Map{"message": "Contact deleted successfully"})
}
