package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/services"
	"github.com/terraincognita07/ruralhealth/internal/validation"
)

func (handler *Handler) ListAppointments(c *fiber.Ctx) error {
	ownerID, filterErr := handler.ownerFilter(c)
	if filterErr != nil {
		return apiError(c, filterErr.Code, filterErr.Message)
	}

	appointments, err := handler.appointments.List(c.UserContext(), ownerID)
	if err != nil {
		return handler.internalError(c, "Failed to fetch appointments", err)
	}
	return c.JSON(appointments)
}

func (handler *Handler) CreateAppointment(c *fiber.Ctx) error {
	var payload models.AppointmentCreate
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid appointment data")
	}
	input, err := validation.CreateAppointment(payload)
	if err != nil {
		return invalidPayload(c, "Invalid appointment data", err)
	}
	if !handler.canActFor(c, input.UserID) {
		return apiError(c, fiber.StatusForbidden, "Cannot book appointments for another user")
	}

	appointment, err := handler.appointments.Create(c.UserContext(), input)
	if err != nil {
		return handler.internalError(c, "Failed to create appointment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(appointment)
}

func (handler *Handler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := parsePathID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid appointment id")
	}

	if handler.enforceAuth {
		appointment, err := handler.appointments.Get(c.UserContext(), id)
		if errors.Is(err, services.ErrNotFound) {
			return apiError(c, fiber.StatusNotFound, "Appointment not found")
		}
		if err != nil {
			return handler.internalError(c, "Failed to delete appointment", err)
		}
		if !handler.canActFor(c, appointment.UserID) {
			return apiError(c, fiber.StatusForbidden, "Cannot delete another user's appointment")
		}
	}

	err = handler.appointments.Delete(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return apiError(c, fiber.StatusNotFound, "Appointment not found")
	}
	if err != nil {
		return handler.internalError(c, "Failed to delete appointment", err)
	}
	return c.JSON(fiber.Map{"message": "Appointment deleted successfully"})
}
