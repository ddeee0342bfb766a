package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/ruralhealth/internal/models"
	"github.com/terraincognita07/ruralhealth/internal/services"
	"github.com/terraincognita07/ruralhealth/internal/validation"
)

type authResponse struct {
	User  models.UserProfile `json:"user"`
	Token string             `json:"token"`
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.tooManyRecent(limiterKey, now, loginAttemptsLimit, loginAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "Too many failed login attempts, try again later")
	}

	var payload models.Credentials
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request data")
	}
	credentials, err := validation.Login(payload)
	if err != nil {
		return invalidPayload(c, "Invalid request data", err)
	}

	user, err := handler.auth.Login(c.UserContext(), credentials.Username, credentials.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		handler.loginLimiter.addFailure(limiterKey, now, loginAttemptsWindow)
		return apiError(c, fiber.StatusUnauthorized, "Invalid credentials")
	}
	if err != nil {
		return handler.internalError(c, "Failed to log in", err)
	}
	handler.loginLimiter.reset(limiterKey)

	return handler.respondWithSession(c, fiber.StatusOK, &user)
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var payload models.UserCreate
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request data")
	}
	input, err := validation.CreateUser(payload)
	if err != nil {
		return invalidPayload(c, "Invalid request data", err)
	}

	user, err := handler.auth.Register(c.UserContext(), input)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		return apiError(c, fiber.StatusBadRequest, "Username already exists")
	case errors.Is(err, services.ErrEmailTaken):
		return apiError(c, fiber.StatusBadRequest, "Email already exists")
	case errors.Is(err, services.ErrPasswordTooLong):
		return invalidPayload(c, "Invalid request data", &validation.Error{
			Fields: map[string]string{"password": "must be at most 72 bytes"},
		})
	case err != nil:
		return handler.internalError(c, "Failed to create account", err)
	}

	return handler.respondWithSession(c, fiber.StatusCreated, &user)
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "Authentication required")
	}
	return c.JSON(user.Profile())
}

func (handler *Handler) respondWithSession(c *fiber.Ctx, status int, user *models.User) error {
	token, err := handler.buildToken(user)
	if err != nil {
		return handler.internalError(c, "Failed to create session", err)
	}
	return c.Status(status).JSON(authResponse{User: user.Profile(), Token: token})
}
